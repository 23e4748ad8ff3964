package article

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/articlerequest"
	"github.com/SergeyParamoshkin/blog/internal/articleresponse"
	"github.com/SergeyParamoshkin/blog/internal/auth"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logging"
	"github.com/SergeyParamoshkin/blog/internal/model"
	"github.com/SergeyParamoshkin/blog/internal/userpayload"
)

// ListPath is where clients are sent after a successful mutation.
const ListPath = "/articles"

// MutationRecorder observes the outcome of create, edit and delete calls.
type MutationRecorder interface {
	RecordMutation(ctx context.Context, op, outcome string)
}

// API serves the Service over HTTP.
type API struct {
	svc      *Service
	recorder MutationRecorder
}

func NewAPI(svc *Service, recorder MutationRecorder) *API {
	return &API{svc: svc, recorder: recorder}
}

// Routes returns the router for the "articles" resource.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(paginate).Get("/", a.ListArticles)               // GET /articles?page=2
	r.Post("/", a.CreateArticle)                            // POST /articles
	r.With(paginate).Get("/search", a.SearchArticles)       // GET /articles/search?q=derby
	r.With(paginate).Get("/mine", a.ListMyArticles)         // GET /articles/mine
	r.Get("/categories", a.ListCategories)                  // GET /articles/categories
	r.Get("/categories/{category}", a.ListCategoryArticles) // GET /articles/categories/club

	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(ArticleCtx)                   // Parse the id onto the request context
		r.Get("/", a.GetArticle)            // GET /articles/123
		r.Put("/", a.UpdateArticle)         // PUT /articles/123
		r.Delete("/", a.DeleteArticle)      // DELETE /articles/123
		r.Get("/edit", a.EditArticleForm)   // GET /articles/123/edit
		r.Get("/delete", a.ConfirmDeletion) // GET /articles/123/delete
	})

	return r
}

// AdminRoutes returns the administrator router. It must be mounted behind
// auth.AdminOnly.
func (a *API) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.AdminOnly)
	r.Get("/users", a.ListUsers)

	return r
}

func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.svc.ListAll(r.Context(), pageFrom(r.Context()))
	a.renderList(w, r, articles, err)
}

// SearchArticles searches article titles for the q query parameter.
func (a *API) SearchArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.svc.Search(r.Context(), r.URL.Query().Get("q"), pageFrom(r.Context()))
	a.renderList(w, r, articles, err)
}

func (a *API) ListMyArticles(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())
	articles, err := a.svc.ListMine(r.Context(), p, pageFrom(r.Context()))
	a.renderList(w, r, articles, err)
}

func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, &articleresponse.CategoryListResponse{Categories: a.svc.Categories()})
}

func (a *API) ListCategoryArticles(w http.ResponseWriter, r *http.Request) {
	c := model.Category(chi.URLParam(r, "category"))
	articles, err := a.svc.ListByCategory(r.Context(), c)
	a.renderList(w, r, articles, err)
}

// CreateArticle persists the posted Article as written by the caller.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		renderBadRequest(w, r, err)

		return
	}

	id, err := a.svc.Create(r.Context(), data.Article, auth.FromContext(r.Context()))
	a.record(r.Context(), "create", err)
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	a.render(w, r, &articleresponse.RedirectResponse{ID: id, Location: ListPath})
}

// GetArticle returns the article named by the URL with its author.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := a.svc.GetByID(r.Context(), articleIDFrom(r.Context()))
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewArticleResponse(article))
}

// EditArticleForm returns the editable fields of an article the caller may change.
func (a *API) EditArticleForm(w http.ResponseWriter, r *http.Request) {
	form, err := a.svc.EditForm(r.Context(), articleIDFrom(r.Context()), auth.FromContext(r.Context()))
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewEditFormResponse(form))
}

// UpdateArticle replaces the title and content of an existing Article.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.EditRequest{}
	if err := render.Bind(r, data); err != nil {
		renderBadRequest(w, r, err)

		return
	}

	err := a.svc.Edit(r.Context(), data.Form(articleIDFrom(r.Context())), auth.FromContext(r.Context()))
	a.record(r.Context(), "edit", err)
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	a.render(w, r, &articleresponse.RedirectResponse{Location: ListPath})
}

// ConfirmDeletion returns the article the caller is about to delete.
func (a *API) ConfirmDeletion(w http.ResponseWriter, r *http.Request) {
	article, err := a.svc.ConfirmDelete(r.Context(), articleIDFrom(r.Context()), auth.FromContext(r.Context()))
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewArticleResponse(article))
}

// DeleteArticle removes an existing Article from our persistent store.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	err := a.svc.Delete(r.Context(), articleIDFrom(r.Context()), auth.FromContext(r.Context()))
	a.record(r.Context(), "delete", err)
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	a.render(w, r, &articleresponse.RedirectResponse{Location: ListPath})
}

func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.svc.Users(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	if err := render.RenderList(w, r, userpayload.NewUserListResponse(users)); err != nil {
		a.renderRenderError(w, r, err)
	}
}

func (a *API) renderList(w http.ResponseWriter, r *http.Request, articles []*model.Article, err error) {
	if err != nil {
		a.renderError(w, r, err)

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		a.renderRenderError(w, r, err)
	}
}

func (a *API) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		a.renderRenderError(w, r, err)
	}
}

func (a *API) renderRenderError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	logger.Errorw("render response", "error", err)

	if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
		logger.Errorw(err.Error())
	}
}

// renderError maps a Service error onto its HTTP status.
func (a *API) renderError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())

	var resp render.Renderer
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		resp = errresponse.ErrValidation(err, verr.FieldMessages(), verr.Input)
	case errors.Is(err, ErrUnauthenticated):
		resp = errresponse.ErrUnauthorized
	case errors.Is(err, ErrInvalidInput):
		resp = errresponse.ErrInvalidRequest(err)
	case errors.Is(err, ErrNotFound):
		resp = errresponse.ErrNotFound
	case errors.Is(err, ErrForbidden):
		resp = errresponse.ErrForbidden
	default:
		logger.Errorw("request failed", "error", err)
		resp = errresponse.ErrInternal(err)
	}

	if err := render.Render(w, r, resp); err != nil {
		logger.Errorw(err.Error())
	}
}

func (a *API) record(ctx context.Context, op string, err error) {
	if a.recorder != nil {
		a.recorder.RecordMutation(ctx, op, Outcome(err))
	}
}

// Outcome names the error kind of err for metrics labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "fault"
	}
}
