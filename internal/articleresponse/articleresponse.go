package articleresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
	"github.com/SergeyParamoshkin/blog/internal/userpayload"
)

// ArticleResponse is the response payload for the Article data model.
//
// In the ArticleResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
// Render is called in top-down order, like a http handler middleware chain.
type ArticleResponse struct {
	*model.Article

	Author *userpayload.UserPayload `json:"author,omitempty"`
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	resp := &ArticleResponse{Article: article}

	if article.Author != nil {
		resp.Author = userpayload.NewUserPayloadResponse(article.Author)
	}

	return resp
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewArticleListResponse(articles []*model.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return list
}

// EditFormResponse is the payload of the edit form: id, title and content only.
type EditFormResponse struct {
	*model.EditForm
}

func NewEditFormResponse(form *model.EditForm) *EditFormResponse {
	return &EditFormResponse{EditForm: form}
}

func (e *EditFormResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// RedirectResponse acknowledges a mutation and sends the client back to the
// listing.
type RedirectResponse struct {
	ID       int64  `json:"id,omitempty"`
	Location string `json:"location"`
}

func (c *RedirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Location", c.Location)
	render.Status(r, http.StatusSeeOther)

	return nil
}

// CategoryListResponse is the category index.
type CategoryListResponse struct {
	Categories []model.Category `json:"categories"`
}

func (c *CategoryListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
