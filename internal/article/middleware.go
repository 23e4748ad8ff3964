package article

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logging"
)

type ctxKey int8

const (
	articleIDKey ctxKey = iota
	pageKey
)

// ArticleCtx middleware parses the {articleID} URL parameter and stores it on
// the request context. A missing or malformed id stops here with a 400.
func ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
		if err != nil || id <= 0 {
			renderBadRequest(w, r, errors.New("article id must be a positive integer"))

			return
		}

		ctx := context.WithValue(r.Context(), articleIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// paginate reads the page query parameter, defaulting to the first page.
// Range checks are left to the Service.
func paginate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			var err error
			page, err = strconv.Atoi(raw)
			if err != nil {
				renderBadRequest(w, r, errors.New("page must be an integer"))

				return
			}
		}

		ctx := context.WithValue(r.Context(), pageKey, page)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func articleIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(articleIDKey).(int64)

	return id
}

func pageFrom(ctx context.Context) int {
	if page, ok := ctx.Value(pageKey).(int); ok {
		return page
	}

	return 1
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
		logging.FromContext(r.Context()).Errorw("render bad request", "error", err)
	}
}
