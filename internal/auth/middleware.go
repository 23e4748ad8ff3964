package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logging"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Authenticate loads the Principal named by the bearer token onto the request
// context. Requests without an Authorization header continue as Anonymous;
// a header that does not verify is rejected with 401.
func Authenticate(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)

				return
			}

			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if raw == header || raw == "" {
				renderUnauthorized(w, r, ErrInvalidToken)

				return
			}

			p, err := v.Verify(raw)
			if err != nil {
				renderUnauthorized(w, r, err)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// AdminOnly middleware restricts access to just administrators.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := FromContext(r.Context())
		if !p.HasRole(model.RoleAdmin) {
			if err := render.Render(w, r, errresponse.ErrForbidden); err != nil {
				logging.FromContext(r.Context()).Errorw("render forbidden", "error", err)
			}

			return
		}
		next.ServeHTTP(w, r)
	})
}

func renderUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Infow("rejected credentials", "error", err)

	if err := render.Render(w, r, errresponse.ErrUnauthorized); err != nil {
		logging.FromContext(r.Context()).Errorw("render unauthorized", "error", err)
	}
}
