package errresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/logging"
)

//--
// Error response payloads & renderers
//--

// ErrResponse renderer type for handling all sorts of errors.
//
// Err is kept for logging only and never serialized; ErrorText is filled for
// client errors and left empty for server faults.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message

	// Fields and Input are set on validation failures: per-field messages,
	// and the payload the client sent so it can be corrected.
	Fields map[string]string `json:"fields,omitempty"`
	Input  interface{}       `json:"input,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, fields map[string]string, input interface{}) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Validation failed.",
		Fields:         fields,
		Input:          input,
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

// ErrInternal hides err from the client.
func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
	}
}

var (
	ErrNotFound     = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}
	ErrForbidden    = &ErrResponse{HTTPStatusCode: http.StatusForbidden, StatusText: "Forbidden."}
	ErrUnauthorized = &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, StatusText: "Authentication required."}
)

// Respond replaces render.Respond. Bare errors handed to the responder are
// reduced to a generic body so their text never reaches the client.
func Respond(w http.ResponseWriter, r *http.Request, v interface{}) {
	if err, ok := v.(error); ok {
		logging.FromContext(r.Context()).Errorw("responding with raw error", "error", err)

		// We set a default error status response code if one hasn't been set.
		if _, ok := r.Context().Value(render.StatusCtxKey).(int); !ok {
			w.WriteHeader(http.StatusBadRequest)
		}

		render.DefaultResponder(w, r, render.M{"status": "error"})

		return
	}

	render.DefaultResponder(w, r, v)
}
