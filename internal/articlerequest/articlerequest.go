package articlerequest

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

//--
// Request payloads for the REST api.
//
// The payloads embed the data model objects; Bind strips the fields a client
// is not allowed to set.
//--

// ArticleRequest is the request payload for creating an Article.
type ArticleRequest struct {
	*model.Article

	ProtectedID       int64 `json:"id"`       // override 'id' json to have more control
	ProtectedAuthorID int64 `json:"authorId"` // the author is always the caller
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// a.Article is nil if no Article fields are sent in the request. Return an
	// error to avoid a nil pointer dereference.
	if a.Article == nil {
		return errors.New("missing required Article fields")
	}

	a.ProtectedID = 0
	a.ProtectedAuthorID = 0
	a.Article.ID = 0
	a.Article.AuthorID = 0

	return nil
}

// EditRequest is the request payload for editing an Article. Only title and
// content are accepted; the id comes from the URL.
type EditRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (e *EditRequest) Bind(r *http.Request) error {
	if e.Title == nil && e.Content == nil {
		return errors.New("missing required title and content fields")
	}

	return nil
}

// Form returns the edit form for article id.
func (e *EditRequest) Form(id int64) *model.EditForm {
	f := &model.EditForm{ID: id}
	if e.Title != nil {
		f.Title = *e.Title
	}
	if e.Content != nil {
		f.Content = *e.Content
	}

	return f
}
