package articlerequest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	return r
}

func TestArticleRequestStripsProtectedFields(t *testing.T) {
	data := &ArticleRequest{}
	err := render.Bind(newJSONRequest(`{"id":9,"authorId":100,"title":"t","content":"c","category":"Game"}`), data)

	require.NoError(t, err)
	assert.Zero(t, data.ProtectedID)
	assert.Zero(t, data.ProtectedAuthorID)
	assert.Zero(t, data.Article.ID)
	assert.Zero(t, data.Article.AuthorID)
	assert.Equal(t, "t", data.Title)
}

func TestArticleRequestRequiresFields(t *testing.T) {
	err := render.Bind(newJSONRequest(`{}`), &ArticleRequest{})
	assert.Error(t, err)
}

func TestEditRequest(t *testing.T) {
	data := &EditRequest{}
	require.NoError(t, render.Bind(newJSONRequest(`{"title":"New","category":"Stats"}`), data))

	form := data.Form(4)
	assert.Equal(t, int64(4), form.ID)
	assert.Equal(t, "New", form.Title)
	assert.Empty(t, form.Content)

	assert.Error(t, render.Bind(newJSONRequest(`{"category":"Stats"}`), &EditRequest{}))
}
