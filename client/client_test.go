//go:build !integration

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateArticle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/articles", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var a Article
		require.NoError(t, json.NewDecoder(r.Body).Decode(&a))
		assert.Equal(t, "Derby", a.Title)

		w.Header().Set("Location", "/articles")
		w.WriteHeader(http.StatusSeeOther)
		_, _ = w.Write([]byte(`{"id":6,"location":"/articles"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "tok")
	id, err := c.CreateArticle(context.Background(), Article{Title: "Derby", Content: "Report", Category: "Game"})

	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestClient_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"status":"Forbidden."}`))
	}))
	defer ts.Close()

	err := New(ts.URL, "").DeleteArticle(context.Background(), 1)

	require.ErrorIs(t, err, ErrStatus)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Contains(t, se.Body, "Forbidden.")
}

func TestClient_ListArticles(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":3,"title":"Alo","author":{"id":100,"userName":"peter","role":"admin"}}]`))
	}))
	defer ts.Close()

	articles, err := New(ts.URL, "").ListArticles(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "peter", articles[0].Author.UserName)
}
