package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud")
	require.Error(t, err)

	l, err := New("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestFromContextDefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestMiddlewareTagsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sugar := zap.New(core).Sugar()

	h := middleware.RequestID(Middleware(sugar)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Infow("handled")
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "handled", entry.Message)
	assert.Contains(t, entry.ContextMap(), "request_id")
}
