package userpayload

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

func TestUserPayloadRole(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	admin := NewUserPayloadResponse(&model.User{UserName: "peter", Roles: []string{"Editor", model.RoleAdmin}})
	require.NoError(t, admin.Render(w, r))
	assert.Equal(t, "admin", admin.Role)

	author := NewUserPayloadResponse(&model.User{UserName: "julia"})
	require.NoError(t, author.Render(w, r))
	assert.Equal(t, "author", author.Role)
}

func TestNewUserListResponse(t *testing.T) {
	list := NewUserListResponse([]*model.User{{ID: 1}, {ID: 2}})
	assert.Len(t, list, 2)
}
