package userpayload

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// UserPayload is the response payload for a User. Role summarizes the
// user's roles for display.
type UserPayload struct {
	*model.User
	Role string `json:"role"`
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	u.Role = "author"
	for _, role := range u.Roles {
		if role == model.RoleAdmin {
			u.Role = "admin"
		}
	}

	return nil
}

func NewUserListResponse(users []*model.User) []render.Renderer {
	list := make([]render.Renderer, 0, len(users))
	for _, u := range users {
		list = append(list, NewUserPayloadResponse(u))
	}

	return list
}
