package article

import (
	"github.com/SergeyParamoshkin/blog/internal/auth"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// CanModify reports whether p may edit or delete a. a must be a fetched
// article; callers resolve NotFound first.
func CanModify(a *model.Article, p auth.Principal) bool {
	return p.HasRole(model.RoleAdmin) || a.IsAuthor(p.Name)
}
