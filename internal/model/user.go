package model

// RoleAdmin grants edit and delete rights over every article.
const RoleAdmin = "Admin"

// User data model
type User struct {
	ID       int64    `json:"id"`
	UserName string   `json:"userName"`
	Roles    []string `json:"roles,omitempty"`
}
