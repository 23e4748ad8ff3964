package model

import "strings"

// Category groups articles for filtered listing.
type Category string

const (
	CategoryClub      Category = "Club"
	CategoryLeague    Category = "League"
	CategoryPlayers   Category = "Players"
	CategoryGame      Category = "Game"
	CategoryTransfers Category = "Transfers"
	CategoryStats     Category = "Stats"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryClub,
	CategoryLeague,
	CategoryPlayers,
	CategoryGame,
	CategoryTransfers,
	CategoryStats,
}

// ParseCategory matches name against the known categories, ignoring case.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}

	return "", false
}

// Article data model. Author is loaded alongside the row on reads.
type Article struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category Category `json:"category"`
	AuthorID int64    `json:"authorId"` // the author
	Author   *User    `json:"-"`
}

// IsAuthor reports whether userName wrote the article.
func (a *Article) IsAuthor(userName string) bool {
	return a.Author != nil && userName != "" && a.Author.UserName == userName
}

// EditForm is the subset of an Article a user may change.
type EditForm struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewEditForm projects an article onto its editable fields.
func NewEditForm(a *Article) *EditForm {
	return &EditForm{ID: a.ID, Title: a.Title, Content: a.Content}
}
