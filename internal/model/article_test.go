package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("transfers")
	assert.True(t, ok)
	assert.Equal(t, CategoryTransfers, c)

	_, ok = ParseCategory("weather")
	assert.False(t, ok)
}

func TestArticleIsAuthor(t *testing.T) {
	a := &Article{Author: &User{ID: 1, UserName: "alice"}}

	assert.True(t, a.IsAuthor("alice"))
	assert.False(t, a.IsAuthor("bob"))
	assert.False(t, a.IsAuthor(""))
	assert.False(t, (&Article{}).IsAuthor("alice"))
}
