package article

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blog/internal/auth"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

func TestMemStore_CreateRequiresAuthor(t *testing.T) {
	s := NewMemStore()

	_, err := s.Create(context.Background(), &model.Article{Title: "t", AuthorID: 7})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Count())
}

func TestMemStore_ReadsAreCopies(t *testing.T) {
	s := newTestStore()
	ids := seed(t, s, 1, 1)
	ctx := context.Background()

	a, err := s.Get(ctx, ids[0])
	require.NoError(t, err)
	a.Title = "mutated"
	a.Author.UserName = "mallory"

	again, err := s.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Article 0", again.Title)
	assert.Equal(t, "alice", again.Author.UserName)
}

func TestMemStore_MissingRows(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	a, err := s.Get(ctx, 3)
	assert.NoError(t, err)
	assert.Nil(t, a)

	ok, err := s.Update(ctx, 3, "t", "c")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Delete(ctx, 3)
	assert.NoError(t, err)
	assert.False(t, ok)

	u, err := s.UserByName(ctx, "ghost")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemStore_IDsAreNotReused(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	ids := seed(t, s, 1, 2)

	ok, err := s.Delete(ctx, ids[1])
	require.NoError(t, err)
	require.True(t, ok)

	next := seed(t, s, 1, 1)
	assert.Greater(t, next[0], ids[1])
}

func TestMemStore_ConcurrentCreates(t *testing.T) {
	s := newTestStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(context.Background(), &model.Article{Title: "t", Content: "c", Category: model.CategoryClub, AuthorID: 2})
		}()
	}
	wg.Wait()

	all, err := s.List(context.Background(), 0, -1)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestFixtureStore(t *testing.T) {
	s := NewFixtureStore()

	assert.Equal(t, 5, s.Count())

	users, err := s.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, []string{model.RoleAdmin}, users[0].Roles)
}

func TestCanModify(t *testing.T) {
	a := &model.Article{AuthorID: 1, Author: &model.User{ID: 1, UserName: "alice"}}

	assert.True(t, CanModify(a, alice))
	assert.True(t, CanModify(a, admin))
	assert.False(t, CanModify(a, bob))
	assert.False(t, CanModify(a, auth.Anonymous))
}
