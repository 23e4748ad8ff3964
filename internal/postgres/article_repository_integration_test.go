//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// setupDB starts PostgreSQL in a container and applies the migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("blog"),
		tcpostgres.WithUsername("blog"),
		tcpostgres.WithPassword("blog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, Migrate(dsn))

	pool, err := Connect(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, name string, roles ...string) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO users (user_name) VALUES ($1) RETURNING id`, name).Scan(&id))

	for _, role := range roles {
		_, err := pool.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, id, role)
		require.NoError(t, err)
	}

	return id
}

func TestArticleRepositoryIntegration(t *testing.T) {
	pool := setupDB(t)
	repo := NewArticleRepository(pool)
	ctx := context.Background()

	aliceID := seedUser(t, pool, "alice")
	seedUser(t, pool, "peter", model.RoleAdmin)

	var ids []int64
	for i, c := range []model.Category{model.CategoryClub, model.CategoryLeague, model.CategoryClub} {
		id, err := repo.Create(ctx, &model.Article{
			Title:    []string{"Ten", "Eleven", "Twelve"}[i],
			Content:  "body",
			Category: c,
			AuthorID: aliceID,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	t.Run("list is newest first", func(t *testing.T) {
		articles, err := repo.List(ctx, 0, 6)
		require.NoError(t, err)
		require.Len(t, articles, 3)
		assert.Equal(t, ids[2], articles[0].ID)
		assert.Equal(t, "alice", articles[0].Author.UserName)
	})

	t.Run("category filter", func(t *testing.T) {
		articles, err := repo.ListByCategory(ctx, model.CategoryClub)
		require.NoError(t, err)

		got := []int64{}
		for _, a := range articles {
			got = append(got, a.ID)
		}
		assert.ElementsMatch(t, []int64{ids[0], ids[2]}, got)
	})

	t.Run("author filter", func(t *testing.T) {
		articles, err := repo.ListByAuthor(ctx, "alice", 0, 6)
		require.NoError(t, err)
		assert.Len(t, articles, 3)
	})

	t.Run("search", func(t *testing.T) {
		articles, err := repo.Search(ctx, "elev", 0, 6)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, ids[1], articles[0].ID)
	})

	t.Run("update and delete", func(t *testing.T) {
		ok, err := repo.Update(ctx, ids[0], "Renamed", "New body")
		require.NoError(t, err)
		assert.True(t, ok)

		a, err := repo.Get(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "Renamed", a.Title)
		assert.Equal(t, model.CategoryClub, a.Category)

		ok, err = repo.Delete(ctx, ids[0])
		require.NoError(t, err)
		assert.True(t, ok)

		a, err = repo.Get(ctx, ids[0])
		require.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("users with roles", func(t *testing.T) {
		users, err := repo.Users(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Empty(t, users[0].Roles)
		assert.Equal(t, []string{model.RoleAdmin}, users[1].Roles)
	})

	t.Run("author must exist", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Article{Title: "x", Content: "y", Category: model.CategoryGame, AuthorID: 9999})
		assert.Error(t, err)
	})
}
