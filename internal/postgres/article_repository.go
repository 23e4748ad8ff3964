package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// DB is the subset of *pgxpool.Pool the repository needs, so pgxmock can
// stand in for it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// ArticleRepository implements article.Store on PostgreSQL. Each call runs a
// single statement on a pooled connection.
type ArticleRepository struct {
	db DB
}

func NewArticleRepository(db DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const selectArticles = `
SELECT a.id, a.title, a.content, a.category, a.author_id, u.user_name
FROM articles a
JOIN users u ON u.id = a.author_id`

func (r *ArticleRepository) List(ctx context.Context, offset, limit int) ([]*model.Article, error) {
	return r.query(ctx, selectArticles+`
ORDER BY a.id DESC
LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *ArticleRepository) ListByCategory(ctx context.Context, c model.Category) ([]*model.Article, error) {
	return r.query(ctx, selectArticles+`
WHERE a.category = $1`, string(c))
}

func (r *ArticleRepository) ListByAuthor(ctx context.Context, userName string, offset, limit int) ([]*model.Article, error) {
	return r.query(ctx, selectArticles+`
WHERE u.user_name = $1
ORDER BY a.id DESC
LIMIT $2 OFFSET $3`, userName, limit, offset)
}

func (r *ArticleRepository) Search(ctx context.Context, query string, offset, limit int) ([]*model.Article, error) {
	return r.query(ctx, selectArticles+`
WHERE a.title ILIKE '%' || $1 || '%'
ORDER BY a.id DESC
LIMIT $2 OFFSET $3`, escapeLike(query), limit, offset)
}

func (r *ArticleRepository) Get(ctx context.Context, id int64) (*model.Article, error) {
	row := r.db.QueryRow(ctx, selectArticles+`
WHERE a.id = $1`, id)

	a, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}

	return a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *model.Article) (int64, error) {
	var id int64

	err := r.db.QueryRow(ctx, `
INSERT INTO articles (title, content, category, author_id)
VALUES ($1, $2, $3, $4)
RETURNING id`, a.Title, a.Content, string(a.Category), a.AuthorID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	return id, nil
}

func (r *ArticleRepository) Update(ctx context.Context, id int64, title, content string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE articles SET title = $2, content = $3
WHERE id = $1`, id, title, content)
	if err != nil {
		return false, fmt.Errorf("update article %d: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete article %d: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *ArticleRepository) UserByName(ctx context.Context, userName string) (*model.User, error) {
	var u model.User

	err := r.db.QueryRow(ctx, `SELECT id, user_name FROM users WHERE user_name = $1`, userName).
		Scan(&u.ID, &u.UserName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", userName, err)
	}

	return &u, nil
}

func (r *ArticleRepository) Users(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.Query(ctx, `
SELECT u.id, u.user_name,
       COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
FROM users u
LEFT JOIN user_roles r ON r.user_id = u.id
GROUP BY u.id, u.user_name
ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.UserName, &u.Roles); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

func (r *ArticleRepository) query(ctx context.Context, sql string, args ...interface{}) ([]*model.Article, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := []*model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}

	return articles, nil
}

func scanArticle(row pgx.Row) (*model.Article, error) {
	var (
		a        model.Article
		category string
		author   model.User
	)

	if err := row.Scan(&a.ID, &a.Title, &a.Content, &category, &a.AuthorID, &author.UserName); err != nil {
		return nil, err
	}

	a.Category = model.Category(category)
	author.ID = a.AuthorID
	a.Author = &author

	return &a, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
