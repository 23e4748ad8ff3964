package article

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Store is the relational store behind the Service. Reads return articles
// with Author loaded. Lookups of a single row return nil and no error when
// the row does not exist.
type Store interface {
	List(ctx context.Context, offset, limit int) ([]*model.Article, error)
	ListByCategory(ctx context.Context, c model.Category) ([]*model.Article, error)
	ListByAuthor(ctx context.Context, userName string, offset, limit int) ([]*model.Article, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*model.Article, error)
	Get(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, a *model.Article) (int64, error)
	// Update and Delete report false when no row matched id.
	Update(ctx context.Context, id int64, title, content string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	UserByName(ctx context.Context, userName string) (*model.User, error)
	Users(ctx context.Context) ([]*model.User, error)
}

// MemStore is an in-memory Store used for local development and tests.
type MemStore struct {
	mu       sync.RWMutex
	articles map[int64]*model.Article
	users    map[int64]*model.User
	nextID   int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		articles: make(map[int64]*model.Article),
		users:    make(map[int64]*model.User),
	}
}

// Fixture users and articles for the memory storage mode.
var (
	fixtureUsers = []*model.User{
		{ID: 100, UserName: "peter", Roles: []string{model.RoleAdmin}},
		{ID: 200, UserName: "julia"},
	}
	fixtureArticles = []*model.Article{
		{Title: "Hi", Content: "First post.", Category: model.CategoryClub, AuthorID: 100},
		{Title: "Sup", Content: "Derby day.", Category: model.CategoryLeague, AuthorID: 200},
		{Title: "Alo", Content: "New signing.", Category: model.CategoryTransfers, AuthorID: 100},
		{Title: "Bonjour", Content: "Midfield analysis.", Category: model.CategoryPlayers, AuthorID: 200},
		{Title: "Whats up", Content: "Season numbers.", Category: model.CategoryStats, AuthorID: 100},
	}
)

// NewFixtureStore returns a MemStore seeded with fixture data.
func NewFixtureStore() *MemStore {
	s := NewMemStore()
	for _, u := range fixtureUsers {
		s.AddUser(u)
	}
	for _, a := range fixtureArticles {
		a := *a
		_, _ = s.Create(context.Background(), &a)
	}

	return s
}

// AddUser registers u; the identity provider owns users in production.
func (s *MemStore) AddUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	s.users[u.ID] = &cp
}

// Count returns the number of stored articles.
func (s *MemStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.articles)
}

func (s *MemStore) List(_ context.Context, offset, limit int) ([]*model.Article, error) {
	return s.page(func(*model.Article) bool { return true }, offset, limit), nil
}

func (s *MemStore) ListByCategory(_ context.Context, c model.Category) ([]*model.Article, error) {
	return s.page(func(a *model.Article) bool { return a.Category == c }, 0, -1), nil
}

func (s *MemStore) ListByAuthor(_ context.Context, userName string, offset, limit int) ([]*model.Article, error) {
	return s.page(func(a *model.Article) bool { return a.IsAuthor(userName) }, offset, limit), nil
}

func (s *MemStore) Search(_ context.Context, query string, offset, limit int) ([]*model.Article, error) {
	q := strings.ToLower(query)

	return s.page(func(a *model.Article) bool {
		return strings.Contains(strings.ToLower(a.Title), q)
	}, offset, limit), nil
}

func (s *MemStore) Get(_ context.Context, id int64) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}

	return s.withAuthor(a), nil
}

func (s *MemStore) Create(_ context.Context, a *model.Article) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[a.AuthorID]; !ok {
		return 0, fmt.Errorf("author %d does not exist", a.AuthorID)
	}

	s.nextID++
	cp := *a
	cp.ID = s.nextID
	cp.Author = nil
	s.articles[cp.ID] = &cp

	return cp.ID, nil
}

func (s *MemStore) Update(_ context.Context, id int64, title, content string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return false, nil
	}
	a.Title = title
	a.Content = content

	return true, nil
}

func (s *MemStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return false, nil
	}
	delete(s.articles, id)

	return true, nil
}

func (s *MemStore) UserByName(_ context.Context, userName string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.UserName == userName {
			cp := *u
			return &cp, nil
		}
	}

	return nil, nil
}

func (s *MemStore) Users(_ context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// page filters, sorts by id descending and slices. limit < 0 means no limit.
func (s *MemStore) page(keep func(*model.Article) bool, offset, limit int) []*model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		a = s.withAuthor(a)
		if keep(a) {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	if offset >= len(matched) {
		return []*model.Article{}
	}
	matched = matched[offset:]
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched
}

// withAuthor returns a copy of a joined with its author. Callers hold mu.
func (s *MemStore) withAuthor(a *model.Article) *model.Article {
	cp := *a
	if u, ok := s.users[a.AuthorID]; ok {
		author := *u
		cp.Author = &author
	}

	return &cp
}
