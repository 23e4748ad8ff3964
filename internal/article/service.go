package article

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/auth"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// PageSize bounds every paginated listing.
const PageSize = 6

// Service lists articles and guards their mutation. Validation and
// authorization always complete before the store is asked to write.
type Service struct {
	store Store
	log   *zap.SugaredLogger
}

func NewService(store Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log.With("component", "article")}
}

func pageOffset(page int) (int, error) {
	if page < 1 {
		return 0, invalidInput("page must be at least 1, got %d", page)
	}

	return (page - 1) * PageSize, nil
}

// ListAll returns one page of articles, newest first.
func (s *Service) ListAll(ctx context.Context, page int) ([]*model.Article, error) {
	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	articles, err := s.store.List(ctx, offset, PageSize)
	if err != nil {
		return nil, s.fault(ctx, "list articles", err)
	}

	return articles, nil
}

// ListByCategory returns every article in c. The result is not paginated.
func (s *Service) ListByCategory(ctx context.Context, c model.Category) ([]*model.Article, error) {
	category, ok := model.ParseCategory(string(c))
	if !ok {
		return nil, invalidInput("unknown category %q", c)
	}

	articles, err := s.store.ListByCategory(ctx, category)
	if err != nil {
		return nil, s.fault(ctx, "list articles by category", err)
	}

	return articles, nil
}

// ListMine returns one page of the articles written by p.
func (s *Service) ListMine(ctx context.Context, p auth.Principal, page int) ([]*model.Article, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthenticated
	}

	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	articles, err := s.store.ListByAuthor(ctx, p.Name, offset, PageSize)
	if err != nil {
		return nil, s.fault(ctx, "list articles by author", err)
	}

	return articles, nil
}

// Search returns one page of articles whose title contains query.
func (s *Service) Search(ctx context.Context, query string, page int) ([]*model.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidInput("empty search query")
	}

	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	articles, err := s.store.Search(ctx, query, offset, PageSize)
	if err != nil {
		return nil, s.fault(ctx, "search articles", err)
	}

	return articles, nil
}

// Categories returns the category index.
func (s *Service) Categories() []model.Category {
	return append([]model.Category(nil), model.Categories...)
}

// GetByID returns the article with its author.
func (s *Service) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	if id <= 0 {
		return nil, invalidInput("article id is required")
	}

	a, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fault(ctx, "get article", err)
	}

	if a == nil {
		return nil, ErrNotFound
	}

	return a, nil
}

// modifiable fetches id and checks p may change it.
func (s *Service) modifiable(ctx context.Context, id int64, p auth.Principal) (*model.Article, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanModify(a, p) {
		s.log.Infow("modification refused", "article_id", id, "user", p.Name)

		return nil, ErrForbidden
	}

	return a, nil
}

// Create stores a new article written by p and returns its id. Only title,
// content and category are taken from in.
func (s *Service) Create(ctx context.Context, in *model.Article, p auth.Principal) (int64, error) {
	if !p.Authenticated() {
		return 0, ErrUnauthenticated
	}

	a := &model.Article{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}
	if a.Category == "" {
		a.Category = model.CategoryClub
	}

	if err := validateArticle(a); err != nil {
		return 0, err
	}

	author, err := s.store.UserByName(ctx, p.Name)
	if err != nil {
		return 0, s.fault(ctx, "resolve author", err)
	}

	if author == nil {
		s.log.Warnw("authenticated user has no account", "user", p.Name)

		return 0, ErrNotFound
	}
	a.AuthorID = author.ID

	id, err := s.store.Create(ctx, a)
	if err != nil {
		return 0, s.fault(ctx, "create article", err)
	}

	s.log.Infow("article created", "article_id", id, "user", p.Name)

	return id, nil
}

// EditForm returns the editable projection of id if p may change it.
func (s *Service) EditForm(ctx context.Context, id int64, p auth.Principal) (*model.EditForm, error) {
	a, err := s.modifiable(ctx, id, p)
	if err != nil {
		return nil, err
	}

	return model.NewEditForm(a), nil
}

// Edit replaces the title and content of form.ID. Category and author never
// change.
func (s *Service) Edit(ctx context.Context, form *model.EditForm, p auth.Principal) error {
	if _, err := s.modifiable(ctx, form.ID, p); err != nil {
		return err
	}

	if err := validateEditForm(form); err != nil {
		return err
	}

	ok, err := s.store.Update(ctx, form.ID, form.Title, form.Content)
	if err != nil {
		return s.fault(ctx, "update article", err)
	}

	// Deleted between the fetch and the update.
	if !ok {
		return ErrNotFound
	}

	s.log.Infow("article edited", "article_id", form.ID, "user", p.Name)

	return nil
}

// ConfirmDelete returns article id with its author if p may delete it.
func (s *Service) ConfirmDelete(ctx context.Context, id int64, p auth.Principal) (*model.Article, error) {
	return s.modifiable(ctx, id, p)
}

// Delete removes id permanently.
func (s *Service) Delete(ctx context.Context, id int64, p auth.Principal) error {
	if _, err := s.modifiable(ctx, id, p); err != nil {
		return err
	}

	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.fault(ctx, "delete article", err)
	}

	if !ok {
		return ErrNotFound
	}

	s.log.Infow("article deleted", "article_id", id, "user", p.Name)

	return nil
}

// Users lists accounts for administrators.
func (s *Service) Users(ctx context.Context, p auth.Principal) ([]*model.User, error) {
	if !p.HasRole(model.RoleAdmin) {
		return nil, ErrForbidden
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, s.fault(ctx, "list users", err)
	}

	return users, nil
}

func (s *Service) fault(ctx context.Context, op string, err error) error {
	s.log.Errorw("store failure", "op", op, "error", err, "ctx_err", ctx.Err())

	return fault(op, err)
}
