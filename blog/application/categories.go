package application

import (
	"context"
	"strings"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

type CategoryInput struct {
	Name string
}

func (in CategoryInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 30 {
		return domain.Invalid("name", "must be between 1 and 30 characters")
	}
	return nil
}

// CategoryService owns the category catalogue. Every write is admin-only.
type CategoryService struct {
	Categories domain.CategoryStore
	Posts      domain.PostStore
}

func (s *CategoryService) Create(ctx context.Context, caller *Identity, in CategoryInput) (*domain.Category, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c := &domain.Category{Name: strings.TrimSpace(in.Name)}
	if err := s.Categories.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) ByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.Categories.CategoryByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, page domain.Page) ([]domain.Category, int, error) {
	return s.Categories.ListCategories(ctx, page.Normalized())
}

// PostsOf returns the category together with every post filed under it.
func (s *CategoryService) PostsOf(ctx context.Context, id int64) (*domain.Category, []domain.Post, error) {
	c, err := s.Categories.CategoryByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.Posts.PostsByCategory(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return c, posts, nil
}

func (s *CategoryService) Rename(ctx context.Context, caller *Identity, id int64, in CategoryInput) (*domain.Category, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := s.Categories.CategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == c.Name {
		return c, nil
	}
	if _, err := s.Categories.CategoryByName(ctx, name); err == nil {
		return nil, domain.ErrCategoryExists
	}

	c.Name = name
	if err := s.Categories.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, caller *Identity, id int64) error {
	if !caller.IsAdmin() {
		return domain.ErrAdminRequired
	}
	if _, err := s.Categories.CategoryByID(ctx, id); err != nil {
		return err
	}
	return s.Categories.DeleteCategory(ctx, id)
}
