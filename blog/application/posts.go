package application

import (
	"context"
	"strings"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

type CreatePostInput struct {
	Title      string
	Content    string
	CategoryID int64
}

func (in CreatePostInput) Validate() error {
	if n := len(strings.TrimSpace(in.Title)); n < 3 || n > 100 {
		return domain.Invalid("title", "must be between 3 and 100 characters")
	}
	if len(strings.TrimSpace(in.Content)) < 10 {
		return domain.Invalid("content", "must be at least 10 characters")
	}
	if in.CategoryID <= 0 {
		return domain.Invalid("category_id", "must be a positive integer")
	}
	return nil
}

// UpdatePostInput is a partial update: nil fields are left alone.
type UpdatePostInput struct {
	Title      *string
	Content    *string
	CategoryID *int64
}

func (in UpdatePostInput) Validate() error {
	if in.Title != nil {
		if n := len(strings.TrimSpace(*in.Title)); n < 3 || n > 100 {
			return domain.Invalid("title", "must be between 3 and 100 characters")
		}
	}
	if in.Content != nil && len(strings.TrimSpace(*in.Content)) < 10 {
		return domain.Invalid("content", "must be at least 10 characters")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return domain.Invalid("category_id", "must be a positive integer")
	}
	return nil
}

// PostService owns post lifecycle. Edits and deletes are allowed to the
// author or an admin, nobody else.
type PostService struct {
	Posts      domain.PostStore
	Categories domain.CategoryStore
}

func (s *PostService) Create(ctx context.Context, caller *Identity, in CreatePostInput) (*domain.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Categories.CategoryByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	p := &domain.Post{
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		UserID:     caller.UserID,
		CategoryID: in.CategoryID,
	}
	if err := s.Posts.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, domain.PostStats, error) {
	p, err := s.Posts.PostByID(ctx, id)
	if err != nil {
		return nil, domain.PostStats{}, err
	}
	stats, err := s.Posts.Stats(ctx, id)
	if err != nil {
		return nil, domain.PostStats{}, err
	}
	return p, stats, nil
}

func (s *PostService) List(ctx context.Context, page domain.Page) ([]domain.Post, int, error) {
	return s.Posts.ListPosts(ctx, page.Normalized())
}

// StatsOf exposes the per-post counters without refetching the post.
func (s *PostService) StatsOf(ctx context.Context, id int64) (domain.PostStats, error) {
	return s.Posts.Stats(ctx, id)
}

func (s *PostService) Update(ctx context.Context, caller *Identity, id int64, in UpdatePostInput) (*domain.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.Posts.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.CategoryID != nil {
		if _, err := s.Categories.CategoryByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}

	if err := s.Posts.UpdatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, caller *Identity, id int64) error {
	p, err := s.Posts.PostByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != caller.UserID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.Posts.DeletePost(ctx, id)
}
