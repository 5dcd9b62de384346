package application

import (
	"context"
	"strings"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

type CreateCommentInput struct {
	PostID  int64
	Content string
}

func (in CreateCommentInput) Validate() error {
	if in.PostID <= 0 {
		return domain.Invalid("post_id", "must be a positive integer")
	}
	return validateCommentContent(in.Content)
}

func validateCommentContent(content string) error {
	if n := len(strings.TrimSpace(content)); n < 1 || n > 150 {
		return domain.Invalid("content", "must be between 1 and 150 characters")
	}
	return nil
}

// CommentService owns comments. Editing is author-only; deleting is
// author or admin.
type CommentService struct {
	Comments domain.CommentStore
	Posts    domain.PostStore
	Users    domain.UserStore
}

func (s *CommentService) Create(ctx context.Context, caller *Identity, in CreateCommentInput) (*domain.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Posts.PostByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		Content: strings.TrimSpace(in.Content),
		UserID:  caller.UserID,
		PostID:  in.PostID,
	}
	if err := s.Comments.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ByPost lists a post's comments, newest first.
func (s *CommentService) ByPost(ctx context.Context, postID int64, page domain.Page) ([]domain.Comment, int, error) {
	if _, err := s.Posts.PostByID(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.Comments.CommentsByPost(ctx, postID, page.Normalized())
}

func (s *CommentService) ByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Comment, int, error) {
	if _, err := s.Users.UserByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.Comments.CommentsByUser(ctx, userID, page.Normalized())
}

func (s *CommentService) Update(ctx context.Context, caller *Identity, id int64, content string) (*domain.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	c, err := s.Comments.CommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}

	c.Content = strings.TrimSpace(content)
	if err := s.Comments.UpdateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, caller *Identity, id int64) error {
	c, err := s.Comments.CommentByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != caller.UserID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.Comments.DeleteComment(ctx, id)
}
