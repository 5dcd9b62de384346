package application

import (
	"context"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// LikeService owns the like/unlike pair. One like per user per post.
type LikeService struct {
	Likes domain.LikeStore
	Posts domain.PostStore
}

func (s *LikeService) Like(ctx context.Context, caller *Identity, postID int64) (*domain.Like, error) {
	if _, err := s.Posts.PostByID(ctx, postID); err != nil {
		return nil, err
	}

	l := &domain.Like{UserID: caller.UserID, PostID: postID}
	if err := s.Likes.CreateLike(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LikeService) Unlike(ctx context.Context, caller *Identity, postID int64) error {
	return s.Likes.DeleteLike(ctx, caller.UserID, postID)
}

// ByPost returns the post's likes and the total like count.
func (s *LikeService) ByPost(ctx context.Context, postID int64, page domain.Page) ([]domain.Like, int, error) {
	if _, err := s.Posts.PostByID(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.Likes.LikesByPost(ctx, postID, page.Normalized())
}

func (s *LikeService) ByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Like, int, error) {
	return s.Likes.LikesByUser(ctx, userID, page.Normalized())
}
