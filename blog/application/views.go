package application

import (
	"context"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// ViewService records post reads. Recording failures are swallowed by
// callers: a lost view must never fail the read that caused it.
type ViewService struct {
	Views domain.ViewStore
}

// Record stores one view. caller may be nil for anonymous readers.
func (s *ViewService) Record(ctx context.Context, caller *Identity, postID int64, ip string) error {
	v := &domain.View{PostID: postID, IPAddress: ip}
	if caller != nil {
		v.UserID = caller.UserID
	}
	return s.Views.CreateView(ctx, v)
}

func (s *ViewService) Count(ctx context.Context, postID int64) (int64, error) {
	return s.Views.CountViews(ctx, postID)
}
