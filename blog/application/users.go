package application

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// UserService covers the self-service operations on the caller's own
// account.
type UserService struct {
	Users domain.UserStore
}

func (s *UserService) Me(ctx context.Context, caller *Identity) (*domain.User, error) {
	return s.Users.UserByID(ctx, caller.UserID)
}

// ChangePassword re-hashes and stores a new password for the caller.
func (s *UserService) ChangePassword(ctx context.Context, caller *Identity, password string) (*domain.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	u, err := s.Users.UserByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = string(hash)
	if err := s.Users.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) DeleteMe(ctx context.Context, caller *Identity) error {
	return s.Users.DeleteUser(ctx, caller.UserID)
}
