package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by stores and services. The HTTP layer maps
// them to status codes; messages match what clients of the API expect.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrPostNotFound     = errors.New("post not found")
	ErrDuplicateTitle   = errors.New("post title already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrLikeNotFound     = errors.New("like not found")
	ErrAlreadyLiked     = errors.New("post already liked")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrAdminRequired      = errors.New("admin privileges required")
)

// ValidationError reports a rejected input field. It maps to 422 at the
// HTTP layer, everything above treats it as opaque.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
