package domain

import "context"

// Page is the skip/limit window used by every listing operation.
type Page struct {
	Skip  int
	Limit int
}

// Normalized clamps the window to sane bounds: limit defaults to 10 and
// never exceeds 100, skip never goes negative.
func (p Page) Normalized() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// UserStore persists accounts. Create fills ID and CreatedAt, and returns
// ErrUsernameTaken on a duplicate username.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	UserByID(ctx context.Context, id int64) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id int64) error
}

// CategoryStore persists categories. Create returns ErrCategoryExists on
// a duplicate name.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *Category) error
	CategoryByID(ctx context.Context, id int64) (*Category, error)
	CategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context, page Page) ([]Category, int, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// PostStore persists posts. Listing is newest-first and returns the total
// count alongside the window.
type PostStore interface {
	CreatePost(ctx context.Context, p *Post) error
	PostByID(ctx context.Context, id int64) (*Post, error)
	ListPosts(ctx context.Context, page Page) ([]Post, int, error)
	PostsByCategory(ctx context.Context, categoryID int64) ([]Post, error)
	UpdatePost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id int64) error
	Stats(ctx context.Context, postID int64) (PostStats, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, c *Comment) error
	CommentByID(ctx context.Context, id int64) (*Comment, error)
	CommentsByPost(ctx context.Context, postID int64, page Page) ([]Comment, int, error)
	CommentsByUser(ctx context.Context, userID int64, page Page) ([]Comment, int, error)
	UpdateComment(ctx context.Context, c *Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

// LikeStore persists likes. Create returns ErrAlreadyLiked when the
// (user, post) pair already exists.
type LikeStore interface {
	CreateLike(ctx context.Context, l *Like) error
	DeleteLike(ctx context.Context, userID, postID int64) error
	LikesByPost(ctx context.Context, postID int64, page Page) ([]Like, int, error)
	LikesByUser(ctx context.Context, userID int64, page Page) ([]Like, int, error)
}

// ViewStore records post reads. Recording is best-effort: callers must
// not fail a request over a lost view.
type ViewStore interface {
	CreateView(ctx context.Context, v *View) error
	CountViews(ctx context.Context, postID int64) (int64, error)
}
