package domain

import "time"

// Post is a published blog entry. Title is unique across the site.
type Post struct {
	ID         int64
	Title      string
	Content    string
	UserID     int64
	CategoryID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PostStats carries the aggregate counters shown alongside a post.
type PostStats struct {
	Comments int64
	Likes    int64
	Views    int64
}

// Category groups posts under a unique name.
type Category struct {
	ID   int64
	Name string
}

// Comment is a user remark attached to a post.
type Comment struct {
	ID        int64
	Content   string
	UserID    int64
	PostID    int64
	CreatedAt time.Time
}

// Like marks that a user liked a post. At most one per (user, post).
type Like struct {
	ID        int64
	UserID    int64
	PostID    int64
	CreatedAt time.Time
}

// View records one read of a post. UserID is zero for anonymous readers;
// the client IP is kept either way.
type View struct {
	ID        int64
	PostID    int64
	UserID    int64
	IPAddress string
	ViewedAt  time.Time
}
