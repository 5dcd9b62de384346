package httpapi

import (
	"time"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// Response shapes. Field names and nesting follow what API clients
// already consume.

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

type categoryPostsResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Posts []postResponse `json:"posts"`
}

type postResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	UserID       int64     `json:"user_id"`
	CategoryID   int64     `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CommentCount int64     `json:"comment_count"`
	LikeCount    int64     `json:"like_count"`
	ViewCount    int64     `json:"view_count"`
}

func toPostResponse(p *domain.Post, stats domain.PostStats) postResponse {
	return postResponse{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		UserID:       p.UserID,
		CategoryID:   p.CategoryID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		CommentCount: stats.Comments,
		LikeCount:    stats.Likes,
		ViewCount:    stats.Views,
	}
}

type commentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{ID: c.ID, Content: c.Content, UserID: c.UserID, PostID: c.PostID, CreatedAt: c.CreatedAt}
}

type likeResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toLikeResponse(l domain.Like) likeResponse {
	return likeResponse{ID: l.ID, UserID: l.UserID, PostID: l.PostID, CreatedAt: l.CreatedAt}
}

type postLikesResponse struct {
	PostID    int64          `json:"post_id"`
	LikeCount int            `json:"like_count"`
	Likes     []likeResponse `json:"likes"`
}

type postViewsResponse struct {
	PostID    int64 `json:"post_id"`
	ViewCount int64 `json:"view_count"`
}

// pagedResponse wraps any listing with the pagination envelope.
type pagedResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

func paged[T any](items []T, total int, page domain.Page) pagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return pagedResponse[T]{
		Items: items,
		Total: total,
		Page:  page.Skip/page.Limit + 1,
		Size:  page.Limit,
		Pages: (total + page.Limit - 1) / page.Limit,
	}
}

func mapSlice[S, T any](in []S, f func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
