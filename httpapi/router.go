package httpapi

import (
	"net/http"

	"github.com/muhammadali233755/blogging-app/blog/application"
)

// API bundles the services behind the HTTP surface.
type API struct {
	Auth       *application.AuthService
	Users      *application.UserService
	Posts      *application.PostService
	Comments   *application.CommentService
	Likes      *application.LikeService
	Categories *application.CategoryService
	Views      *application.ViewService

	// TrustXFF controls whether X-Forwarded-For is believed when
	// resolving the viewer IP.
	TrustXFF bool
}

// Routes builds the full route table. Method+path patterns need Go 1.22
// ServeMux semantics.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /auth/register", a.handleRegister)
	mux.HandleFunc("POST /auth/token", a.handleToken)
	mux.HandleFunc("POST /auth/refresh", a.handleRefresh)

	mux.HandleFunc("GET /users/me", a.handleMe)
	mux.HandleFunc("PATCH /users/me", a.handleUpdateMe)
	mux.HandleFunc("DELETE /users/me", a.handleDeleteMe)

	mux.HandleFunc("POST /posts", a.handleCreatePost)
	mux.HandleFunc("GET /posts", a.handleListPosts)
	mux.HandleFunc("GET /posts/{post_id}", a.handleGetPost)
	mux.HandleFunc("PATCH /posts/{post_id}", a.handleUpdatePost)
	mux.HandleFunc("DELETE /posts/{post_id}", a.handleDeletePost)
	mux.HandleFunc("GET /posts/{post_id}/views", a.handlePostViews)

	mux.HandleFunc("POST /comments", a.handleCreateComment)
	mux.HandleFunc("GET /comments/post/{post_id}", a.handlePostComments)
	mux.HandleFunc("GET /comments/user/{user_id}", a.handleUserComments)
	mux.HandleFunc("PATCH /comments/{comment_id}", a.handleUpdateComment)
	mux.HandleFunc("DELETE /comments/{comment_id}", a.handleDeleteComment)

	mux.HandleFunc("POST /likes/posts/{post_id}", a.handleLikePost)
	mux.HandleFunc("DELETE /likes/posts/{post_id}", a.handleUnlikePost)
	mux.HandleFunc("GET /likes/posts/{post_id}", a.handlePostLikes)
	mux.HandleFunc("GET /likes/users/{user_id}", a.handleUserLikes)

	mux.HandleFunc("POST /categories", a.handleCreateCategory)
	mux.HandleFunc("GET /categories", a.handleListCategories)
	mux.HandleFunc("GET /categories/{category_id}/posts", a.handleCategoryPosts)
	mux.HandleFunc("PATCH /categories/{category_id}", a.handleUpdateCategory)
	mux.HandleFunc("DELETE /categories/{category_id}", a.handleDeleteCategory)

	registerDocs(mux)

	return mux
}
