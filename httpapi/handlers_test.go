package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/muhammadali233755/blogging-app/blog/application"
	"github.com/muhammadali233755/blogging-app/blog/domain"
	"github.com/muhammadali233755/blogging-app/blog/infra"
)

type testServer struct {
	handler http.Handler
	store   *infra.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := infra.NewMemoryStore()
	auth := &application.AuthService{
		Users:      store,
		Secret:     []byte("test-secret"),
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	api := &API{
		Auth:       auth,
		Users:      &application.UserService{Users: store},
		Posts:      &application.PostService{Posts: store, Categories: store},
		Comments:   &application.CommentService{Comments: store, Posts: store, Users: store},
		Likes:      &application.LikeService{Likes: store, Posts: store},
		Categories: &application.CategoryService{Categories: store, Posts: store},
		Views:      &application.ViewService{Views: store},
	}
	return &testServer{
		handler: Chain(api.Routes(), Authenticate(auth)),
		store:   store,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	switch b := body.(type) {
	case nil:
		r = httptest.NewRequest(method, path, nil)
	case url.Values:
		r = httptest.NewRequest(method, path, strings.NewReader(b.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = httptest.NewRequest(method, path, strings.NewReader(string(raw)))
		r.Header.Set("Content-Type", "application/json")
	}
	r.RemoteAddr = "10.0.0.1:1234"
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)
	return w
}

// login registers (ignoring duplicates) and returns an access token.
func (ts *testServer) login(t *testing.T, username string) string {
	t.Helper()
	ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"password": "supersecret",
	})
	w := ts.do(t, http.MethodPost, "/auth/token", "", url.Values{
		"username": {username},
		"password": {"supersecret"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, w.Code, w.Body.String())
	}
	var tok tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tok); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return tok.AccessToken
}

// loginAdmin promotes the account before logging in.
func (ts *testServer) loginAdmin(t *testing.T, username string) string {
	t.Helper()
	ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"password": "supersecret",
	})
	u, err := ts.store.UserByUsername(t.Context(), username)
	if err != nil {
		t.Fatalf("lookup %s: %v", username, err)
	}
	u.Role = domain.RoleAdmin
	if err := ts.store.UpdateUser(t.Context(), u); err != nil {
		t.Fatalf("promote %s: %v", username, err)
	}
	return ts.login(t, username)
}

func (ts *testServer) createCategory(t *testing.T, adminToken, name string) int64 {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/categories", adminToken, map[string]string{"name": name})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var c categoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode category: %v", err)
	}
	return c.ID
}

func (ts *testServer) createPost(t *testing.T, token string, categoryID int64, title string) int64 {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/posts", token, map[string]any{
		"title":       title,
		"content":     "Long enough content for a post.",
		"category_id": categoryID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var p postResponse
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	return p.ID
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "supersecret"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "supersecret"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Username already taken") {
		t.Fatalf("expected detail in body, got %s", w.Body.String())
	}
}

func TestToken_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "supersecret"})

	w := ts.do(t, http.MethodPost, "/auth/token", "", url.Values{
		"username": {"alice"},
		"password": {"wrongpass"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
	}
}

func TestRefresh_Flow(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "supersecret"})

	w := ts.do(t, http.MethodPost, "/auth/token", "", url.Values{
		"username": {"alice"},
		"password": {"supersecret"},
	})
	var tok tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tok); err != nil {
		t.Fatalf("decode token: %v", err)
	}

	// The access token must not pass as a refresh token.
	w = ts.do(t, http.MethodPost, "/auth/refresh", tok.AccessToken, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for access token, got %d", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/auth/refresh", tok.RefreshToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var next tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &next); err != nil {
		t.Fatalf("decode refreshed token: %v", err)
	}
	if next.AccessToken == "" || next.RefreshToken == "" {
		t.Fatalf("expected a full pair, got %+v", next)
	}
}

func TestUsersMe(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/users/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", w.Code)
	}

	token := ts.login(t, "alice")
	w = ts.do(t, http.MethodGet, "/users/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var u userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if u.Username != "alice" || u.Role != "USER" {
		t.Fatalf("unexpected user: %+v", u)
	}

	// Garbage token is rejected up front by the middleware.
	w = ts.do(t, http.MethodGet, "/users/me", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}
}

func TestCategories_RBAC(t *testing.T) {
	ts := newTestServer(t)
	userToken := ts.login(t, "alice")

	w := ts.do(t, http.MethodPost, "/categories", userToken, map[string]string{"name": "tech"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER, got %d", w.Code)
	}

	adminToken := ts.loginAdmin(t, "root")
	ts.createCategory(t, adminToken, "tech")

	w = ts.do(t, http.MethodPost, "/categories", adminToken, map[string]string{"name": "tech"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", w.Code)
	}
}

func TestPostLifecycle(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t, "root")
	authorToken := ts.login(t, "alice")
	otherToken := ts.login(t, "bob")

	categoryID := ts.createCategory(t, adminToken, "tech")

	// Unknown category is a 404, not a validation error.
	w := ts.do(t, http.MethodPost, "/posts", authorToken, map[string]any{
		"title":       "A missing category",
		"content":     "Long enough content for a post.",
		"category_id": 999,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing category, got %d", w.Code)
	}

	postID := ts.createPost(t, authorToken, categoryID, "A first post")

	// Anonymous read works and records a view.
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/posts/%d", postID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var p postResponse
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if p.ViewCount != 1 {
		t.Fatalf("expected view_count=1 after first read, got %d", p.ViewCount)
	}

	// Edits: stranger 403, author 200.
	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/posts/%d", postID), otherToken, map[string]string{"title": "Hijacked title"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d", w.Code)
	}
	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/posts/%d", postID), authorToken, map[string]string{"title": "An edited post"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Delete: admin may, and the post is gone.
	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), adminToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/posts/%d", postID), "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestPostValidation_Unprocessable(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t, "root")
	categoryID := ts.createCategory(t, adminToken, "tech")

	w := ts.do(t, http.MethodPost, "/posts", adminToken, map[string]any{
		"title":       "ab",
		"content":     "Long enough content for a post.",
		"category_id": categoryID,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "title") {
		t.Fatalf("expected field name in detail, got %s", w.Body.String())
	}
}

func TestListPosts_Paged(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t, "root")
	categoryID := ts.createCategory(t, adminToken, "tech")
	for i := 0; i < 3; i++ {
		ts.createPost(t, adminToken, categoryID, fmt.Sprintf("Post number %d", i))
	}

	w := ts.do(t, http.MethodGet, "/posts?skip=0&limit=2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var page pagedResponse[postResponse]
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 || page.Pages != 2 || page.Page != 1 {
		t.Fatalf("unexpected page envelope: %+v", page)
	}
	if page.Items[0].Title != "Post number 2" {
		t.Fatalf("expected newest first, got %q", page.Items[0].Title)
	}
}

func TestCommentsFlow(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t, "root")
	aliceToken := ts.login(t, "alice")
	bobToken := ts.login(t, "bob")
	categoryID := ts.createCategory(t, adminToken, "tech")
	postID := ts.createPost(t, aliceToken, categoryID, "A first post")

	w := ts.do(t, http.MethodPost, "/comments", bobToken, map[string]any{"post_id": postID, "content": "nice read"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var c commentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode comment: %v", err)
	}

	// Only the author edits.
	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/comments/%d", c.ID), aliceToken, map[string]string{"content": "rewritten"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", w.Code)
	}
	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/comments/%d", c.ID), bobToken, map[string]string{"content": "rewritten"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/comments/post/%d", postID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var page pagedResponse[commentResponse]
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode comments page: %v", err)
	}
	if page.Total != 1 || page.Items[0].Content != "rewritten" {
		t.Fatalf("unexpected comments: %+v", page)
	}

	w = ts.do(t, http.MethodGet, "/comments/post/999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing post, got %d", w.Code)
	}
}

func TestLikesFlow(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t, "root")
	aliceToken := ts.login(t, "alice")
	categoryID := ts.createCategory(t, adminToken, "tech")
	postID := ts.createPost(t, adminToken, categoryID, "A first post")

	path := fmt.Sprintf("/likes/posts/%d", postID)

	w := ts.do(t, http.MethodPost, path, aliceToken, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	w = ts.do(t, http.MethodPost, path, aliceToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on double like, got %d", w.Code)
	}

	w = ts.do(t, http.MethodGet, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var likes postLikesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil {
		t.Fatalf("decode likes: %v", err)
	}
	if likes.LikeCount != 1 || len(likes.Likes) != 1 {
		t.Fatalf("unexpected likes summary: %+v", likes)
	}

	w = ts.do(t, http.MethodDelete, path, aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = ts.do(t, http.MethodDelete, path, aliceToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second unlike, got %d", w.Code)
	}
}

func TestUpdateMe_ChangePassword(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "alice")

	w := ts.do(t, http.MethodPatch, "/users/me", token, map[string]string{"password": strings.Repeat("p", 73)})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for oversized password, got %d", w.Code)
	}

	w = ts.do(t, http.MethodPatch, "/users/me", token, map[string]string{"password": "newsecret9"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Old password is dead, the new one works.
	w = ts.do(t, http.MethodPost, "/auth/token", "", url.Values{
		"username": {"alice"},
		"password": {"supersecret"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with old password, got %d", w.Code)
	}
	w = ts.do(t, http.MethodPost, "/auth/token", "", url.Values{
		"username": {"alice"},
		"password": {"newsecret9"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with new password, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateMe_NoPasswordIsNoop(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "alice")

	w := ts.do(t, http.MethodPatch, "/users/me", token, map[string]string{})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var u userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestDeleteMe_InvalidatesToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "alice")

	w := ts.do(t, http.MethodDelete, "/users/me", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// The token still parses but its account is gone.
	w = ts.do(t, http.MethodGet, "/users/me", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after account deletion, got %d", w.Code)
	}
}

func TestPostViews_Summary(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t, "root")
	categoryID := ts.createCategory(t, adminToken, "tech")
	postID := ts.createPost(t, adminToken, categoryID, "A first post")

	for i := 0; i < 2; i++ {
		if w := ts.do(t, http.MethodGet, fmt.Sprintf("/posts/%d", postID), "", nil); w.Code != http.StatusOK {
			t.Fatalf("read %d: expected 200, got %d", i, w.Code)
		}
	}

	w := ts.do(t, http.MethodGet, fmt.Sprintf("/posts/%d/views", postID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var views postViewsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode views: %v", err)
	}
	if views.PostID != postID || views.ViewCount != 2 {
		t.Fatalf("unexpected views summary: %+v", views)
	}

	// The summary itself does not count as a view.
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/posts/%d/views", postID), "", nil)
	var again postViewsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &again); err != nil {
		t.Fatalf("decode views: %v", err)
	}
	if again.ViewCount != 2 {
		t.Fatalf("expected view count unchanged, got %d", again.ViewCount)
	}

	if w := ts.do(t, http.MethodGet, "/posts/999/views", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing post, got %d", w.Code)
	}
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "alice")

	r := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader("{not json"))
	r.Header.Set("Authorization", "Bearer "+token)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDocsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/openapi.json", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("openapi.json is not valid JSON: %v", err)
	}

	for _, path := range []string{"/docs", "/redoc"} {
		w := ts.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("expected html for %s, got %q", path, ct)
		}
	}
}
