package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

func seedUserAndCategory(t *testing.T, s *MemoryStore) (*domain.User, *domain.Category) {
	t.Helper()
	u := &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleUser}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	c := &domain.Category{Name: "tech"}
	if err := s.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return u, c
}

func TestMemoryStore_UsernameUnique(t *testing.T) {
	s := NewMemoryStore()
	seedUserAndCategory(t, s)

	err := s.CreateUser(context.Background(), &domain.User{Username: "alice"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestMemoryStore_PostTitleUnique(t *testing.T) {
	s := NewMemoryStore()
	u, c := seedUserAndCategory(t, s)

	p := &domain.Post{Title: "Hello", Content: "Some content here.", UserID: u.ID, CategoryID: c.ID}
	if err := s.CreatePost(context.Background(), p); err != nil {
		t.Fatalf("create post: %v", err)
	}
	err := s.CreatePost(context.Background(), &domain.Post{Title: "Hello", Content: "Other.", UserID: u.ID, CategoryID: c.ID})
	if !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestMemoryStore_DeletePostCascades(t *testing.T) {
	s := NewMemoryStore()
	u, c := seedUserAndCategory(t, s)

	p := &domain.Post{Title: "Hello", Content: "Some content here.", UserID: u.ID, CategoryID: c.ID}
	if err := s.CreatePost(context.Background(), p); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := s.CreateComment(context.Background(), &domain.Comment{PostID: p.ID, UserID: u.ID, Content: "hi"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := s.CreateLike(context.Background(), &domain.Like{PostID: p.ID, UserID: u.ID}); err != nil {
		t.Fatalf("create like: %v", err)
	}
	if err := s.CreateView(context.Background(), &domain.View{PostID: p.ID, IPAddress: "10.0.0.1"}); err != nil {
		t.Fatalf("create view: %v", err)
	}

	if err := s.DeletePost(context.Background(), p.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	if _, total, _ := s.CommentsByPost(context.Background(), p.ID, domain.Page{Limit: 10}); total != 0 {
		t.Fatalf("expected comments gone, got %d", total)
	}
	if _, total, _ := s.LikesByPost(context.Background(), p.ID, domain.Page{Limit: 10}); total != 0 {
		t.Fatalf("expected likes gone, got %d", total)
	}
	if n, _ := s.CountViews(context.Background(), p.ID); n != 0 {
		t.Fatalf("expected views gone, got %d", n)
	}
}

func TestMemoryStore_DeleteUserCascadesToContent(t *testing.T) {
	s := NewMemoryStore()
	u, c := seedUserAndCategory(t, s)

	p := &domain.Post{Title: "Hello", Content: "Some content here.", UserID: u.ID, CategoryID: c.ID}
	if err := s.CreatePost(context.Background(), p); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := s.DeleteUser(context.Background(), u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := s.PostByID(context.Background(), p.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected post gone with its author, got %v", err)
	}
}

func TestMemoryStore_DeleteUserCascadesThroughPosts(t *testing.T) {
	s := NewMemoryStore()
	alice, c := seedUserAndCategory(t, s)

	bob := &domain.User{Username: "bob", PasswordHash: "x", Role: domain.RoleUser}
	if err := s.CreateUser(context.Background(), bob); err != nil {
		t.Fatalf("create bob: %v", err)
	}

	p := &domain.Post{Title: "Hello", Content: "Some content here.", UserID: alice.ID, CategoryID: c.ID}
	if err := s.CreatePost(context.Background(), p); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := s.CreateComment(context.Background(), &domain.Comment{PostID: p.ID, UserID: bob.ID, Content: "hi"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := s.CreateLike(context.Background(), &domain.Like{PostID: p.ID, UserID: bob.ID}); err != nil {
		t.Fatalf("create like: %v", err)
	}
	if err := s.CreateView(context.Background(), &domain.View{PostID: p.ID, IPAddress: "10.0.0.1"}); err != nil {
		t.Fatalf("create view: %v", err)
	}

	if err := s.DeleteUser(context.Background(), alice.ID); err != nil {
		t.Fatalf("delete alice: %v", err)
	}

	// Bob's content on alice's post goes with the post, same as the
	// relational ON DELETE CASCADE chain.
	if _, total, _ := s.CommentsByUser(context.Background(), bob.ID, domain.Page{Limit: 10}); total != 0 {
		t.Fatalf("expected bob's comments on the dead post gone, got %d", total)
	}
	if _, total, _ := s.LikesByUser(context.Background(), bob.ID, domain.Page{Limit: 10}); total != 0 {
		t.Fatalf("expected bob's likes on the dead post gone, got %d", total)
	}
	if n, _ := s.CountViews(context.Background(), p.ID); n != 0 {
		t.Fatalf("expected views on the dead post gone, got %d", n)
	}
}

func TestMemoryStore_ListPostsWindow(t *testing.T) {
	s := NewMemoryStore()
	u, c := seedUserAndCategory(t, s)

	titles := []string{"First post", "Second post", "Third post"}
	for _, title := range titles {
		if err := s.CreatePost(context.Background(), &domain.Post{Title: title, Content: "Some content here.", UserID: u.ID, CategoryID: c.ID}); err != nil {
			t.Fatalf("create post %q: %v", title, err)
		}
	}

	posts, total, err := s.ListPosts(context.Background(), domain.Page{Skip: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	// Newest first, so skip=1 lands on the middle one.
	if len(posts) != 1 || posts[0].Title != "Second post" {
		t.Fatalf("expected [Second post], got %+v", posts)
	}

	posts, _, err = s.ListPosts(context.Background(), domain.Page{Skip: 10, Limit: 10})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty window past the end, got %+v", posts)
	}
}

func TestMemoryStore_LikeUniquePerUserPost(t *testing.T) {
	s := NewMemoryStore()
	u, c := seedUserAndCategory(t, s)

	p := &domain.Post{Title: "Hello", Content: "Some content here.", UserID: u.ID, CategoryID: c.ID}
	if err := s.CreatePost(context.Background(), p); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := s.CreateLike(context.Background(), &domain.Like{UserID: u.ID, PostID: p.ID}); err != nil {
		t.Fatalf("first like: %v", err)
	}
	err := s.CreateLike(context.Background(), &domain.Like{UserID: u.ID, PostID: p.ID})
	if !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
}
