package infra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// MemoryStore implements every domain store on plain maps. It backs the
// test suite and the zero-config development mode (empty DATABASE_URL).
//
// All methods are safe for concurrent use; a single mutex is enough at
// this scale.
type MemoryStore struct {
	mu sync.Mutex

	nextID     int64
	users      map[int64]*domain.User
	categories map[int64]*domain.Category
	posts      map[int64]*domain.Post
	comments   map[int64]*domain.Comment
	likes      map[int64]*domain.Like
	views      map[int64]*domain.View
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]*domain.User),
		categories: make(map[int64]*domain.Category),
		posts:      make(map[int64]*domain.Post),
		comments:   make(map[int64]*domain.Comment),
		likes:      make(map[int64]*domain.Like),
		views:      make(map[int64]*domain.View),
	}
}

func (m *MemoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

// --- users ---

func (m *MemoryStore) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	u.ID = m.id()
	u.CreatedAt = time.Now().UTC()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryStore) UserByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) UserByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MemoryStore) UpdateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	// Cascade like the relational schema does: the user's posts go,
	// and everything hanging off those posts goes with them, whoever
	// wrote it.
	gone := make(map[int64]bool)
	for pid, p := range m.posts {
		if p.UserID == id {
			gone[pid] = true
			delete(m.posts, pid)
		}
	}
	for cid, c := range m.comments {
		if c.UserID == id || gone[c.PostID] {
			delete(m.comments, cid)
		}
	}
	for lid, l := range m.likes {
		if l.UserID == id || gone[l.PostID] {
			delete(m.likes, lid)
		}
	}
	for vid, v := range m.views {
		if gone[v.PostID] {
			delete(m.views, vid)
		}
	}
	return nil
}

// --- categories ---

func (m *MemoryStore) CreateCategory(_ context.Context, c *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return domain.ErrCategoryExists
		}
	}
	c.ID = m.id()
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *MemoryStore) CategoryByID(_ context.Context, id int64) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) CategoryByName(_ context.Context, name string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MemoryStore) ListCategories(_ context.Context, page domain.Page) ([]domain.Category, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, page), len(all), nil
}

func (m *MemoryStore) UpdateCategory(_ context.Context, c *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteCategory(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

// --- posts ---

func (m *MemoryStore) CreatePost(_ context.Context, p *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.posts {
		if existing.Title == p.Title {
			return domain.ErrDuplicateTitle
		}
	}
	now := time.Now().UTC()
	p.ID = m.id()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *MemoryStore) PostByID(_ context.Context, id int64) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) ListPosts(_ context.Context, page domain.Page) ([]domain.Post, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]domain.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, page), len(all), nil
}

func (m *MemoryStore) PostsByCategory(_ context.Context, categoryID int64) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Post
	for _, p := range m.posts {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdatePost(_ context.Context, p *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	for _, existing := range m.posts {
		if existing.ID != p.ID && existing.Title == p.Title {
			return domain.ErrDuplicateTitle
		}
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *MemoryStore) DeletePost(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(m.posts, id)
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	for lid, l := range m.likes {
		if l.PostID == id {
			delete(m.likes, lid)
		}
	}
	for vid, v := range m.views {
		if v.PostID == id {
			delete(m.views, vid)
		}
	}
	return nil
}

func (m *MemoryStore) Stats(_ context.Context, postID int64) (domain.PostStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var st domain.PostStats
	for _, c := range m.comments {
		if c.PostID == postID {
			st.Comments++
		}
	}
	for _, l := range m.likes {
		if l.PostID == postID {
			st.Likes++
		}
	}
	for _, v := range m.views {
		if v.PostID == postID {
			st.Views++
		}
	}
	return st, nil
}

// --- comments ---

func (m *MemoryStore) CreateComment(_ context.Context, c *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.id()
	c.CreatedAt = time.Now().UTC()
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *MemoryStore) CommentByID(_ context.Context, id int64) (*domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) CommentsByPost(_ context.Context, postID int64, page domain.Page) ([]domain.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterComments(page, func(c *domain.Comment) bool { return c.PostID == postID })
}

func (m *MemoryStore) CommentsByUser(_ context.Context, userID int64, page domain.Page) ([]domain.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterComments(page, func(c *domain.Comment) bool { return c.UserID == userID })
}

func (m *MemoryStore) filterComments(page domain.Page, keep func(*domain.Comment) bool) ([]domain.Comment, int, error) {
	var all []domain.Comment
	for _, c := range m.comments {
		if keep(c) {
			all = append(all, *c)
		}
	}
	// Newest first; IDs are monotonic so they tie-break equal timestamps.
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, page), len(all), nil
}

func (m *MemoryStore) UpdateComment(_ context.Context, c *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteComment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

// --- likes ---

func (m *MemoryStore) CreateLike(_ context.Context, l *domain.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.likes {
		if existing.UserID == l.UserID && existing.PostID == l.PostID {
			return domain.ErrAlreadyLiked
		}
	}
	l.ID = m.id()
	l.CreatedAt = time.Now().UTC()
	cp := *l
	m.likes[l.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteLike(_ context.Context, userID, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, l := range m.likes {
		if l.UserID == userID && l.PostID == postID {
			delete(m.likes, id)
			return nil
		}
	}
	return domain.ErrLikeNotFound
}

func (m *MemoryStore) LikesByPost(_ context.Context, postID int64, page domain.Page) ([]domain.Like, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterLikes(page, func(l *domain.Like) bool { return l.PostID == postID })
}

func (m *MemoryStore) LikesByUser(_ context.Context, userID int64, page domain.Page) ([]domain.Like, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterLikes(page, func(l *domain.Like) bool { return l.UserID == userID })
}

func (m *MemoryStore) filterLikes(page domain.Page, keep func(*domain.Like) bool) ([]domain.Like, int, error) {
	var all []domain.Like
	for _, l := range m.likes {
		if keep(l) {
			all = append(all, *l)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, page), len(all), nil
}

// --- views ---

func (m *MemoryStore) CreateView(_ context.Context, v *domain.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v.ID = m.id()
	v.ViewedAt = time.Now().UTC()
	cp := *v
	m.views[v.ID] = &cp
	return nil
}

func (m *MemoryStore) CountViews(_ context.Context, postID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, v := range m.views {
		if v.PostID == postID {
			n++
		}
	}
	return n, nil
}

// window slices out the requested page, tolerating out-of-range skips.
func window[T any](all []T, page domain.Page) []T {
	if page.Skip >= len(all) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Skip:end]
}
