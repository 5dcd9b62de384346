package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// NewPool connects a pgx pool to the given DSN with the settings the
// service wants everywhere: bounded connections and per-connection
// statement caching.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 25
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGSERIAL PRIMARY KEY,
	username   VARCHAR(50) NOT NULL UNIQUE,
	password   VARCHAR(100) NOT NULL,
	role       VARCHAR(10) NOT NULL DEFAULT 'USER',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS categories (
	id   BIGSERIAL PRIMARY KEY,
	name VARCHAR(30) NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS posts (
	id          BIGSERIAL PRIMARY KEY,
	title       VARCHAR(100) NOT NULL UNIQUE,
	content     TEXT NOT NULL,
	user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id BIGINT NOT NULL REFERENCES categories(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS comments (
	id         BIGSERIAL PRIMARY KEY,
	content    VARCHAR(150) NOT NULL,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	post_id    BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS likes (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	post_id    BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, post_id)
);
CREATE TABLE IF NOT EXISTS views (
	id         BIGSERIAL PRIMARY KEY,
	post_id    BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	user_id    BIGINT,
	ip_address VARCHAR(45) NOT NULL,
	viewed_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_likes_post ON likes(post_id);
CREATE INDEX IF NOT EXISTS idx_views_post ON views(post_id);
`

// PostgresStore implements every domain store on a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the tables when missing. Good enough for a
// single-service database; a dedicated migration tool can take over
// without changing this store.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// isUniqueViolation reports a Postgres 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- users ---

func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password, role) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		u.Username, u.PasswordHash, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, password, role, created_at FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, password, role, created_at FROM users WHERE username = $1`, username))
}

func (s *PostgresStore) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, u *domain.User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET username = $2, password = $3, role = $4 WHERE id = $1`,
		u.ID, u.Username, u.PasswordHash, string(u.Role))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// --- categories ---

func (s *PostgresStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
	if isUniqueViolation(err) {
		return domain.ErrCategoryExists
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *PostgresStore) CategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := s.pool.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) CategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := s.pool.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE name = $1`, name).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context, page domain.Page) ([]domain.Category, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM categories ORDER BY id OFFSET $1 LIMIT $2`,
		page.Skip, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, c *domain.Category) error {
	tag, err := s.pool.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, c.ID, c.Name)
	if isUniqueViolation(err) {
		return domain.ErrCategoryExists
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// --- posts ---

const postColumns = `id, title, content, user_id, category_id, created_at, updated_at`

func (s *PostgresStore) CreatePost(ctx context.Context, p *domain.Post) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, user_id, category_id) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		p.Title, p.Content, p.UserID, p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *PostgresStore) PostByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	err := s.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) ListPosts(ctx context.Context, page domain.Page) ([]domain.Post, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC OFFSET $1 LIMIT $2`,
		page.Skip, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	out, err := scanPosts(rows)
	return out, total, err
}

func (s *PostgresStore) PostsByCategory(ctx context.Context, categoryID int64) ([]domain.Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postColumns+` FROM posts WHERE category_id = $1 ORDER BY created_at DESC, id DESC`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("posts by category: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func scanPosts(rows pgx.Rows) ([]domain.Post, error) {
	out := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdatePost(ctx context.Context, p *domain.Post) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE posts SET title = $2, content = $3, category_id = $4, updated_at = now() WHERE id = $1`,
		p.ID, p.Title, p.Content, p.CategoryID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (s *PostgresStore) DeletePost(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (s *PostgresStore) Stats(ctx context.Context, postID int64) (domain.PostStats, error) {
	var st domain.PostStats
	err := s.pool.QueryRow(ctx,
		`SELECT
			(SELECT count(*) FROM comments WHERE post_id = $1),
			(SELECT count(*) FROM likes WHERE post_id = $1),
			(SELECT count(*) FROM views WHERE post_id = $1)`,
		postID).Scan(&st.Comments, &st.Likes, &st.Views)
	if err != nil {
		return domain.PostStats{}, fmt.Errorf("post stats: %w", err)
	}
	return st, nil
}

// --- comments ---

func (s *PostgresStore) CreateComment(ctx context.Context, c *domain.Comment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO comments (content, user_id, post_id) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		c.Content, c.UserID, c.PostID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (s *PostgresStore) CommentByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	err := s.pool.QueryRow(ctx,
		`SELECT id, content, user_id, post_id, created_at FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) CommentsByPost(ctx context.Context, postID int64, page domain.Page) ([]domain.Comment, int, error) {
	return s.listComments(ctx, `post_id`, postID, page)
}

func (s *PostgresStore) CommentsByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Comment, int, error) {
	return s.listComments(ctx, `user_id`, userID, page)
}

func (s *PostgresStore) listComments(ctx context.Context, column string, id int64, page domain.Page) ([]domain.Comment, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM comments WHERE `+column+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, content, user_id, post_id, created_at FROM comments
		 WHERE `+column+` = $1 ORDER BY created_at DESC, id DESC OFFSET $2 LIMIT $3`,
		id, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (s *PostgresStore) UpdateComment(ctx context.Context, c *domain.Comment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE comments SET content = $2 WHERE id = $1`, c.ID, c.Content)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// --- likes ---

func (s *PostgresStore) CreateLike(ctx context.Context, l *domain.Like) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO likes (user_id, post_id) VALUES ($1, $2) RETURNING id, created_at`,
		l.UserID, l.PostID).Scan(&l.ID, &l.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyLiked
	}
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteLike(ctx context.Context, userID, postID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (s *PostgresStore) LikesByPost(ctx context.Context, postID int64, page domain.Page) ([]domain.Like, int, error) {
	return s.listLikes(ctx, `post_id`, postID, page)
}

func (s *PostgresStore) LikesByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Like, int, error) {
	return s.listLikes(ctx, `user_id`, userID, page)
}

func (s *PostgresStore) listLikes(ctx context.Context, column string, id int64, page domain.Page) ([]domain.Like, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM likes WHERE `+column+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count likes: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, post_id, created_at FROM likes
		 WHERE `+column+` = $1 ORDER BY id OFFSET $2 LIMIT $3`,
		id, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	out := []domain.Like{}
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.PostID, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan like: %w", err)
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

// --- views ---

func (s *PostgresStore) CreateView(ctx context.Context, v *domain.View) error {
	var userID any
	if v.UserID != 0 {
		userID = v.UserID
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO views (post_id, user_id, ip_address) VALUES ($1, $2, $3)
		 RETURNING id, viewed_at`,
		v.PostID, userID, v.IPAddress).Scan(&v.ID, &v.ViewedAt)
	if err != nil {
		return fmt.Errorf("insert view: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountViews(ctx context.Context, postID int64) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM views WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count views: %w", err)
	}
	return n, nil
}
