// Package postgres stores blog posts in a PostgreSQL table. The author is kept as a JSONB document
// so the row has the same shape as the MongoDB document.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/blog-demo/internal/blog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	URL             string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// NewPool creates the connection pool and pings the database
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	poolConfig.MinConns = cfg.MinConnections
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database via pool: %w", err)
	}
	return pool, nil
}

type authorJSON struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

const postColumns = `id::text, author, title, content, created`

// Store implements blog.Store
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanPost(row pgx.Row) (blog.Post, error) {
	var (
		p      blog.Post
		author authorJSON
	)
	if err := row.Scan(&p.ID, &author, &p.Title, &p.Content, &p.Created); err != nil {
		return blog.Post{}, err
	}
	p.Author = blog.Author{FirstName: author.FirstName, LastName: author.LastName}
	p.Created = p.Created.UTC()
	return p, nil
}

func insertArgs(p blog.Post) []any {
	created := p.Created
	if created.IsZero() {
		created = time.Now()
	}
	return []any{
		uuid.New(),
		authorJSON{FirstName: p.Author.FirstName, LastName: p.Author.LastName},
		p.Title,
		p.Content,
		blog.NormalizeCreated(created),
	}
}

const insertPost = `
	INSERT INTO blog_posts (id, author, title, content, created)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + postColumns

func (s *Store) Insert(ctx context.Context, post blog.Post) (blog.Post, error) {
	p, err := scanPost(s.pool.QueryRow(ctx, insertPost, insertArgs(post)...))
	if err != nil {
		return blog.Post{}, fmt.Errorf("failed to insert blog post: %w", err)
	}
	return p, nil
}

// InsertMany sends the inserts as a single batch
func (s *Store) InsertMany(ctx context.Context, posts []blog.Post) ([]blog.Post, error) {
	if len(posts) == 0 {
		return []blog.Post{}, nil
	}

	batch := &pgx.Batch{}
	for _, p := range posts {
		batch.Queue(insertPost, insertArgs(p)...)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := make([]blog.Post, 0, len(posts))
	for range posts {
		p, err := scanPost(results.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("failed to insert blog posts: %w", err)
		}
		inserted = append(inserted, p)
	}
	return inserted, nil
}

func (s *Store) FindAll(ctx context.Context) ([]blog.Post, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY created, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find blog posts: %w", err)
	}
	defer rows.Close()

	posts := []blog.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find blog posts: %w", err)
	}
	return posts, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (blog.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return blog.Post{}, blog.ErrPostNotFound
	}
	return s.findOne(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, postID)
}

func (s *Store) FindOne(ctx context.Context) (blog.Post, error) {
	return s.findOne(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY created, id LIMIT 1`)
}

func (s *Store) findOne(ctx context.Context, query string, args ...any) (blog.Post, error) {
	p, err := scanPost(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return blog.Post{}, blog.ErrPostNotFound
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("failed to find blog post: %w", err)
	}
	return p, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM blog_posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}
	return n, nil
}

// Update merges the present fields into the row. Absent author names are dropped by jsonb_strip_nulls
// so the existing value is kept.
func (s *Store) Update(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return blog.Post{}, blog.ErrPostNotFound
	}

	p, err := scanPost(s.pool.QueryRow(ctx, `
		UPDATE blog_posts SET
			title = COALESCE($2::text, title),
			content = COALESCE($3::text, content),
			author = author || jsonb_strip_nulls(jsonb_build_object('firstName', $4::text, 'lastName', $5::text))
		WHERE id = $1
		RETURNING `+postColumns,
		postID, update.Title, update.Content, update.FirstName, update.LastName,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return blog.Post{}, blog.ErrPostNotFound
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("failed to update blog post: %w", err)
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, postID)
	if err != nil {
		return false, fmt.Errorf("failed to delete blog post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Drop removes every row. The schema is kept so the store stays usable.
func (s *Store) Drop(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE TABLE blog_posts`); err != nil {
		return fmt.Errorf("failed to truncate blog_posts: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}
