// Package databasetest provides an in-memory blog.Store and a conformance suite that every
// store backend must pass.
package databasetest

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
)

// MemoryStore is a blog.Store held in memory, used by unit tests.
type MemoryStore struct {
	mu     sync.Mutex
	posts  map[string]blog.Post
	nextID int

	// Err, when set, is returned by every operation (to test error handling).
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[string]blog.Post)}
}

var _ blog.Store = (*MemoryStore)(nil)

func (m *MemoryStore) insertLocked(p blog.Post) blog.Post {
	m.nextID++
	p.ID = strconv.Itoa(m.nextID)
	if p.Created.IsZero() {
		p.Created = time.Now()
	}
	p.Created = blog.NormalizeCreated(p.Created)
	m.posts[p.ID] = p
	return p
}

func (m *MemoryStore) Insert(ctx context.Context, post blog.Post) (blog.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return blog.Post{}, m.Err
	}
	return m.insertLocked(post), nil
}

func (m *MemoryStore) InsertMany(ctx context.Context, posts []blog.Post) ([]blog.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	inserted := make([]blog.Post, 0, len(posts))
	for _, p := range posts {
		inserted = append(inserted, m.insertLocked(p))
	}
	return inserted, nil
}

func (m *MemoryStore) sortedLocked() []blog.Post {
	posts := make([]blog.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	slices.SortFunc(posts, func(a, b blog.Post) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		ai, _ := strconv.Atoi(a.ID)
		bi, _ := strconv.Atoi(b.ID)
		return ai - bi
	})
	return posts
}

func (m *MemoryStore) FindAll(ctx context.Context) ([]blog.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sortedLocked(), nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (blog.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return blog.Post{}, m.Err
	}
	p, ok := m.posts[id]
	if !ok {
		return blog.Post{}, blog.ErrPostNotFound
	}
	return p, nil
}

func (m *MemoryStore) FindOne(ctx context.Context) (blog.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return blog.Post{}, m.Err
	}
	posts := m.sortedLocked()
	if len(posts) == 0 {
		return blog.Post{}, blog.ErrPostNotFound
	}
	return posts[0], nil
}

func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.posts)), nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return blog.Post{}, m.Err
	}
	p, ok := m.posts[id]
	if !ok {
		return blog.Post{}, blog.ErrPostNotFound
	}
	p = update.Apply(p)
	m.posts[id] = p
	return p, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.posts[id]
	delete(m.posts, id)
	return ok, nil
}

func (m *MemoryStore) Drop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.posts = make(map[string]blog.Post)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// ErrUnavailable is a convenience error for MemoryStore.Err
var ErrUnavailable = errors.New("database unavailable")
