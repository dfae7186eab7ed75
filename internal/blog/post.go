// Package blog defines the blog post model, the request and response types of the /posts API
// and the Store contract implemented by the database backends.
package blog

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrPostNotFound is returned by a Store when no post matches the request.
// Backends also return it for ids they cannot parse, since such an id cannot address a document.
var ErrPostNotFound = errors.New("blog post not found")

// Store is the blog post collection.
//
// Writes are atomic per document, no operation spans more than one document.
type Store interface {
	// Insert creates a post. The store assigns the id and, when it is zero, the created time.
	Insert(ctx context.Context, post Post) (Post, error)

	// InsertMany creates several posts, used for seeding.
	InsertMany(ctx context.Context, posts []Post) ([]Post, error)

	// FindAll returns every post ordered by created time then id.
	FindAll(ctx context.Context) ([]Post, error)

	FindByID(ctx context.Context, id string) (Post, error)

	// FindOne returns the first post in FindAll order, or ErrPostNotFound when the collection is empty.
	FindOne(ctx context.Context) (Post, error)

	Count(ctx context.Context) (int64, error)

	// Update applies the fields set in update to the post and returns the result.
	Update(ctx context.Context, id string, update PostUpdate) (Post, error)

	// Delete removes the post and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Drop removes all posts. This is an administrative operation used to reset test databases.
	Drop(ctx context.Context) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Author struct {
	FirstName string
	LastName  string
}

// String returns the display name used in API responses ("firstName lastName").
func (a Author) String() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

type Post struct {
	ID      string
	Author  Author
	Title   string
	Content string
	Created time.Time
}

// PostUpdate holds the fields to change in a partial update. Nil fields are left as they are.
type PostUpdate struct {
	Title     *string
	Content   *string
	FirstName *string
	LastName  *string
}

// IsEmpty reports whether the update changes nothing
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.FirstName == nil && u.LastName == nil
}

// Apply returns a copy of p with the update applied. id and created are never changed.
func (u PostUpdate) Apply(p Post) Post {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.FirstName != nil {
		p.Author.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.Author.LastName = *u.LastName
	}
	return p
}

// NormalizeCreated truncates t to the millisecond precision shared by both backends and converts it to UTC.
func NormalizeCreated(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
