package blog

// types.go defines the /posts request and response bodies.

import (
	"strings"
	"time"
)

// PostResponse is the serialized form of a post.
// Author is the display name of the post author ("firstName lastName").
type PostResponse struct {
	ID      string    `json:"id" example:"6718b2f4c1a9e3d5f0a1b2c3"`
	Title   string    `json:"title" example:"Potatoes are awesome"`
	Content string    `json:"content" example:"French fries and potato chips taste amazing!"`
	Author  string    `json:"author" example:"Spuds MacKenzie"`
	Created time.Time `json:"created" example:"2026-10-19T10:00:00.000Z"`
}

// NewPostResponse serializes a post for the API
func NewPostResponse(p Post) PostResponse {
	return PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  p.Author.String(),
		Created: p.Created.UTC(),
	}
}

// NewPostResponses serializes a list of posts. The result is never nil so an empty store is sent as [].
func NewPostResponses(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}

type AuthorRequest struct {
	FirstName string `json:"firstName" example:"Spuds"`
	LastName  string `json:"lastName" example:"MacKenzie"`
}

// CreatePostRequest is the body of POST /posts. All fields are required.
type CreatePostRequest struct {
	Title   string        `json:"title" example:"Potatoes are awesome"`
	Content string        `json:"content" example:"French fries and potato chips taste amazing!"`
	Author  AuthorRequest `json:"author"`
}

// Validate checks the required fields and returns the post to insert
func (r CreatePostRequest) Validate() (Post, error) {
	required := []struct {
		property string
		value    string
	}{
		{"title", r.Title},
		{"content", r.Content},
		{"author.firstName", r.Author.FirstName},
		{"author.lastName", r.Author.LastName},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return Post{}, NewValidationError(f.property, "missing `"+f.property+"` in request body")
		}
	}

	return Post{
		Title:   r.Title,
		Content: r.Content,
		Author: Author{
			FirstName: r.Author.FirstName,
			LastName:  r.Author.LastName,
		},
	}, nil
}

type UpdateAuthorRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// UpdatePostRequest is the body of PUT /posts/{id}.
// ID must match the path id. The other fields are optional; a body with only the id leaves the post unchanged.
type UpdatePostRequest struct {
	ID      string               `json:"id" example:"6718b2f4c1a9e3d5f0a1b2c3"`
	Title   *string              `json:"title,omitempty"`
	Content *string              `json:"content,omitempty"`
	Author  *UpdateAuthorRequest `json:"author,omitempty"`
}

// Validate checks the request against the path id and returns the update to apply
func (r UpdatePostRequest) Validate(pathID string) (PostUpdate, error) {
	if r.ID == "" {
		return PostUpdate{}, NewValidationError("id", "missing `id` in request body")
	}
	if r.ID != pathID {
		return PostUpdate{}, NewIDMismatchError(pathID, r.ID)
	}

	update := PostUpdate{
		Title:   r.Title,
		Content: r.Content,
	}
	if r.Author != nil {
		update.FirstName = r.Author.FirstName
		update.LastName = r.Author.LastName
	}

	present := []struct {
		property string
		value    *string
	}{
		{"title", update.Title},
		{"content", update.Content},
		{"author.firstName", update.FirstName},
		{"author.lastName", update.LastName},
	}
	for _, f := range present {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return PostUpdate{}, NewValidationError(f.property, "`"+f.property+"` must not be blank")
		}
	}

	return update, nil
}
