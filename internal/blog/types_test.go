package blog

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestAuthorString(t *testing.T) {
	tests := []struct {
		author Author
		want   string
	}{
		{Author{FirstName: "F", LastName: "L"}, "F L"},
		{Author{FirstName: "Spuds", LastName: "MacKenzie"}, "Spuds MacKenzie"},
		{Author{FirstName: "Cher"}, "Cher"},
	}
	for _, tt := range tests {
		if got := tt.author.String(); got != tt.want {
			t.Errorf("Author%+v.String() = %q, want %q", tt.author, got, tt.want)
		}
	}
}

func TestNewPostResponse_Keys(t *testing.T) {
	created := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	resp := NewPostResponse(Post{
		ID:      "abc",
		Author:  Author{FirstName: "F", LastName: "L"},
		Title:   "T",
		Content: "C",
		Created: created,
	})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	want := []string{"author", "content", "created", "id", "title"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}

	if fields["author"] != "F L" {
		t.Errorf("author = %v, want %q", fields["author"], "F L")
	}
	if fields["created"] != "2026-10-19T10:00:00Z" {
		t.Errorf("created = %v", fields["created"])
	}
}

func TestNewPostResponses_EmptyIsNotNil(t *testing.T) {
	data, err := json.Marshal(NewPostResponses(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("got %s, want []", data)
	}
}

func TestCreatePostRequest_Validate(t *testing.T) {
	valid := CreatePostRequest{
		Title:   "T",
		Content: "C",
		Author:  AuthorRequest{FirstName: "F", LastName: "L"},
	}

	tests := []struct {
		name         string
		modify       func(*CreatePostRequest)
		wantProperty string
	}{
		{"valid", func(r *CreatePostRequest) {}, ""},
		{"missing title", func(r *CreatePostRequest) { r.Title = "" }, "title"},
		{"blank content", func(r *CreatePostRequest) { r.Content = "   " }, "content"},
		{"missing first name", func(r *CreatePostRequest) { r.Author.FirstName = "" }, "author.firstName"},
		{"missing last name", func(r *CreatePostRequest) { r.Author.LastName = "" }, "author.lastName"},
		{"missing author", func(r *CreatePostRequest) { r.Author = AuthorRequest{} }, "author.firstName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.modify(&req)

			post, err := req.Validate()
			if tt.wantProperty == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if post.Title != "T" || post.Content != "C" || post.Author.String() != "F L" {
					t.Errorf("unexpected post: %+v", post)
				}
				return
			}

			var blogErr *Error
			if !errors.As(err, &blogErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if blogErr.Code() != ErrCodeValidation {
				t.Errorf("code = %d, want %d", blogErr.Code(), ErrCodeValidation)
			}
			if blogErr.Property() != tt.wantProperty {
				t.Errorf("property = %q, want %q", blogErr.Property(), tt.wantProperty)
			}
		})
	}
}

func TestUpdatePostRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       UpdatePostRequest
		wantCode  ErrorCode
		wantEmpty bool
	}{
		{
			name: "full update",
			req: UpdatePostRequest{
				ID:      "1",
				Title:   strPtr("Potatoes are awesome"),
				Content: strPtr("French fries and potato chips taste amazing!"),
				Author:  &UpdateAuthorRequest{FirstName: strPtr("Spuds"), LastName: strPtr("MacKenzie")},
			},
		},
		{
			name: "only last name",
			req:  UpdatePostRequest{ID: "1", Author: &UpdateAuthorRequest{LastName: strPtr("MacKenzie")}},
		},
		{
			name:     "missing id",
			req:      UpdatePostRequest{Title: strPtr("T")},
			wantCode: ErrCodeValidation,
		},
		{
			name:     "id mismatch",
			req:      UpdatePostRequest{ID: "2", Title: strPtr("T")},
			wantCode: ErrCodeIDMismatch,
		},
		{
			name:      "id only",
			req:       UpdatePostRequest{ID: "1"},
			wantEmpty: true,
		},
		{
			name:      "empty author",
			req:       UpdatePostRequest{ID: "1", Author: &UpdateAuthorRequest{}},
			wantEmpty: true,
		},
		{
			name:     "blank title",
			req:      UpdatePostRequest{ID: "1", Title: strPtr(" ")},
			wantCode: ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := tt.req.Validate("1")
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if update.IsEmpty() != tt.wantEmpty {
					t.Errorf("IsEmpty() = %v, want %v", update.IsEmpty(), tt.wantEmpty)
				}
				return
			}

			var blogErr *Error
			if !errors.As(err, &blogErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if blogErr.Code() != tt.wantCode {
				t.Errorf("code = %d, want %d", blogErr.Code(), tt.wantCode)
			}
		})
	}
}

func TestPostUpdate_Apply(t *testing.T) {
	created := time.Now()
	original := Post{
		ID:      "1",
		Author:  Author{FirstName: "F", LastName: "L"},
		Title:   "T",
		Content: "C",
		Created: created,
	}

	got := PostUpdate{Title: strPtr("New"), LastName: strPtr("MacKenzie")}.Apply(original)

	if got.ID != "1" || !got.Created.Equal(created) {
		t.Errorf("id and created must not change: %+v", got)
	}
	if got.Title != "New" || got.Content != "C" {
		t.Errorf("unexpected title/content: %+v", got)
	}
	if got.Author.FirstName != "F" || got.Author.LastName != "MacKenzie" {
		t.Errorf("unexpected author: %+v", got.Author)
	}
	if original.Title != "T" {
		t.Error("Apply must not modify its argument")
	}
}
