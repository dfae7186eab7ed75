package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
	"github.com/information-sharing-networks/blog-demo/internal/config"
	"github.com/information-sharing-networks/blog-demo/internal/database/databasetest"
	"github.com/information-sharing-networks/blog-demo/internal/server"
)

// startTestServer serves the blog API from an in-memory store
func startTestServer(t *testing.T) (*httptest.Server, *databasetest.MemoryStore) {
	t.Helper()

	cfg := &config.ServerEnvironment{
		Environment:         "test",
		RequestTimeout:      5 * time.Second,
		MaxRequestBodyBytes: 1 << 20,
	}
	store := databasetest.NewMemoryStore()
	srv := server.NewServer(store, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func strPtr(s string) *string { return &s }

func TestClient_CRUD(t *testing.T) {
	ts, store := startTestServer(t)
	ctx := context.Background()

	c, err := NewClient(ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	posts, err := c.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(posts))
	}

	created, err := c.CreatePost(ctx, blog.CreatePostRequest{
		Title:   "T",
		Content: "C",
		Author:  blog.AuthorRequest{FirstName: "F", LastName: "L"},
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if created.ID == "" || created.Author != "F L" {
		t.Errorf("unexpected created post: %+v", created)
	}

	err = c.UpdatePost(ctx, created.ID, blog.UpdatePostRequest{
		Title:  strPtr("Potatoes are awesome"),
		Author: &blog.UpdateAuthorRequest{FirstName: strPtr("Spuds")},
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	got, err := c.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Potatoes are awesome" || got.Author != "Spuds L" || got.Content != "C" {
		t.Errorf("unexpected post after update: %+v", got)
	}

	if err := c.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("store has %d posts after delete", n)
	}

	_, err = c.GetPost(ctx, created.ID)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("GetPost after delete: got %v, want ErrPostNotFound", err)
	}
}

func TestClient_ValidationError(t *testing.T) {
	ts, _ := startTestServer(t)

	c, err := NewClient(ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.CreatePost(context.Background(), blog.CreatePostRequest{Title: "T", Content: "C"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Response == nil || apiErr.Response.Errors[0].Property != "author.firstName" {
		t.Errorf("expected the error document to name author.firstName, got %+v", apiErr.Response)
	}
	if !strings.Contains(err.Error(), "author.firstName") {
		t.Errorf("error message %q does not name the field", err.Error())
	}
}

func TestClient_NonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	c, _ := NewClient(ts.URL, time.Second)
	_, err := c.ListPosts(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Response != nil {
		t.Error("plain text body must not be parsed as an error document")
	}
	if err.Error() != "server returned 502: bad gateway" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestPostsURL(t *testing.T) {
	tests := []struct {
		base string
		id   string
		want string
	}{
		{"http://localhost:8080", "", "http://localhost:8080/posts"},
		{"http://localhost:8080/", "abc", "http://localhost:8080/posts/abc"},
		{"http://example.com/api", "a b", "http://example.com/api/posts/a%20b"},
		{"http://localhost:8080", "50%", "http://localhost:8080/posts/50%25"},
		{"http://localhost:8080", "6718b2f4c1a9e3d5f0a1b2c3", "http://localhost:8080/posts/6718b2f4c1a9e3d5f0a1b2c3"},
	}
	for _, tt := range tests {
		c, err := NewClient(tt.base, time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.postsURL(tt.id); got != tt.want {
			t.Errorf("postsURL(%q) with base %q = %q, want %q", tt.id, tt.base, got, tt.want)
		}
	}
}

func TestCommands(t *testing.T) {
	ts, store := startTestServer(t)
	t.Setenv("BLOG_API_URL", ts.URL)
	t.Setenv("LOG_LEVEL", "none")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs(args)
		err := rootCmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	out, err := run("create", "--title", "T", "--content", "C", "--first-name", "F", "--last-name", "L")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var created blog.PostResponse
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("create output is not a post: %v (%q)", err, out)
	}

	if _, err := run("update", created.ID, "--last-name", "MacKenzie"); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err = run("get", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got blog.PostResponse
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("get output is not a post: %v", err)
	}
	if got.Author != "F MacKenzie" {
		t.Errorf("author = %q, want %q", got.Author, "F MacKenzie")
	}

	out, err = run("list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var posts []blog.PostResponse
	if err := json.Unmarshal([]byte(out), &posts); err != nil || len(posts) != 1 {
		t.Fatalf("list output: %v, %q", err, out)
	}

	if _, err := run("delete", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("store has %d posts after delete", n)
	}

	if _, err := run("get", created.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("get after delete: got %v, want ErrPostNotFound", err)
	}
}
