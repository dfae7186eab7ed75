package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
)

// ErrPostNotFound is returned when the server responds 404 for a post id
var ErrPostNotFound = errors.New("post not found")

// APIError is returned for non-2xx responses. Response is nil when the body was not an error document.
type APIError struct {
	StatusCode int
	Response   *blog.ErrorResponse
	Body       string
}

func (e *APIError) Error() string {
	if e.Response != nil && len(e.Response.Errors) > 0 {
		d := e.Response.Errors[0]
		if d.Property != "" {
			return fmt.Sprintf("server returned %d: %s (%s)", e.StatusCode, d.ErrorCodeMessage, d.Property)
		}
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, d.ErrorCodeMessage)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (e *APIError) Is(target error) bool {
	return target == ErrPostNotFound && e.StatusCode == http.StatusNotFound
}

// Client calls the blog posts API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a client for the API served at baseURL
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// postsURL returns the /posts URL, or /posts/{id} when id is set.
// u.Path holds the unescaped path; String() escapes it once.
func (c *Client) postsURL(id string) string {
	u := *c.baseURL
	u.RawPath = ""
	u.Path = strings.TrimSuffix(u.Path, "/") + "/posts"
	if id != "" {
		u.Path += "/" + id
	}
	return u.String()
}

// do sends the request and decodes a successful response body into out (when out is not nil)
func (c *Client) do(ctx context.Context, method, target string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call blog API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		var errResp blog.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.StatusCode != 0 {
			apiErr.Response = &errResp
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListPosts returns every post
func (c *Client) ListPosts(ctx context.Context) ([]blog.PostResponse, error) {
	var posts []blog.PostResponse
	if err := c.do(ctx, http.MethodGet, c.postsURL(""), nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a single post. The error matches ErrPostNotFound when the id is unknown.
func (c *Client) GetPost(ctx context.Context, id string) (blog.PostResponse, error) {
	var post blog.PostResponse
	err := c.do(ctx, http.MethodGet, c.postsURL(id), nil, http.StatusOK, &post)
	return post, err
}

// CreatePost creates a post and returns it with the server assigned id and created time
func (c *Client) CreatePost(ctx context.Context, req blog.CreatePostRequest) (blog.PostResponse, error) {
	var post blog.PostResponse
	err := c.do(ctx, http.MethodPost, c.postsURL(""), req, http.StatusCreated, &post)
	return post, err
}

// UpdatePost applies the fields set in req to the post with the given id
func (c *Client) UpdatePost(ctx context.Context, id string, req blog.UpdatePostRequest) error {
	req.ID = id
	return c.do(ctx, http.MethodPut, c.postsURL(id), req, http.StatusNoContent, nil)
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.postsURL(id), nil, http.StatusNoContent, nil)
}
