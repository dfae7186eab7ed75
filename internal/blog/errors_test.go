package blog

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// check to ensure error code handling has not been broken
func TestError_Code(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{"malformed", NewMalformedRequestError("test"), ErrCodeMalformedRequest},
		{"malformed wrapped", WrapMalformedRequestError(errors.New("eof"), "test"), ErrCodeMalformedRequest},
		{"validation", NewValidationError("title", "test"), ErrCodeValidation},
		{"id mismatch", NewIDMismatchError("1", "2"), ErrCodeIDMismatch},
		{"not found", NewNotFoundError("1"), ErrCodePostNotFound},
		{"internal", WrapInternalError(errors.New("db down"), "test"), ErrCodeInternalError},
		{"rate limit", NewRateLimitError("test"), ErrCodeRateLimitExceeded},
		{"too large", NewRequestTooLargeError("test"), ErrCodeRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var blogErr *Error
			if !errors.As(tt.err, &blogErr) {
				t.Fatal("error is not a blog.Error")
			}
			if blogErr.Code() != tt.wantCode {
				t.Errorf("Code() = %d, want %d", blogErr.Code(), tt.wantCode)
			}
		})
	}
}

func TestNotFoundErrorIsErrPostNotFound(t *testing.T) {
	if !errors.Is(NewNotFoundError("1"), ErrPostNotFound) {
		t.Error("expected NewNotFoundError to wrap ErrPostNotFound")
	}
}

func TestMapErrorToResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{"malformed", NewMalformedRequestError("bad json"), http.StatusBadRequest, ErrCodeMalformedRequest},
		{"validation", NewValidationError("title", "missing"), http.StatusBadRequest, ErrCodeValidation},
		{"id mismatch", NewIDMismatchError("1", "2"), http.StatusBadRequest, ErrCodeIDMismatch},
		{"not found", NewNotFoundError("1"), http.StatusNotFound, ErrCodePostNotFound},
		{"bare store not found", fmt.Errorf("lookup: %w", ErrPostNotFound), http.StatusNotFound, ErrCodePostNotFound},
		{"max bytes", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge},
		{"rate limit", NewRateLimitError("slow down"), http.StatusTooManyRequests, ErrCodeRateLimitExceeded},
		{"internal", WrapInternalError(errors.New("secret detail"), "failed"), http.StatusInternalServerError, ErrCodeInternalError},
		{"unmapped", errors.New("something else"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/posts", nil)
			resp := MapErrorToResponse(tt.err, r)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if resp.StatusCodeText != http.StatusText(tt.wantStatus) {
				t.Errorf("StatusCodeText = %q", resp.StatusCodeText)
			}
			if resp.HTTPMethod != http.MethodPost || resp.RequestURI != "/posts" {
				t.Errorf("unexpected method/uri: %s %s", resp.HTTPMethod, resp.RequestURI)
			}
			if len(resp.Errors) != 1 {
				t.Fatalf("got %d detailed errors, want 1", len(resp.Errors))
			}
			if resp.Errors[0].ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %d, want %d", resp.Errors[0].ErrorCode, tt.wantCode)
			}
		})
	}
}

func TestMapErrorToResponse_DoesNotLeakWrappedError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/posts", nil)
	resp := MapErrorToResponse(WrapInternalError(errors.New("password=hunter2"), "failed to list posts"), r)

	if got := resp.Errors[0].ErrorCodeMessage; got != "failed to list posts" {
		t.Errorf("ErrorCodeMessage = %q, want the sanitized message", got)
	}
}
