package blog

// error_response.go maps errors raised while handling a request to the JSON error body returned to the client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/information-sharing-networks/blog-demo/internal/logger"
)

// ErrorResponse is the body of every 4xx/5xx response
type ErrorResponse struct {

	// The HTTP method used to make the request e.g. GET, POST, etc
	HTTPMethod string `json:"httpMethod" example:"POST"`

	// The URI that was requested
	RequestURI string `json:"requestUri" example:"/posts"`

	// The HTTP status code returned
	StatusCode int `json:"statusCode" example:"400"`

	// A standard short description corresponding to the HTTP status code
	StatusCodeText string `json:"statusCodeText" example:"Bad Request"`

	// A long description corresponding to the HTTP status code with additional information
	StatusCodeMessage string `json:"statusCodeMessage,omitempty" example:"Validation failed"`

	// The request id assigned by the server, also present in the server logs
	ProviderCorrelationReference string `json:"providerCorrelationReference,omitempty"`

	// The DateTime corresponding to the error occurring
	ErrorDateTime string `json:"errorDateTime" example:"2026-10-19T10:00:00Z"`

	// An array of errors providing more detail about the root cause
	Errors []DetailedError `json:"errors"`
}

// DetailedError represents a detailed error in the ErrorResponse
type DetailedError struct {
	// 7000-7999 for technical errors, 8000-8999 for functional errors
	ErrorCode        ErrorCode `json:"errorCode" example:"7002"`
	Property         string    `json:"property,omitempty" example:"author.firstName"`
	ErrorCodeText    string    `json:"errorCodeText" example:"Validation failed"`
	ErrorCodeMessage string    `json:"errorCodeMessage" example:"missing author.firstName in request body"`
}

// MapErrorToResponse maps blog.Error, store errors and generic errors to an ErrorResponse.
//
// Only the sanitized message is returned to the client, the full error is logged by RespondWithErrorResponse.
func MapErrorToResponse(err error, r *http.Request) *ErrorResponse {
	requestID := middleware.GetReqID(r.Context())

	var blogErr *Error
	if errors.As(err, &blogErr) {
		return errorResponseFromBlog(blogErr, r, requestID)
	}

	// store errors that reached the handler without being wrapped
	if errors.Is(err, ErrPostNotFound) {
		return errorResponseFromBlog(&Error{code: ErrCodePostNotFound, message: "blog post not found", wrapped: err}, r, requestID)
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		msg := fmt.Sprintf("request body exceeds maximum allowed size (%d bytes)", maxBytesErr.Limit)
		return errorResponseFromBlog(&Error{code: ErrCodeRequestTooLarge, message: msg}, r, requestID)
	}

	// fallback - this is not expected - if it does happen return an internal error response and log the unmapped error
	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Error("BUG: Unmapped error type in MapErrorToResponse",
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.String("error", err.Error()),
		slog.String("request_id", requestID),
	)
	return errorResponseFromBlog(&Error{code: ErrCodeInternalError, message: "An internal error occurred", wrapped: err}, r, requestID)
}

// errorResponseFromBlog maps blog.Error to the API error response
func errorResponseFromBlog(err *Error, r *http.Request, requestID string) *ErrorResponse {
	var statusCode int
	var errorCodeText string

	switch err.Code() {
	case ErrCodeMalformedRequest:
		statusCode = http.StatusBadRequest
		errorCodeText = "Malformed request"
	case ErrCodeValidation:
		statusCode = http.StatusBadRequest
		errorCodeText = "Validation failed"
	case ErrCodeIDMismatch:
		statusCode = http.StatusBadRequest
		errorCodeText = "Id mismatch"
	case ErrCodePostNotFound:
		statusCode = http.StatusNotFound
		errorCodeText = "Not found"
	case ErrCodeRateLimitExceeded:
		statusCode = http.StatusTooManyRequests
		errorCodeText = "Rate limit exceeded"
	case ErrCodeRequestTooLarge:
		statusCode = http.StatusRequestEntityTooLarge
		errorCodeText = "Request too large"
	default:
		statusCode = http.StatusInternalServerError
		errorCodeText = "Internal Error"
	}

	return &ErrorResponse{
		HTTPMethod:                   r.Method,
		RequestURI:                   r.RequestURI,
		StatusCode:                   statusCode,
		StatusCodeText:               http.StatusText(statusCode),
		StatusCodeMessage:            errorCodeText,
		ProviderCorrelationReference: requestID,
		ErrorDateTime:                time.Now().UTC().Format(time.RFC3339),
		Errors: []DetailedError{
			{
				ErrorCode:        err.Code(),
				Property:         err.Property(),
				ErrorCodeText:    errorCodeText,
				ErrorCodeMessage: err.Message(),
			},
		},
	}
}
