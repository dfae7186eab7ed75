package blog

// errors.go defines the error codes returned in the body of failed blog API requests

import "fmt"

// Error represents a structured error raised while handling a blog API request.
type Error struct {
	// code is the blog API error code
	code ErrorCode

	// property is the request field the error relates to (optional)
	property string

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *Error) Code() ErrorCode  { return e.code }
func (e *Error) Property() string { return e.property }
func (e *Error) Message() string  { return e.message }
func (e *Error) Unwrap() error    { return e.wrapped }

// ErrorCode is used in the errors array of an ErrorResponse.
//
// 7000-7999 are technical errors (the request could not be processed as sent),
// 8000-8999 are functional errors (the request was valid but refers to something that does not exist).
type ErrorCode int

const (
	// ErrCodeMalformedRequest is used when the request body is not valid JSON or contains unknown fields
	ErrCodeMalformedRequest ErrorCode = 7001

	// ErrCodeValidation is used when a required field is missing or blank
	ErrCodeValidation ErrorCode = 7002

	// ErrCodeIDMismatch is used when the id in a PUT body does not match the id in the path
	ErrCodeIDMismatch ErrorCode = 7003

	// ErrCodeRequestTooLarge is used when the request body is too large
	// - this is only used in the middleware and the JSON decoder
	ErrCodeRequestTooLarge ErrorCode = 7004

	// ErrCodeRateLimitExceeded is used when the rate limit is exceeded
	// - this is only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = 7005

	// ErrCodeInternalError is used when an internal server error occurs
	ErrCodeInternalError ErrorCode = 7006

	// ErrCodePostNotFound is used when the addressed blog post does not exist
	ErrCodePostNotFound ErrorCode = 8001
)

// NewMalformedRequestError creates an error for requests that cannot be decoded.
func NewMalformedRequestError(msg string) error {
	return &Error{code: ErrCodeMalformedRequest, message: msg}
}

// WrapMalformedRequestError wraps a decoding error as a malformed request error.
func WrapMalformedRequestError(err error, msg string) error {
	return &Error{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// NewValidationError creates a validation error for the named request property.
func NewValidationError(property, msg string) error {
	return &Error{code: ErrCodeValidation, property: property, message: msg}
}

// NewIDMismatchError is returned when the body id and the path id differ.
func NewIDMismatchError(pathID, bodyID string) error {
	return &Error{
		code:     ErrCodeIDMismatch,
		property: "id",
		message:  fmt.Sprintf("request path id (%s) and request body id (%s) must match", pathID, bodyID),
	}
}

// NewNotFoundError creates an error for a post that does not exist.
func NewNotFoundError(id string) error {
	return &Error{code: ErrCodePostNotFound, message: fmt.Sprintf("blog post %s not found", id), wrapped: ErrPostNotFound}
}

// WrapInternalError wraps an unexpected failure (e.g. the database is unavailable).
//
// The wrapped error is logged but never sent to the client.
func WrapInternalError(err error, msg string) error {
	return &Error{code: ErrCodeInternalError, message: msg, wrapped: err}
}

// NewRateLimitError creates a rate limit exceeded error.
func NewRateLimitError(msg string) error {
	return &Error{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError creates a request too large error.
func NewRequestTooLargeError(msg string) error {
	return &Error{code: ErrCodeRequestTooLarge, message: msg}
}
