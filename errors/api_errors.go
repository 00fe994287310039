package errors

import "fmt"

// APIError is the JSON error envelope returned by the HTTP layer.
type APIError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Error codes used in responses.
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeRateLimited    = "rate_limited"
	CodeServerError    = "server_error"
)

func NewInvalidRequest(description string) *APIError {
	return &APIError{Code: CodeInvalidRequest, Description: description}
}

func NewUnauthorized(description string) *APIError {
	return &APIError{Code: CodeUnauthorized, Description: description}
}

func NewForbidden(description string) *APIError {
	return &APIError{Code: CodeForbidden, Description: description}
}

func NewNotFound(description string) *APIError {
	return &APIError{Code: CodeNotFound, Description: description}
}

func NewServerError(description string) *APIError {
	return &APIError{Code: CodeServerError, Description: description}
}
