package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes one rejected field of a request body
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeExportFailed      = "EXPORT_FAILED"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
)

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest = New(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "The requested resource was not found")

	// 413 Payload Too Large
	ErrPayloadTooLarge = New(http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body exceeds the maximum allowed size")

	// 422 Unprocessable Entity
	ErrValidationFailed = New(http.StatusUnprocessableEntity, CodeValidationFailed, "Request validation failed")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred while processing your request")
)

// MethodNotAllowedError reports a route that exists without the request method
func MethodNotAllowedError(method string) *APIError {
	return New(http.StatusMethodNotAllowed, CodeMethodNotAllowed, fmt.Sprintf("Method %s is not allowed for this endpoint", method))
}

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(ErrInvalidRequest.StatusCode, ErrInvalidRequest.ErrorCode, ErrInvalidRequest.Message, err.Error())
}

// ErrValidation creates a validation error for a single field
func ErrValidation(field, message string) *APIError {
	return NewValidationErrors([]ValidationError{{Field: field, Message: message}})
}

// NewValidationErrors creates a 422 error carrying every rejected field
func NewValidationErrors(errs []ValidationError) *APIError {
	return NewWithDetails(
		ErrValidationFailed.StatusCode,
		ErrValidationFailed.ErrorCode,
		ErrValidationFailed.Message,
		errs,
	)
}

// UnsupportedFormatError reports an export format that is not served
func UnsupportedFormatError(format string) *APIError {
	return NewWithDetails(
		http.StatusUnprocessableEntity,
		CodeUnsupportedFormat,
		fmt.Sprintf("Unsupported export format %q", format),
		[]ValidationError{{Field: "format", Message: "format must be one of: csv xlsx"}},
	)
}

// ExportError wraps a failure while writing an export document
func ExportError(format string, err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, CodeExportFailed, fmt.Sprintf("Failed to export forecast as %s", format), err.Error())
}

// NewInternalError creates a simple internal server error
func NewInternalError(message string) *APIError {
	return New(http.StatusInternalServerError, CodeInternal, message)
}
