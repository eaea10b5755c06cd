// Package errors provides the error types used across the VMS backend.
// All service-layer errors should use AppError so that handlers can return
// consistent responses without leaking internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrDuplicateEmail     = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked due to too many failed login attempts", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}

	// ErrStorageUnavailable covers reads/writes against the collection store
	// that fail at the database level. Loads recover to an empty collection;
	// writes surface this error.
	ErrStorageUnavailable = &AppError{Code: "STORAGE_UNAVAILABLE", Message: "Storage is temporarily unavailable", StatusCode: http.StatusServiceUnavailable}
)

// Record errors.
var (
	ErrResidentNotFound     = &AppError{Code: "RESIDENT_NOT_FOUND", Message: "Resident not found", StatusCode: http.StatusNotFound}
	ErrIncidentNotFound     = &AppError{Code: "INCIDENT_NOT_FOUND", Message: "Incident not found", StatusCode: http.StatusNotFound}
	ErrLeaveRequestNotFound = &AppError{Code: "LEAVE_REQUEST_NOT_FOUND", Message: "Leave request not found", StatusCode: http.StatusNotFound}
	ErrDocumentNotFound     = &AppError{Code: "DOCUMENT_NOT_FOUND", Message: "Document not found", StatusCode: http.StatusNotFound}
	ErrLabelNotFound        = &AppError{Code: "LABEL_NOT_FOUND", Message: "Label not found", StatusCode: http.StatusNotFound}
	ErrNotificationNotFound = &AppError{Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)

// Workflow errors.
var (
	// ErrInvalidTransition rejects status changes outside the entity's state
	// machine, e.g. reopening a resolved incident or re-deciding a leave request.
	ErrInvalidTransition = &AppError{Code: "INVALID_TRANSITION", Message: "This status change is not allowed", StatusCode: http.StatusConflict}
)

// Label errors.
var (
	ErrDuplicateLabel       = &AppError{Code: "DUPLICATE_LABEL", Message: "A label with this name already exists", StatusCode: http.StatusConflict}
	ErrSystemLabelImmutable = &AppError{Code: "SYSTEM_LABEL_IMMUTABLE", Message: "System labels cannot be changed or deleted", StatusCode: http.StatusForbidden}
)

// Export/import errors.
var (
	ErrInvalidBundle     = &AppError{Code: "INVALID_BUNDLE", Message: "Import bundle is missing required fields", StatusCode: http.StatusBadRequest}
	ErrUnknownCollection = &AppError{Code: "UNKNOWN_COLLECTION", Message: "Import bundle references an unknown collection", StatusCode: http.StatusBadRequest}
)
