// Package apperrors is the error taxonomy shared by services and handlers.
//
// Services return *AppError values (or wrap one); the HTTP layer turns them
// into a status code and a client-safe message via HTTPStatus and
// PublicMessage. Anything that is not an AppError is treated as unexpected
// and reported as a 500 with a generic message.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindInternal     Kind = "INTERNAL"
)

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

const genericMessage = "Internal server error"

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Kind    Kind
	Message string
	Status  int
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Validation is a 400 for input that failed a boundary check.
func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Status: http.StatusBadRequest, Err: ErrValidation}
}

// ValidationFields is Validation with per-field detail.
func ValidationFields(message string, fields map[string]string) *AppError {
	e := Validation(message)
	e.Fields = fields
	return e
}

// NotFound is a 404 naming the missing entity, e.g. NotFound("Product").
func NotFound(entity string) *AppError {
	return &AppError{Kind: KindNotFound, Message: entity + " not found", Status: http.StatusNotFound, Err: ErrNotFound}
}

// Missing is a 404 with a caller-chosen message.
func Missing(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, Status: http.StatusNotFound, Err: ErrNotFound}
}

// Conflict is a 409 for uniqueness violations.
func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Status: http.StatusConflict, Err: ErrConflict}
}

// Unauthorized is a 401.
func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message, Status: http.StatusUnauthorized, Err: ErrUnauthorized}
}

// Forbidden is a 403.
func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message, Status: http.StatusForbidden, Err: ErrForbidden}
}

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: genericMessage, Status: http.StatusInternalServerError, Err: err}
}

// Wrap adds context to err without changing how it maps to HTTP.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps err to a response status.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to send to a client. 5xx errors never leak
// their cause.
func PublicMessage(err error) string {
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return genericMessage
	}
	if appErr, ok := As(err); ok {
		return appErr.Message
	}
	return err.Error()
}

// IsNotFound reports whether err maps to a missing entity.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err maps to a uniqueness violation.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
