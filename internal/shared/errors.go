package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeWindowDenied indicates the sector is outside its ordering windows.
	ErrTimeWindowDenied = errors.New("time window denied")
	// ErrNoWindowsConfigured indicates a sector without any ordering window.
	ErrNoWindowsConfigured = errors.New("no windows configured")
	// ErrWeekendClosed indicates the employee's company does not order on weekends.
	ErrWeekendClosed = errors.New("company closed on weekends")
	// ErrMenuNotFound indicates no menu was published for the resolved date.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrDuplicateOrder indicates the employee already ordered for the date.
	ErrDuplicateOrder = errors.New("duplicate order")
	// ErrDuplicate indicates a unique constraint conflict outside ordering.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrReferentialConflict indicates a delete blocked by dependent rows.
	ErrReferentialConflict = errors.New("referential conflict")
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing or invalid token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// DomainError pairs a taxonomy sentinel with a user-facing message.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *DomainError) Unwrap() error { return e.Kind }

// NewError builds a DomainError with a formatted message.
func NewError(kind error, format string, args ...any) error {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation is shorthand for an ErrValidation DomainError.
func Validation(format string, args ...any) error {
	return NewError(ErrValidation, format, args...)
}

// UserMessage returns the message meant for the caller, or "" when err
// carries none.
func UserMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// Blocking reports whether err is a condition the ordering screen renders as
// a block instead of a failure.
func Blocking(err error) bool {
	return errors.Is(err, ErrTimeWindowDenied) ||
		errors.Is(err, ErrNoWindowsConfigured) ||
		errors.Is(err, ErrDuplicateOrder) ||
		errors.Is(err, ErrWeekendClosed)
}
