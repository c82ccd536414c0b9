package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is wrapped by every entity-specific not-found error.
var ErrNotFound = errors.New("not found")

var (
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)
	ErrMatchNotFound     = fmt.Errorf("match %w", ErrNotFound)
	ErrMessageNotFound   = fmt.Errorf("message %w", ErrNotFound)
	ErrRatingNotFound    = fmt.Errorf("rating %w", ErrNotFound)
	ErrReportNotFound    = fmt.Errorf("report %w", ErrNotFound)
	ErrInterestNotFound  = fmt.Errorf("interest %w", ErrNotFound)
	ErrProviderNotLinked = fmt.Errorf("linked provider %w", ErrNotFound)
	ErrPictureNotFound   = fmt.Errorf("picture %w", ErrNotFound)
	ErrSessionNotFound   = fmt.Errorf("session %w", ErrNotFound)

	// ErrResetTokenInvalid covers absent, unknown and expired reset tokens.
	ErrResetTokenInvalid = fmt.Errorf("password reset token is invalid or has expired: %w", ErrNotFound)
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrEmailTaken             = errors.New("email already registered")
	ErrProviderAlreadyLinked  = errors.New("provider identity already linked to another account")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid token")
	ErrSessionExpired         = errors.New("session expired")
	ErrBlocked                = errors.New("messaging is blocked between these accounts")
	ErrConflict               = errors.New("concurrent modification")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrCollaboratorNotEnabled = errors.New("collaborator not configured")
)

// Field error codes.
const (
	CodeRequired  = "required"
	CodeInvalid   = "invalid"
	CodeRange     = "out_of_range"
	CodeTooLong   = "too_long"
	CodeDuplicate = "duplicate"
	CodeMismatch  = "mismatch"
)

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every field that failed validation in one request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// NewValidationError builds a ValidationError holding a single field failure.
func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Code: code, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add records a field failure. A nil FieldError is ignored.
func (e *ValidationError) Add(fe *FieldError) {
	if fe == nil {
		return
	}
	e.Fields = append(e.Fields, *fe)
}

// HasCode reports whether any field failed with the given code.
func (e *ValidationError) HasCode(code string) bool {
	for _, f := range e.Fields {
		if f.Code == code {
			return true
		}
	}
	return false
}

// OrNil returns the error when it holds failures, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
