package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrTestNotFound    = errors.New("test not found")
	ErrSetNotFound     = errors.New("question set not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrAnswerNotFound  = errors.New("answer not found")

	ErrForbidden          = errors.New("forbidden")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotAccepting       = errors.New("user is not accepting messages")
	ErrTestAttempted      = errors.New("test has already been attempted by students")
	ErrUnverifiedAccount  = errors.New("please verify your account before signing in")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrConflict              = errors.New("conflict")
	ErrUsernameTaken         = errors.New("username is already taken")
	ErrEmailRegistered       = errors.New("user already exists with this email")
	ErrTestAlreadySubmitted  = errors.New("test already submitted")
	ErrQuestionSetLimit      = errors.New("a test can hold at most 10 question sets")
	ErrOTPCooldown           = errors.New("please wait before requesting another code")
	ErrTestNotStarted        = errors.New("test has not started yet")
	ErrTestClosed            = errors.New("test is not open for submissions")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrNoQuestionSets        = fmt.Errorf("%w: test has no question sets", ErrInvalidArgument)
	ErrSuggestionUnavailable = errors.New("suggestion service unavailable")

	ErrAlreadyVerified = errors.New("account is already verified")
	ErrInvalidCode     = errors.New("incorrect verification code")
	ErrOTPExpired      = errors.New("verification code has expired, please sign up again to get a new code")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError is returned when a request is well-formed but its values are rejected.
type ValidationError struct {
	Err    string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{
		Err:    "invalid input",
		Fields: []FieldError{{Field: field, Error: msg}},
	}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Error: msg})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return e.Err + ": " + strings.Join(parts, "; ")
}

// ErrOrNil returns e only when it holds at least one field error.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}
