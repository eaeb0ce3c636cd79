package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindBadRequest     Kind = "BAD_REQUEST"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindInternal       Kind = "INTERNAL_ERROR"
)

// AppError is the typed error every service returns to the HTTP boundary.
type AppError struct {
	Kind    Kind
	Message string
	Code    string
	Details map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithCode overrides the machine readable code (defaults to the kind).
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

func newError(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Code: string(kind)}
}

func NewValidation(message string) *AppError {
	return newError(KindValidation, message)
}

func NewBadRequest(message string) *AppError {
	return newError(KindBadRequest, message)
}

func NewAuthentication(message string) *AppError {
	return newError(KindAuthentication, message)
}

func NewAuthorization(message string) *AppError {
	return newError(KindAuthorization, message)
}

// NewNotFound builds "<entity> '<id>' not found".
func NewNotFound(entity string, id interface{}) *AppError {
	return newError(KindNotFound, fmt.Sprintf("%s '%v' not found", entity, id))
}

func NewConflict(message string) *AppError {
	return newError(KindConflict, message)
}

func NewInternal(message string, err error) *AppError {
	e := newError(KindInternal, message)
	e.Err = err
	return e
}

// KindOf returns the kind of the first AppError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusOf returns the HTTP status for err; untyped errors are 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status()
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
