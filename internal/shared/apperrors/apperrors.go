// Package apperrors is the closed error taxonomy shared by every handler.
//
// An Error carries a Kind, a machine-readable Code, a human message and
// optional details. The HTTP status is derived from the Kind only.
package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
	KindTenant
	KindUnknown
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeTenant       = "TENANT_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnknown      = "UNKNOWN_ERROR"
)

const unknownMessage = "Erro interno desconhecido"

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindTenant:
		return "tenant"
	case KindUnknown:
		return "unknown"
	default:
		return "internal"
	}
}

// StatusCode maps a kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindTenant:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindInternal, KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// Is matches on kind and code so declared sentinels work with errors.Is
// even after details or a cause were attached.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Code == other.Code
}

// WithDetails returns a copy carrying details.
func (e *Error) WithDetails(details map[string]any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// WithCause returns a copy wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

func New(kind Kind, code string, message string) *Error {
	if code == "" {
		code = defaultCode(kind)
	}
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(message string, details map[string]any) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: message, Details: details}
}

func NotFound(code string, message string) *Error {
	return New(KindNotFound, code, message)
}

func Unauthorized(code string, message string) *Error {
	return New(KindUnauthorized, code, message)
}

func Forbidden(code string, message string) *Error {
	return New(KindForbidden, code, message)
}

func Conflict(code string, message string) *Error {
	return New(KindConflict, code, message)
}

func Tenant(code string, message string) *Error {
	return New(KindTenant, code, message)
}

func Internal(code string, message string) *Error {
	return New(KindInternal, code, message)
}

// Normalize converts any value into an *Error. It never panics and returns
// nil only for a nil input.
func Normalize(v any) *Error {
	switch value := v.(type) {
	case nil:
		return nil
	case *Error:
		if value == nil {
			return nil
		}
		return value
	case error:
		var appErr *Error
		if errors.As(value, &appErr) && appErr != nil {
			return appErr
		}
		return &Error{Kind: KindInternal, Code: CodeInternal, Message: value.Error(), cause: value}
	default:
		return &Error{Kind: KindUnknown, Code: CodeUnknown, Message: unknownMessage}
	}
}

func defaultCode(kind Kind) string {
	switch kind {
	case KindValidation:
		return CodeValidation
	case KindNotFound:
		return CodeNotFound
	case KindUnauthorized:
		return CodeUnauthorized
	case KindForbidden:
		return CodeForbidden
	case KindConflict:
		return CodeConflict
	case KindTenant:
		return CodeTenant
	case KindUnknown:
		return CodeUnknown
	default:
		return CodeInternal
	}
}
