package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for the HTTP boundary.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Code identifies a specific domain rule rejection.
type Code string

const (
	// Common
	CodeInvalidInput Code = "C001"
	CodeInternal     Code = "C002"
	CodeUnauthorized Code = "C003"
	CodeForbidden    Code = "C004"

	// User
	CodeUserNotFound      Code = "U001"
	CodeUserAlreadyExists Code = "U002"
	CodeInvalidPassword   Code = "U003"

	// Auth
	CodeInvalidToken         Code = "A001"
	CodeExpiredToken         Code = "A002"
	CodeRefreshTokenNotFound Code = "A003"
	CodeInvalidRefreshToken  Code = "A004"

	// Profile
	CodeProfileNotFound      Code = "P001"
	CodeProfileAlreadyExists Code = "P002"

	// Match
	CodeMatchNotFound       Code = "M001"
	CodeAlreadyMatched      Code = "M002"
	CodeSelfMatchNotAllowed Code = "M003"

	// Chat
	CodeChatRoomNotFound Code = "CH001"
	CodeChatAccessDenied Code = "CH002"
	CodeMessageNotFound  Code = "CH003"

	// Notification
	CodeNotificationSendFailed Code = "N001"
	CodeInvalidFcmToken        Code = "N002"
)

// AppError carries a stable code and a boundary classification alongside the
// human readable message.
type AppError struct {
	Code    Code
	Kind    Kind
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func New(code Code, kind Kind, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message}
}

// Wrap attaches a cause without changing what the caller sees.
func Wrap(err error, code Code, kind Kind, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message, cause: err}
}

func NotFound(code Code, message string) *AppError {
	return New(code, KindNotFound, message)
}

func Conflict(code Code, message string) *AppError {
	return New(code, KindConflict, message)
}

func Forbidden(code Code, message string) *AppError {
	return New(code, KindForbidden, message)
}

func Unauthorized(code Code, message string) *AppError {
	return New(code, KindUnauthorized, message)
}

func BadRequest(code Code, message string) *AppError {
	return New(code, KindBadRequest, message)
}

// Internal hides the underlying storage failure behind a fixed code so no
// detail leaks to the caller.
func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, KindInternal, "Internal server error")
}

// As extracts an *AppError if err is (or wraps) one.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps a Kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthorized:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindInternal:
		return 500
	default:
		return 400
	}
}
