package common

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrUpstream           = errors.New("upstream failure")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// Error is a classified error carrying the message shown to API clients.
// errors.Is matches it against its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func NewError(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Validation(msg string) error { return NewError(ErrValidation, msg) }

func Forbidden(msg string) error { return NewError(ErrForbidden, msg) }

func NotFound(msg string) error { return NewError(ErrNotFound, msg) }

func Conflict(msg string) error { return NewError(ErrConflict, msg) }

func Unauthenticated(msg string) error { return NewError(ErrUnauthenticated, msg) }
