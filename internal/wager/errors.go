package wager

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrParse          = errors.New("parse error")
	ErrInvalidOutcome = errors.New("invalid outcome")
	ErrNotFound       = errors.New("wager not found")
)

// Error carries a message meant to be shown to the caller verbatim.
// Kind is one of the sentinel errors above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func NotFound(msg string) error {
	return newError(ErrNotFound, msg)
}

func Invalid(msg string) error {
	return newError(ErrValidation, msg)
}
