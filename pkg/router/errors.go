package router

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("router: invalid route token")

	// ErrHandlerNotFound matches every *HandlerNotFoundError.
	ErrHandlerNotFound = errors.New("router: handler not found")
)

// DecodeError reports a token that is not a valid route.
type DecodeError struct {
	Token  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("router: decode %q: %s: %v", e.Token, e.Reason, e.Err)
	}
	return fmt.Sprintf("router: decode %q: %s", e.Token, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// HandlerNotFoundError reports a decoded route whose name has no dynamic
// handler.
type HandlerNotFoundError struct {
	Route Route
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("router: no handler registered for %q", e.Route.Name)
}

// Is reports whether target is ErrHandlerNotFound.
func (e *HandlerNotFoundError) Is(target error) bool { return target == ErrHandlerNotFound }
