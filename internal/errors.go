package internal

import (
	"errors"
	"fmt"
)

var ErrInvalidCallback = errors.New("invalid argument passed as callback, expected a function")

// CallbackError reports a committed update whose callback could not be invoked.
type CallbackError struct {
	// Op is the operation that failed (e.g. "CommitUpdateQueue").
	Op string
	// Index is the position of the update in the committed effects.
	Index int
	// Callback is the value that was found in place of a function.
	Callback any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s: effect %d: %v, instead received %T", e.Op, e.Index, ErrInvalidCallback, e.Callback)
}

func (e *CallbackError) Unwrap() error {
	return ErrInvalidCallback
}
