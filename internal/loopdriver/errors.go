package loopdriver

import (
	"errors"
	"fmt"
)

// ErrAlreadyStarted is returned by Start when called more than once.
var ErrAlreadyStarted = errors.New("loopdriver: already started")

// ErrDisposed is returned by Start when called after Dispose has already
// transitioned the driver to Disposed.
var ErrDisposed = errors.New("loopdriver: disposed")

// UserCycleError wraps an error returned (or panicked) from the user's
// cycle function. It is what FinishedHook and
// Completion.Wait observe when the failure hook decided not to continue.
type UserCycleError struct {
	Err error
}

func (e *UserCycleError) Error() string {
	return fmt.Sprintf("loopdriver: user cycle error: %v", e.Err)
}

func (e *UserCycleError) Unwrap() error { return e.Err }
