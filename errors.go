package precisionloop

import (
	"github.com/latticert/precisionloop/internal/delay"
	"github.com/latticert/precisionloop/internal/loopdriver"
)

// ErrAlreadyStarted is returned by Start when called more than once on the
// same façade instance.
var ErrAlreadyStarted = loopdriver.ErrAlreadyStarted

// ErrDisposed is returned by Start when called after Dispose has already
// finalised the façade instance.
var ErrDisposed = loopdriver.ErrDisposed

// UserCycleError wraps an error (or recovered panic) propagated from a
// cycle function whose failure hook decided not to continue.
// WaitForExit returns this, unwrapped to the original
// cause via errors.Unwrap/errors.As.
type UserCycleError = loopdriver.UserCycleError

// PlatformTimerError reports that the platform's one-shot timer service
// failed to schedule a wake inside a residual delay.
// It is fatal to the one delay call only. Inside a running loop it does
// not terminate the loop and is surfaced only through the injected logger;
// the package-level Delay returns it to its caller.
type PlatformTimerError = delay.PlatformTimerError
