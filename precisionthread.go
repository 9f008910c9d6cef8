package precisionloop

import (
	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/loopdriver"
)

// CycleFunc is the shape of the synchronous cycle function run by a
// PrecisionThread: it receives the driver's mutable snapshot for
// this cycle and may set ev.IsStopRequested to ask the loop to stop after
// this cycle's update step; the stop cancels the residual delay, so that
// delay returns at once.
type CycleFunc = loopdriver.CycleFunc

// PrecisionThread runs cycleFn at interval on a single dedicated background
// goroutine: the only blocking inside a
// cycle happens inside the residual delay between the user's work and the
// next cycle's snapshot, and exactly one invocation of cycleFn is ever
// in flight.
type PrecisionThread struct {
	driver *loopdriver.Driver
}

// NewPrecisionThread constructs a PrecisionThread in the Created state.
// It does not run until Start is called.
func NewPrecisionThread(cycleFn CycleFunc, interval extent.Extent, opts ...Option) (*PrecisionThread, error) {
	d, err := loopdriver.New(cycleFn, interval, opts...)
	if err != nil {
		return nil, err
	}
	return &PrecisionThread{driver: d}, nil
}

// Start transitions Created -> Running, launching the loop on its
// dedicated goroutine. It returns ErrAlreadyStarted or ErrDisposed if
// called a second time or after Dispose.
func (t *PrecisionThread) Start() error { return t.driver.Start() }

// Dispose signals cancellation to the running cycle without blocking.
// Idempotent.
func (t *PrecisionThread) Dispose() { t.driver.Dispose() }

// WaitForExit blocks until the loop has finished and returns its exit
// error, or nil on success or plain cancellation.
func (t *PrecisionThread) WaitForExit() error { return t.driver.WaitForExit() }
