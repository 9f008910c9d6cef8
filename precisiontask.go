package precisionloop

import (
	"context"

	"github.com/latticert/precisionloop/internal/cancel"
	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/loopdriver"
)

// TaskFunc is the asynchronous cycle function shape of PrecisionTask:
// alongside the per-cycle snapshot it receives a context.Context that
// becomes Done once the task's cancellation source fires, so callers
// integrating their own cooperative cancellation (select loops, other
// context-aware APIs) can watch it instead of blocking outright.
type TaskFunc func(ctx context.Context, ev *CycleEvent) error

// PrecisionTask runs the same driver as PrecisionThread and PrecisionTimer,
// but the cycle function is given a context.Context rather than running as
// an opaque blocking call. The driver still invokes it synchronously, to
// completion, before starting the residual delay: exactly one concurrent
// cycle invocation per loop instance, like every façade.
type PrecisionTask struct {
	fn       TaskFunc
	canceler *cancel.ContextCanceler

	driver *loopdriver.Driver
}

// NewPrecisionTask constructs a PrecisionTask in the Created state.
func NewPrecisionTask(fn TaskFunc, interval extent.Extent, opts ...Option) (*PrecisionTask, error) {
	t := &PrecisionTask{
		fn:       fn,
		canceler: cancel.NewContext(context.Background()),
	}
	d, err := loopdriver.New(t.invoke, interval, opts...)
	if err != nil {
		return nil, err
	}
	t.driver = d
	return t, nil
}

func (t *PrecisionTask) invoke(ev *CycleEvent) error {
	return t.fn(t.canceler.Context(), ev)
}

// Start transitions Created -> Running. See PrecisionThread.Start.
func (t *PrecisionTask) Start() error { return t.driver.Start() }

// Dispose signals cancellation both to the driver's own cancellation
// source and to the context.Context handed to the task function, so a
// cycle currently awaiting something context-aware observes it the same
// wake as the residual delay would. Idempotent.
func (t *PrecisionTask) Dispose() {
	t.canceler.Cancel()
	t.driver.Dispose()
}

// WaitForExit blocks until the loop has finished. See
// PrecisionThread.WaitForExit.
func (t *PrecisionTask) WaitForExit() error { return t.driver.WaitForExit() }
