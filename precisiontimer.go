package precisionloop

import (
	"sync"

	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/loopdriver"
)

// Observer is the single per-cycle subscriber slot of a PrecisionTimer.
// It receives the same mutable snapshot a PrecisionThread's
// cycle function would, including write access to IsStopRequested.
type Observer func(ev *CycleEvent)

// PrecisionTimer runs the same driver as PrecisionThread — one driver, a
// pluggable way to invoke the user — but through a
// Subscribe/Unsubscribe single-slot observer rather
// than a constructor callback, for callers that want to attach or detach a
// handler after construction. At most one observer is held at a time;
// Subscribe replaces whatever was there before.
type PrecisionTimer struct {
	mu       sync.RWMutex
	observer Observer

	driver *loopdriver.Driver
}

// NewPrecisionTimer constructs a PrecisionTimer with no observer attached.
// Cycles that occur before the first Subscribe call simply do no user
// work.
func NewPrecisionTimer(interval extent.Extent, opts ...Option) (*PrecisionTimer, error) {
	t := &PrecisionTimer{}
	d, err := loopdriver.New(t.invoke, interval, opts...)
	if err != nil {
		return nil, err
	}
	t.driver = d
	return t, nil
}

// Subscribe installs the single observer slot, replacing any previous one.
// Safe to call before Start, and from any goroutine while running.
func (t *PrecisionTimer) Subscribe(obs Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observer = obs
}

// Unsubscribe clears the observer slot; subsequent cycles do no user work
// until Subscribe is called again.
func (t *PrecisionTimer) Unsubscribe() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observer = nil
}

func (t *PrecisionTimer) invoke(ev *CycleEvent) error {
	t.mu.RLock()
	obs := t.observer
	t.mu.RUnlock()
	if obs != nil {
		obs(ev)
	}
	return nil
}

// Start transitions Created -> Running. See PrecisionThread.Start.
func (t *PrecisionTimer) Start() error { return t.driver.Start() }

// Dispose signals cancellation without blocking. Idempotent.
func (t *PrecisionTimer) Dispose() { t.driver.Dispose() }

// WaitForExit blocks until the loop has finished. See
// PrecisionThread.WaitForExit.
func (t *PrecisionTimer) WaitForExit() error { return t.driver.WaitForExit() }
