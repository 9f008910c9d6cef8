package loopdriver

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/latticert/precisionloop/internal/cancel"
	"github.com/latticert/precisionloop/internal/clock"
	"github.com/latticert/precisionloop/internal/delay"
	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/loopstate"
	"github.com/latticert/precisionloop/internal/platformtimer"
)

// CycleFunc is the shape of a user cycle function shared by every façade
// variant — the façades differ only in how they build one of these, not in
// how the driver runs it. ev is the mutable snapshot the driver hands out
// and reads back; setting ev.IsStopRequested asks the driver to stop
// after this cycle's update step. The stop cancels the residual delay, so
// that delay returns at once.
type CycleFunc func(ev *loopstate.CycleEvent) error

// Phase is one of the four lifecycle states of a Driver.
type Phase int32

const (
	// PhaseCreated is the state immediately after New.
	PhaseCreated Phase = iota
	// PhaseRunning is entered by the first (and only) successful Start.
	PhaseRunning
	// PhaseFinishing is entered once the loop has decided to stop, before
	// FinishedHook has run.
	PhaseFinishing
	// PhaseDisposed is terminal.
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "Created"
	case PhaseRunning:
		return "Running"
	case PhaseFinishing:
		return "Finishing"
	case PhaseDisposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}

// Driver runs the precision loop's state machine. It is safe
// for Start/Dispose/WaitForExit to be called from any goroutine; the cycle
// function itself always runs on the driver's own single worker goroutine,
// with exactly one execution in flight at a time.
type Driver struct {
	cycleFn      CycleFunc
	precision    delay.Precision
	failureHook  FailureHook
	finishedHook FinishedHook
	log          logrus.FieldLogger

	clk *clock.Clock
	svc platformtimer.Service

	loop     *loopstate.State
	canceler *cancel.AtomicCanceler

	completion *Completion

	// mu serialises Start against Dispose.
	mu    sync.Mutex
	phase Phase
}

// New constructs a Driver in PhaseCreated. interval is coerced to at least
// one clock tick if non-positive.
func New(cycleFn CycleFunc, interval extent.Extent, opts ...Option) (*Driver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	clk := cfg.clk
	if clk == nil {
		var err error
		clk, err = clock.New()
		if err != nil {
			return nil, fmt.Errorf("loopdriver: %w", err)
		}
	}
	svc := cfg.svc
	if svc == nil {
		svc = platformtimer.New()
	}

	return &Driver{
		cycleFn:      cycleFn,
		precision:    cfg.precision,
		failureHook:  cfg.failureHook,
		finishedHook: cfg.finishedHook,
		log:          cfg.logger,
		clk:          clk,
		svc:          svc,
		loop:         loopstate.NewState(clk, interval, cfg.loopOpts...),
		canceler:     cancel.NewAtomic(),
		completion:   newCompletion(),
		phase:        PhaseCreated,
	}, nil
}

// Phase returns the driver's current lifecycle state.
func (d *Driver) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Start transitions Created -> Running and launches the loop on a new
// goroutine. It returns ErrAlreadyStarted if called a second time, or
// ErrDisposed if the driver was disposed before ever starting.
func (d *Driver) Start() error {
	d.mu.Lock()
	switch d.phase {
	case PhaseDisposed:
		d.mu.Unlock()
		return ErrDisposed
	case PhaseCreated:
		d.phase = PhaseRunning
		d.mu.Unlock()
	default:
		d.mu.Unlock()
		return ErrAlreadyStarted
	}

	d.log.Info("precision loop starting")
	go d.run()
	return nil
}

// Dispose signals cancellation to the running cycle without blocking.
// Idempotent. If the driver never started, Dispose finalises it directly;
// the finished hook and completion still fire exactly once on that path.
func (d *Driver) Dispose() {
	d.mu.Lock()
	switch d.phase {
	case PhaseDisposed:
		d.mu.Unlock()
		return
	case PhaseCreated:
		d.phase = PhaseDisposed
		d.mu.Unlock()
		d.canceler.Cancel()
		d.invokeFinishedHook(nil)
		d.completion.resolve(nil)
		return
	default:
		d.mu.Unlock()
		d.canceler.Cancel()
	}
}

// WaitForExit blocks until the driver has finished running and returns its
// exit error (nil on success or plain cancellation).
func (d *Driver) WaitForExit() error {
	return d.completion.Wait()
}

// run is the per-cycle loop, executed on the driver's own
// goroutine from Start until the loop decides (or is told) to stop.
func (d *Driver) run() {
	var exitErr error
	observer := newWeakObserver(d.canceler)

	for {
		snapshot := d.loop.Snapshot()
		stop := false

		if err := d.invokeCycle(&snapshot); err != nil {
			cont := false
			if d.failureHook != nil {
				cont = d.failureHook(err)
			}
			if !cont {
				exitErr = &UserCycleError{Err: err}
				stop = true
				d.canceler.Cancel()
				d.log.WithError(err).Warn("user cycle error, stopping")
			} else {
				d.log.WithError(err).Debug("user cycle error, continuing")
			}
		}

		if snapshot.IsStopRequested {
			stop = true
			d.canceler.Cancel()
			d.log.Debug("stop requested by cycle function")
		}

		residual := d.loop.NextDelay()
		if residual.IsPositive() {
			if err := delay.Delay(d.clk, d.svc, observer, residual, d.precision); err != nil {
				d.log.WithError(err).Warn("residual delay failed")
			}
		}

		d.loop.Update()

		if stop || d.canceler.Done() {
			break
		}
	}

	d.finish(exitErr)
}

// invokeCycle calls the user cycle function, converting a panic into an
// error handled the same as a returned error.
func (d *Driver) invokeCycle(ev *loopstate.CycleEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("user cycle panicked: %v", r)
		}
	}()
	return d.cycleFn(ev)
}

func (d *Driver) finish(exitErr error) {
	d.mu.Lock()
	d.phase = PhaseFinishing
	d.mu.Unlock()

	d.log.WithField("exit_error", exitErr).Info("precision loop finishing")
	d.invokeFinishedHook(exitErr)

	d.mu.Lock()
	d.phase = PhaseDisposed
	d.mu.Unlock()

	d.completion.resolve(exitErr)
}

func (d *Driver) invokeFinishedHook(exitErr error) {
	if d.finishedHook == nil {
		return
	}
	d.finishedHook(exitErr)
}
