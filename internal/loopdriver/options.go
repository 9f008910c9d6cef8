package loopdriver

import (
	"github.com/sirupsen/logrus"

	"github.com/latticert/precisionloop/internal/clock"
	"github.com/latticert/precisionloop/internal/delay"
	"github.com/latticert/precisionloop/internal/loopstate"
	"github.com/latticert/precisionloop/internal/platformtimer"
)

// FailureHook is invoked when the user's cycle function returns (or
// panics with) an error. Returning true asks the driver to continue
// running; returning false attaches the error to Completion and begins
// the Finishing transition.
//
// When no hook is installed, Driver substitutes one that always returns
// false: an unhandled cycle error stops the loop.
type FailureHook func(err error) (continueRunning bool)

// FinishedHook is invoked exactly once, after the loop has stopped running
// and before Completion resolves.
type FinishedHook func(exitErr error)

// Option configures a Driver at construction time.
type Option func(*config)

type config struct {
	precision    delay.Precision
	failureHook  FailureHook
	finishedHook FinishedHook
	logger       logrus.FieldLogger
	clk          *clock.Clock
	svc          platformtimer.Service
	loopOpts     []loopstate.Option
}

func defaultConfig() config {
	return config{
		precision: delay.Default,
		logger:    defaultLogger(),
	}
}

func defaultLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return log.WithField("component", "precisionloop")
}

// WithPrecision sets the spin-budget factor used for every residual delay.
func WithPrecision(p delay.Precision) Option {
	return func(c *config) { c.precision = p }
}

// WithFailureHook installs the user-cycle failure hook.
func WithFailureHook(h FailureHook) Option {
	return func(c *config) { c.failureHook = h }
}

// WithFinishedHook installs the termination hook.
func WithFinishedHook(h FinishedHook) Option {
	return func(c *config) { c.finishedHook = h }
}

// WithLogger overrides the driver's structured logger. Start, finishing,
// stop requests, user cycle errors and residual-delay failures are logged
// at the level the caller's logrus configuration allows through; Dispose
// and missed cycles are not logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) { c.logger = log }
}

// WithClock injects a pre-built monotonic clock, primarily so tests can
// exercise the driver without depending on wall-clock timing.
func WithClock(clk *clock.Clock) Option {
	return func(c *config) { c.clk = clk }
}

// WithPlatformTimer injects a platform timer service, primarily so tests
// can run the driver without touching the real OS timer facilities.
func WithPlatformTimer(svc platformtimer.Service) Option {
	return func(c *config) { c.svc = svc }
}

// WithSampleThreshold overrides T, the minimum rolling-window population
// before average-drift correction engages, forwarded to
// internal/loopstate.
func WithSampleThreshold(t int) Option {
	return func(c *config) { c.loopOpts = append(c.loopOpts, loopstate.WithSampleThreshold(t)) }
}

// WithWindowSize fixes the rolling sample window's capacity instead of
// deriving it from the interval, forwarded to internal/loopstate.
func WithWindowSize(size int) Option {
	return func(c *config) { c.loopOpts = append(c.loopOpts, loopstate.WithWindowSize(size)) }
}
