package precisionloop

import (
	"github.com/sirupsen/logrus"

	"github.com/latticert/precisionloop/internal/clock"
	"github.com/latticert/precisionloop/internal/delay"
	"github.com/latticert/precisionloop/internal/loopdriver"
	"github.com/latticert/precisionloop/internal/platformtimer"
)

// PrecisionOption selects how much of the platform's minimum timer period
// the delay primitive is allowed to spend spin-waiting at the tail of a
// wait.
type PrecisionOption = delay.Precision

// The four precision levels, in increasing order of spin budget (and CPU
// cost) and decreasing order of jitter.
const (
	Default = delay.Default
	Medium  = delay.Medium
	High    = delay.High
	Maximum = delay.Maximum
)

// Option configures a PrecisionThread, PrecisionTimer, or PrecisionTask at
// construction time; all three façades share the one Option type because
// they share the one underlying driver.
type Option = loopdriver.Option

// FailureHook is invoked when a cycle function returns (or panics with) an
// error. Returning true asks the loop to keep running; returning false
// begins termination and attaches the error to WaitForExit. If no hook is
// installed, every cycle error is fatal.
type FailureHook = loopdriver.FailureHook

// FinishedHook is invoked exactly once, after the loop has stopped and
// before WaitForExit resolves.
type FinishedHook = loopdriver.FinishedHook

// WithPrecision sets the spin-budget factor used for every residual delay.
// The default is Default (no spin).
func WithPrecision(p PrecisionOption) Option { return loopdriver.WithPrecision(p) }

// WithFailureHook installs the cycle-failure hook.
func WithFailureHook(h FailureHook) Option { return loopdriver.WithFailureHook(h) }

// WithFinishedHook installs the termination hook.
func WithFinishedHook(h FinishedHook) Option { return loopdriver.WithFinishedHook(h) }

// WithLogger overrides the façade's structured logger (default: a
// logrus.Logger at WarnLevel, so a library consumer gets silence unless
// something is actually wrong).
func WithLogger(log logrus.FieldLogger) Option { return loopdriver.WithLogger(log) }

// WithClock injects a pre-built monotonic clock, primarily for tests that
// want to exercise a façade without depending on wall-clock timing.
func WithClock(clk *clock.Clock) Option { return loopdriver.WithClock(clk) }

// WithPlatformTimer injects a platform timer service, primarily for tests
// that want to run a façade without touching the real OS timer facilities.
func WithPlatformTimer(svc platformtimer.Service) Option { return loopdriver.WithPlatformTimer(svc) }

// WithSampleThreshold overrides T, the minimum rolling-window population
// before average-drift correction engages.
func WithSampleThreshold(t int) Option { return loopdriver.WithSampleThreshold(t) }

// WithWindowSize fixes the rolling sample window's capacity instead of
// deriving it from the configured interval.
func WithWindowSize(size int) Option { return loopdriver.WithWindowSize(size) }
