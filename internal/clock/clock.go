package clock

import (
	"errors"
	_ "unsafe" // for go:linkname

	"github.com/latticert/precisionloop/internal/extent"
)

// Timestamp is an opaque monotonic instant. Only differences between two
// Timestamps from the same Clock are meaningful.
type Timestamp int64

// nanotime returns the Go runtime's monotonic clock reading in nanoseconds.
// This is the single canonical fallback source shared by every package that
// needs a cheap monotonic read (internal/tick's NanoDeadline calls
// clock.RawNanos, which bottoms out here, instead of declaring its own
// duplicate linkname).
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// RawNanos returns the default runtime monotonic reading, independent of any
// particular Clock instance. Exposed so sibling packages (internal/tick) can
// share the one linkname declaration rather than each declaring their own.
func RawNanos() int64 { return nanotime() }

// ErrNotMonotonic is returned by New when the selected tick source failed a
// basic monotonicity sanity check at construction time.
var ErrNotMonotonic = errors.New("clock: tick source is not monotonic")

// Clock is a monotonic, high-resolution tick source.
type Clock struct {
	raw     func() int64
	closeFn func()
}

// Option configures a Clock at construction time.
type Option func(*config)

type config struct {
	preferTSC            bool
	tscRecalibrateEvery  extent.Extent
}

// WithPreferTSC asks New to use github.com/templexxx/tsc as the tick source
// when the CPU and OS support it (see clock_tsc.go), recalibrating the
// cycles-per-nanosecond ratio on the given interval in a background
// goroutine. A zero interval disables periodic recalibration (calibrate
// once, at construction). Ignored on platforms/architectures without TSC
// support; New silently falls back to the runtime monotonic clock.
func WithPreferTSC(recalibrateEvery extent.Extent) Option {
	return func(c *config) {
		c.preferTSC = true
		c.tscRecalibrateEvery = recalibrateEvery
	}
}

// New constructs a Clock. It fails fast if the resulting
// source cannot be shown to be monotonic across two successive reads.
func New(opts ...Option) (*Clock, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Clock{raw: RawNanos, closeFn: func() {}}
	if cfg.preferTSC {
		if src, closeFn, ok := newTSCSource(cfg.tscRecalibrateEvery); ok {
			c.raw = src
			c.closeFn = closeFn
		}
	}

	a := c.raw()
	b := c.raw()
	if b < a {
		return nil, ErrNotMonotonic
	}
	return c, nil
}

// Now returns the current monotonic instant.
func (c *Clock) Now() Timestamp { return Timestamp(c.raw()) }

// Elapsed returns the duration elapsed since since, as measured by this
// Clock. since must have come from c.Now(); Extents derived from two
// different Clock instances are not comparable.
func (c *Clock) Elapsed(since Timestamp) extent.Extent {
	return extent.FromTicks(int64(c.Now()) - int64(since))
}

// Close releases any background resources (e.g. the TSC recalibration
// goroutine). Safe to call on a Clock built without WithPreferTSC.
func (c *Clock) Close() error {
	c.closeFn()
	return nil
}
