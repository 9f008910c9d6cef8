package precisionloop

import (
	"context"
	"sync"

	"github.com/latticert/precisionloop/internal/cancel"
	"github.com/latticert/precisionloop/internal/clock"
	"github.com/latticert/precisionloop/internal/delay"
	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/platformtimer"
)

// Canceler is the cancellation token accepted by Delay/DelayAsync: a
// monotonic "has this been cancelled?" flag. Pass
// nil for a delay that cannot be cancelled early.
type Canceler = cancel.Canceler

// defaultClock and defaultSvc are lazily constructed once and shared by
// every package-level Delay/DelayAsync call, so a caller that only wants a
// one-off precise wait doesn't have to build its own
// clock.Clock/platformtimer.Service pair.
var (
	defaultOnce sync.Once
	defaultClk  *clock.Clock
	defaultErr  error
	defaultSvc  platformtimer.Service
)

func defaultClockAndService() (*clock.Clock, platformtimer.Service, error) {
	defaultOnce.Do(func() {
		defaultClk, defaultErr = clock.New()
		defaultSvc = platformtimer.New()
	})
	return defaultClk, defaultSvc, defaultErr
}

// Delay blocks the calling goroutine for approximately dur.
// canceler may be nil; if it
// fires before dur elapses, Delay returns early with no error. Returns
// immediately, with no error, if dur <= 0.
func Delay(dur extent.Extent, precision PrecisionOption, canceler Canceler) error {
	clk, svc, err := defaultClockAndService()
	if err != nil {
		return err
	}
	if canceler == nil {
		canceler = cancel.NewAtomic()
	}
	return delay.Delay(clk, svc, canceler, dur, precision)
}

// DelayAsync is the cooperative variant of Delay: ctx is
// checked at every ~1ms chunk boundary in addition to canceler, so a
// caller already holding a context.Context can interrupt the wait the
// idiomatic way without a dedicated Canceler.
func DelayAsync(ctx context.Context, dur extent.Extent, precision PrecisionOption, canceler Canceler) error {
	clk, svc, err := defaultClockAndService()
	if err != nil {
		return err
	}
	if canceler == nil {
		canceler = cancel.NewAtomic()
	}
	return delay.DelayAsync(ctx, clk, svc, canceler, dur, precision)
}
