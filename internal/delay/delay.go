// Package delay implements the precision delay primitive:
// composing short OS/platform sleeps with a final spin-wait so that a
// caller blocks for close to an arbitrary sub-millisecond duration without
// relying on a single unreliable OS sleep call.
package delay

import (
	"context"
	"time"

	"github.com/latticert/precisionloop/internal/cancel"
	"github.com/latticert/precisionloop/internal/clock"
	"github.com/latticert/precisionloop/internal/extent"
	"github.com/latticert/precisionloop/internal/platformtimer"
	"github.com/latticert/precisionloop/internal/tick"
)

// chunk is the sleep granularity between spin checks:
// long enough to let the OS schedule other work, short enough to stay
// responsive to cancellation.
const chunk = time.Millisecond

// Delay blocks the calling goroutine for approximately dur. It returns
// early, with no error, if canceler is signalled before dur elapses, or
// immediately if dur <= 0.
//
// This is the blocking variant: cancellation is observed at the 1ms chunk
// boundaries and on every poll of the spin tail, never mid-sleep.
func Delay(clk *clock.Clock, svc platformtimer.Service, canceler cancel.Canceler, dur extent.Extent, precision Precision) error {
	if !dur.IsPositive() {
		return nil
	}

	start := clk.Now()
	minPeriod := svc.MinPeriod()
	spinBudget := extent.FromMilliseconds(float64(minPeriod) * precision.factor())

	beginErr := svc.BeginPeriod(minPeriod)
	defer func() {
		if beginErr == nil {
			svc.EndPeriod(minPeriod)
		}
	}()

	for {
		if canceler.Done() {
			return nil
		}
		elapsed := clk.Elapsed(start)
		remaining := dur.Sub(elapsed)
		if !remaining.IsPositive() {
			return nil
		}

		if spinBudget.IsPositive() && !remaining.Greater(spinBudget) {
			spinWait(canceler, remaining, precision)
			return nil
		}

		if err := sleepChunk(svc); err != nil {
			return err
		}
	}
}

// DelayAsync is the cooperative variant: the 1ms chunk wait is a
// context-suspension point (select against ctx.Done()) rather than a
// blocking platform sleep. The final spin tail is still
// synchronous and CPU-bound by design.
func DelayAsync(ctx context.Context, clk *clock.Clock, svc platformtimer.Service, canceler cancel.Canceler, dur extent.Extent, precision Precision) error {
	if !dur.IsPositive() {
		return nil
	}

	start := clk.Now()
	minPeriod := svc.MinPeriod()
	spinBudget := extent.FromMilliseconds(float64(minPeriod) * precision.factor())

	beginErr := svc.BeginPeriod(minPeriod)
	defer func() {
		if beginErr == nil {
			svc.EndPeriod(minPeriod)
		}
	}()

	timer := time.NewTimer(chunk)
	defer timer.Stop()

	for {
		if canceler.Done() || ctx.Err() != nil {
			return nil
		}
		elapsed := clk.Elapsed(start)
		remaining := dur.Sub(elapsed)
		if !remaining.IsPositive() {
			return nil
		}

		if spinBudget.IsPositive() && !remaining.Greater(spinBudget) {
			spinWait(canceler, remaining, precision)
			return nil
		}

		timer.Reset(chunk)
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil
		}
	}
}

// spinWait busy-waits until remaining has elapsed or canceler fires, using
// the cheapest deadline check internal/tick offers for the requested
// precision: NanoDeadline's monotonic-clock comparison in general, or the
// TSC-backed deadline at Maximum on amd64, where the extra few nanoseconds
// per check shaved off the jitter budget are worth the calibration cost.
// A CPU pause hint is issued between polls.
func spinWait(canceler cancel.Canceler, remaining extent.Extent, precision Precision) {
	d := tick.NewSpin(remaining.Duration(), precision == Maximum)
	for !d.Reached() {
		if canceler.Done() {
			return
		}
		tick.Hint()
	}
}

// sleepChunk schedules one ~1ms platform one-shot and blocks until it fires.
// A schedule failure is wrapped as *PlatformTimerError and returned
// immediately; it does not affect any other in-flight or future Delay call.
func sleepChunk(svc platformtimer.Service) error {
	woke := make(chan struct{})
	_, err := svc.ScheduleOneShot(int(chunk/time.Millisecond), func() { close(woke) })
	if err != nil {
		return &PlatformTimerError{Err: err}
	}
	<-woke
	return nil
}
