package loopstate

import (
	"math"

	"github.com/latticert/precisionloop/internal/clock"
	"github.com/latticert/precisionloop/internal/extent"
)

// defaultSampleThreshold is the minimum window population before
// average-drift correction engages, and the floor on the window capacity.
// Overridable via WithSampleThreshold.
const defaultSampleThreshold = 10

// Option configures a State at construction time.
type Option func(*options)

type options struct {
	sampleThreshold int
	windowSize      int
}

// WithSampleThreshold overrides T, the minimum window population before
// average-drift correction engages and the floor of the window capacity W.
// t must be positive; non-positive values are ignored.
func WithSampleThreshold(t int) Option {
	return func(o *options) {
		if t > 0 {
			o.sampleThreshold = t
		}
	}
}

// WithWindowSize fixes the rolling sample window's capacity instead of
// deriving it from the interval as W = max(T, ceil(1s/interval)).
// Primarily useful for tests that want deterministic window behaviour
// independent of the configured interval. size must be positive.
func WithWindowSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.windowSize = size
		}
	}
}

// State is the driver's internal per-run book-keeping.
// It is not safe for concurrent use — internal/loopdriver drives exactly
// one State from exactly one goroutine per run.
type State struct {
	clk *clock.Clock

	interval  extent.Extent
	nextDelay extent.Extent

	currentTickTS   clock.Timestamp
	naturalStartTS  clock.Timestamp
	naturalElapsed  extent.Extent
	discreteElapsed extent.Extent

	started bool

	eventIndex  int64
	totalMissed int64

	sampleThreshold int
	fixedWindow     bool

	window *window
	last   CycleEvent
}

// NewState constructs a State for a run configured with the given initial
// interval (coerced to at least one tick). clk is the monotonic source
// used for every elapsed-time measurement in Update.
func NewState(clk *clock.Clock, interval extent.Extent, opts ...Option) *State {
	o := options{sampleThreshold: defaultSampleThreshold}
	for _, opt := range opts {
		opt(&o)
	}

	coerced := coerceInterval(interval)
	s := &State{
		clk:             clk,
		interval:        coerced,
		nextDelay:       extent.Zero,
		currentTickTS:   clk.Now(),
		naturalElapsed:  extent.Zero,
		discreteElapsed: extent.Zero,
		sampleThreshold: o.sampleThreshold,
		fixedWindow:     o.windowSize > 0,
		last:            CycleEvent{Interval: coerced},
	}
	if s.fixedWindow {
		s.window = newWindow(o.windowSize)
	} else {
		s.window = newWindow(s.windowCapacity(coerced))
	}
	return s
}

// Snapshot returns an immutable copy of the current public fields,
// i.e. the CycleEvent produced by the most recent Update
// call, or the zero-cycle defaults before Update has ever been called.
func (s *State) Snapshot() CycleEvent { return s.last }

// coerceInterval coerces any non-positive interval to one tick, preventing
// division by zero in the windowed-statistics and missed-cycle arithmetic.
func coerceInterval(interval extent.Extent) extent.Extent {
	if !interval.IsPositive() {
		return extent.FromTicks(1)
	}
	return interval
}

// windowCapacity computes W = max(T, ceil(1s/interval)).
func (s *State) windowCapacity(interval extent.Extent) int {
	seconds := interval.Seconds()
	if seconds <= 0 {
		return s.sampleThreshold
	}
	w := int(math.Ceil(1 / seconds))
	if w < s.sampleThreshold {
		return s.sampleThreshold
	}
	return w
}

// NextDelay returns the residual the driver should pass to internal/delay
// before this state's next Update call, as computed by the
// previous Update. Before the first Update it is
// Zero: the very first cycle's user work is followed by no delay, firing
// cycle 0 as soon as the loop starts.
func (s *State) NextDelay() extent.Extent { return s.nextDelay }

// EventIndex, TotalMissed, and Interval expose read-only state the driver
// needs to build a CycleEvent snapshot before Update has run for the first
// time (i.e. before cycle 0).
func (s *State) EventIndex() int64       { return s.eventIndex }
func (s *State) TotalMissed() int64      { return s.totalMissed }
func (s *State) Interval() extent.Extent { return s.interval }

// SetInterval re-configures the target interval, taking effect on the next
// Update call: the configured interval may change between cycles.
func (s *State) SetInterval(interval extent.Extent) {
	s.interval = coerceInterval(interval)
}

// Update performs the per-cycle statistics and drift-correction step and
// returns the resulting CycleEvent snapshot, with
// EventIndex/TotalMissed/NextDelay
// already advanced for the cycle that is about to begin. It must be called
// exactly once per cycle, after the user's cycle function and the
// post-work delay have both returned.
func (s *State) Update() CycleEvent {
	isFirst := !s.started
	s.started = true

	prev := s.currentTickTS
	interval := s.interval

	var rawElapsed extent.Extent
	if isFirst {
		rawElapsed = extent.Zero
	} else {
		rawElapsed = s.clk.Elapsed(prev)
	}
	s.currentTickTS = s.clk.Now()

	// Step 1: natural drift.
	var naturalElapsedForDrift extent.Extent
	if isFirst {
		naturalElapsedForDrift = s.discreteElapsed
	} else {
		naturalElapsedForDrift = s.clk.Elapsed(s.naturalStartTS)
	}
	naturalDrift := naturalElapsedForDrift.Sub(s.discreteElapsed).Mod(interval)
	intervalElapsed := rawElapsed.Add(naturalDrift)

	// Step 2: next-delay first estimate, carrying over the previous residual.
	nextDelay := interval.Sub(intervalElapsed.Sub(s.nextDelay))

	// Step 3: discrete elapsed.
	s.discreteElapsed = s.discreteElapsed.Add(intervalElapsed)

	// Step 4: natural elapsed.
	if isFirst {
		s.naturalStartTS = prev
		s.naturalElapsed = s.discreteElapsed
	} else {
		s.naturalElapsed = s.clk.Elapsed(s.naturalStartTS)
	}

	// Step 5: windowed statistics.
	if !s.fixedWindow {
		s.window.setCapacity(s.windowCapacity(interval))
	}
	s.window.add(intervalElapsed)
	samples := s.window.samples()
	intervalAverage := windowMean(samples)
	frequency := 0.0
	if avgSeconds := intervalAverage.Seconds(); avgSeconds > 0 {
		frequency = 1 / avgSeconds
	}
	intervalJitter := windowJitter(samples, interval)

	// Step 6: average drift correction, once the window holds at least
	// sampleThreshold/2 samples.
	if len(samples) >= s.sampleThreshold/2 {
		averageDrift := intervalAverage.Sub(interval).Mod(interval)
		nextDelay = nextDelay.Sub(averageDrift)
	}

	// Step 7: missed-cycle detection.
	var missed int64
	if !nextDelay.IsPositive() {
		missed = 1 + int64(math.Floor(nextDelay.Negate().Div(interval)))
		s.totalMissed += missed
		nextDelay = interval
	}

	// Step 8: advance event index.
	s.eventIndex += 1 + missed
	s.nextDelay = nextDelay

	ev := CycleEvent{
		EventIndex:      s.eventIndex,
		MissedCount:     missed,
		TotalMissed:     s.totalMissed,
		Interval:        interval,
		IntervalElapsed: intervalElapsed,
		IntervalAverage: intervalAverage,
		Frequency:       frequency,
		IntervalJitter:  intervalJitter,
		NaturalElapsed:  s.naturalElapsed,
		DiscreteElapsed: s.discreteElapsed,
	}
	s.last = ev
	return ev
}

// windowMean computes the seconds-domain mean of samples and re-wraps it
// as an Extent. Tick arithmetic stays authoritative everywhere else;
// seconds are used only for the average, frequency, and jitter figures.
func windowMean(samples []extent.Extent) extent.Extent {
	if len(samples) == 0 {
		return extent.Zero
	}
	var sum float64
	for _, s := range samples {
		sum += s.Seconds()
	}
	return extent.FromSeconds(sum / float64(len(samples)))
}

// windowJitter computes sqrt(mean((sample - interval)^2)) in seconds.
func windowJitter(samples []extent.Extent, interval extent.Extent) extent.Extent {
	if len(samples) == 0 {
		return extent.Zero
	}
	target := interval.Seconds()
	var sumSq float64
	for _, s := range samples {
		d := s.Seconds() - target
		sumSq += d * d
	}
	return extent.FromSeconds(math.Sqrt(sumSq / float64(len(samples))))
}
