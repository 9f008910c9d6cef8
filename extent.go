package precisionloop

import (
	"time"

	"github.com/latticert/precisionloop/internal/extent"
)

// Extent is a nullable, high-resolution duration: a
// finite signed tick count, positive or negative infinity, or a
// distinguished NaN. It is immutable. Add, Sub and Mod combine two
// Extents, Div gives the ratio of two Extents, and MulSeconds/DivSeconds
// scale an Extent by a plain float64; there is no addition, subtraction
// or modulo with a bare float64.
type Extent = extent.Extent

var (
	// Zero is the additive identity.
	Zero = extent.Zero
	// One is exactly one second.
	One = extent.One
	// NaN is the absorbing not-a-duration value: arithmetic with NaN
	// yields NaN, and every relational comparison against NaN is false.
	NaN = extent.NaN
	// MinValue is the smallest finite Extent; overflowing arithmetic
	// saturates to it rather than wrapping.
	MinValue = extent.MinValue
	// MaxValue is the largest finite Extent; overflowing arithmetic
	// saturates to it rather than wrapping.
	MaxValue = extent.MaxValue
)

// FromSeconds builds an Extent from a float64 seconds value. A non-finite
// input (NaN, +-Inf) yields NaN.
func FromSeconds(seconds float64) Extent { return extent.FromSeconds(seconds) }

// FromMilliseconds builds an Extent from a float64 milliseconds value.
func FromMilliseconds(ms float64) Extent { return extent.FromMilliseconds(ms) }

// FromTicks builds an Extent directly from a tick count (one tick is one
// nanosecond).
func FromTicks(ticks int64) Extent { return extent.FromTicks(ticks) }

// FromDuration converts a time.Duration into an Extent; the sentinel
// minimum duration maps to NaN. The inverse is Extent.Duration.
func FromDuration(d time.Duration) Extent { return extent.FromDuration(d) }

// FromHertz builds an Extent equal to 1/cps seconds, e.g. FromHertz(75) for
// a 75Hz loop interval.
func FromHertz(cps float64) Extent { return extent.FromHertz(cps) }
