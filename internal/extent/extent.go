// Package extent provides Extent, a nullable high-resolution duration used
// throughout the precision loop for both tick-count and seconds-based
// arithmetic.
//
// Extent carries a distinguished NaN in addition to MinValue/MaxValue
// saturation, mirroring IEEE-754 float semantics at the API boundary while
// storing everything internally as a signed tick count (one tick == one
// nanosecond). Mixed arithmetic against a plain float64 treats the float as
// seconds.
package extent

import (
	"fmt"
	"math"
	"time"
)

// Extent is an immutable, high-resolution duration.
//
// The zero value is Zero (0 ticks), which is a valid, finite Extent — unlike
// time.Duration there is no implicit "unset" state; NaN is used for that.
type Extent struct {
	ticks int64
	kind  kind
}

type kind uint8

const (
	kindFinite kind = iota
	kindPosInf
	kindNegInf
	kindNaN
)

// TicksPerSecond is the tick resolution: one tick is one nanosecond.
const TicksPerSecond = int64(1e9)

var (
	// Zero is the additive identity.
	Zero = Extent{}
	// One is exactly one second.
	One = Extent{ticks: TicksPerSecond}
	// NaN is the absorbing not-a-duration value.
	NaN = Extent{kind: kindNaN}
	// MinValue is the smallest finite Extent (saturation floor).
	MinValue = Extent{ticks: math.MinInt64}
	// MaxValue is the largest finite Extent (saturation ceiling).
	MaxValue = Extent{ticks: math.MaxInt64}
	// PosInf and NegInf are signed infinities, distinct from MinValue/MaxValue
	// and used only as intermediate arithmetic results (e.g. division by Zero).
	PosInf = Extent{kind: kindPosInf}
	NegInf = Extent{kind: kindNegInf}
)

// FromSeconds builds an Extent from a float64 seconds value. A non-finite
// input (NaN, +Inf, -Inf) yields NaN. Infinities collapse to NaN rather
// than PosInf/NegInf: a caller that wants an open-ended wait must say so
// with an explicit sentinel, not an overflowed float.
func FromSeconds(seconds float64) Extent {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return NaN
	}
	return fromTicksFloat(seconds * float64(TicksPerSecond))
}

// FromMilliseconds builds an Extent from a float64 milliseconds value.
func FromMilliseconds(ms float64) Extent {
	return FromSeconds(ms / 1000)
}

// FromTicks builds an Extent from an exact tick count.
func FromTicks(ticks int64) Extent {
	return Extent{ticks: ticks}
}

// FromHertz builds an Extent equal to 1/cps seconds. A zero or negative cps
// is not a valid frequency and yields NaN.
func FromHertz(cps float64) Extent {
	if cps <= 0 || math.IsNaN(cps) {
		return NaN
	}
	return FromSeconds(1 / cps)
}

// FromDuration converts a time.Duration into an Extent. The sentinel
// minimum duration maps to NaN, so NaN survives a round trip through
// time.Duration.
func FromDuration(d time.Duration) Extent {
	if int64(d) == math.MinInt64 {
		return NaN
	}
	return Extent{ticks: int64(d)}
}

func fromTicksFloat(f float64) Extent {
	switch {
	case math.IsNaN(f):
		return NaN
	case f >= float64(math.MaxInt64):
		return MaxValue
	case f <= float64(math.MinInt64):
		return MinValue
	default:
		return Extent{ticks: int64(f)}
	}
}

// IsNaN reports whether e is the NaN sentinel.
func (e Extent) IsNaN() bool { return e.kind == kindNaN }

// Ticks returns the raw tick count. Calling Ticks on a non-finite Extent
// returns 0; check IsNaN first if that distinction matters.
func (e Extent) Ticks() int64 {
	if e.kind != kindFinite {
		return 0
	}
	return e.ticks
}

// Seconds returns the duration in seconds as a float64. NaN and the signed
// infinities propagate to their float64 counterparts.
func (e Extent) Seconds() float64 {
	switch e.kind {
	case kindNaN:
		return math.NaN()
	case kindPosInf:
		return math.Inf(1)
	case kindNegInf:
		return math.Inf(-1)
	default:
		return float64(e.ticks) / float64(TicksPerSecond)
	}
}

// Duration converts e into a time.Duration. NaN and NegInf map to the
// sentinel minimum duration, PosInf saturates to the maximum.
func (e Extent) Duration() time.Duration {
	switch e.kind {
	case kindNaN, kindNegInf:
		return time.Duration(math.MinInt64)
	case kindPosInf:
		return time.Duration(math.MaxInt64)
	default:
		return time.Duration(e.ticks)
	}
}

// Milliseconds returns the duration in milliseconds as a float64.
func (e Extent) Milliseconds() float64 { return e.Seconds() * 1000 }

// IsZero reports whether e is exactly Zero.
func (e Extent) IsZero() bool { return e.kind == kindFinite && e.ticks == 0 }

// IsPositive reports whether e is greater than Zero. NaN is never positive.
func (e Extent) IsPositive() bool {
	switch e.kind {
	case kindFinite:
		return e.ticks > 0
	case kindPosInf:
		return true
	default:
		return false
	}
}

// Add returns e + other, NaN-absorbing and saturating on overflow.
func (e Extent) Add(other Extent) Extent {
	if e.kind == kindNaN || other.kind == kindNaN {
		return NaN
	}
	if e.kind != kindFinite || other.kind != kindFinite {
		return addInfinite(e, other)
	}
	sum, overflow := addOverflow(e.ticks, other.ticks)
	if overflow {
		if other.ticks > 0 {
			return MaxValue
		}
		return MinValue
	}
	return Extent{ticks: sum}
}

func addInfinite(a, b Extent) Extent {
	if a.kind == kindFinite {
		return b
	}
	if b.kind == kindFinite {
		return a
	}
	if a.kind == b.kind {
		return a
	}
	// PosInf + NegInf is undefined; treat as NaN.
	return NaN
}

func addOverflow(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return sum, true
	}
	return sum, false
}

// Sub returns e - other.
func (e Extent) Sub(other Extent) Extent {
	return e.Add(other.Negate())
}

// Negate returns -e.
func (e Extent) Negate() Extent {
	switch e.kind {
	case kindNaN:
		return NaN
	case kindPosInf:
		return NegInf
	case kindNegInf:
		return PosInf
	default:
		if e.ticks == math.MinInt64 {
			return MaxValue
		}
		return Extent{ticks: -e.ticks}
	}
}

// MulSeconds multiplies e by a plain scalar, a
// unitless factor applied to the duration (e.g. e.MulSeconds(2) doubles e).
func (e Extent) MulSeconds(factor float64) Extent {
	if e.kind == kindNaN || math.IsNaN(factor) {
		return NaN
	}
	if e.kind != kindFinite {
		return e.timesSign(factor)
	}
	return fromTicksFloat(float64(e.ticks) * factor)
}

func (e Extent) timesSign(factor float64) Extent {
	if factor == 0 {
		return NaN
	}
	neg := (e.kind == kindNegInf) != (factor < 0)
	if neg {
		return NegInf
	}
	return PosInf
}

// DivSeconds divides e by a plain scalar (seconds-style, see MulSeconds).
// Division by zero yields the signed infinity, division of Zero by Zero
// yields NaN.
func (e Extent) DivSeconds(divisor float64) Extent {
	if e.kind == kindNaN || math.IsNaN(divisor) {
		return NaN
	}
	if divisor == 0 {
		if e.IsZero() {
			return NaN
		}
		if e.ticks > 0 || e.kind == kindPosInf {
			return PosInf
		}
		return NegInf
	}
	return e.MulSeconds(1 / divisor)
}

// Div returns e / other expressed in seconds — the ratio of the two
// durations — NaN-absorbing as usual.
func (e Extent) Div(other Extent) float64 {
	if e.kind == kindNaN || other.kind == kindNaN {
		return math.NaN()
	}
	return e.Seconds() / other.Seconds()
}

// Mod returns e mod other: the unique value r with the same sign as other
// such that e - r is an integer multiple of other and |r| < |other|. This is
// the modular arithmetic the drift-correction math depends on.
func (e Extent) Mod(other Extent) Extent {
	if e.kind != kindFinite || other.kind != kindFinite || other.ticks == 0 {
		return NaN
	}
	r := e.ticks % other.ticks
	if r != 0 && (r < 0) != (other.ticks < 0) {
		r += other.ticks
	}
	return Extent{ticks: r}
}

// Compare returns -1, 0, or 1 if e is less than, equal to, or greater than
// other. The second return value is false if either operand is NaN, in
// which case the ordering result must not be used: NaN is unordered, and
// every relational operator involving it reports false.
func (e Extent) Compare(other Extent) (order int, ok bool) {
	if e.kind == kindNaN || other.kind == kindNaN {
		return 0, false
	}
	ea, oa := e.rank(), other.rank()
	switch {
	case ea < oa:
		return -1, true
	case ea > oa:
		return 1, true
	default:
		switch {
		case e.ticks < other.ticks:
			return -1, true
		case e.ticks > other.ticks:
			return 1, true
		default:
			return 0, true
		}
	}
}

// rank orders NegInf < finite < PosInf for Compare.
func (e Extent) rank() int {
	switch e.kind {
	case kindNegInf:
		return -1
	case kindPosInf:
		return 1
	default:
		return 0
	}
}

// Less reports e < other; false whenever either operand is NaN.
func (e Extent) Less(other Extent) bool {
	order, ok := e.Compare(other)
	return ok && order < 0
}

// Greater reports e > other; false whenever either operand is NaN.
func (e Extent) Greater(other Extent) bool {
	order, ok := e.Compare(other)
	return ok && order > 0
}

// Equal reports e == other; false whenever either operand is NaN, including
// NaN.Equal(NaN).
func (e Extent) Equal(other Extent) bool {
	order, ok := e.Compare(other)
	return ok && order == 0
}

// String formats e as its seconds value with four decimal places in an
// invariant (non-locale) format; NaN formats as "NaN" and the signed
// infinities as "+Inf" and "-Inf".
func (e Extent) String() string {
	switch e.kind {
	case kindNaN:
		return "NaN"
	case kindPosInf:
		return "+Inf"
	case kindNegInf:
		return "-Inf"
	default:
		return fmt.Sprintf("%.4f", e.Seconds())
	}
}
