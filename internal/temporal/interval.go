package temporal

import (
	"fmt"
	"time"
)

// Interval is a closed range of relative offsets [lower, upper]. An interval
// built with AtLeast has no upper bound.
type Interval struct {
	lower     time.Duration
	upper     time.Duration
	unbounded bool
}

// NewInterval returns [lower, upper]. It rejects a negative lower bound and
// an upper bound below the lower one.
func NewInterval(lower, upper time.Duration) (Interval, error) {
	if lower < 0 {
		return Interval{}, invariantf("interval lower bound %s is negative", lower)
	}
	if upper < lower {
		return Interval{}, invariantf("interval upper bound %s is below lower bound %s", upper, lower)
	}
	return Interval{lower: lower, upper: upper}, nil
}

// Between is NewInterval for literal bounds; it panics on invalid bounds.
func Between(lower, upper time.Duration) Interval {
	iv, err := NewInterval(lower, upper)
	if err != nil {
		panic(err)
	}
	return iv
}

// Exactly returns [d, d].
func Exactly(d time.Duration) Interval { return Between(d, d) }

// UpTo returns [0, d].
func UpTo(d time.Duration) Interval { return Between(0, d) }

// AtLeast returns [d, ∞).
func AtLeast(d time.Duration) Interval {
	if d < 0 {
		panic(invariantf("interval lower bound %s is negative", d))
	}
	return Interval{lower: d, unbounded: true}
}

func (iv Interval) Lower() time.Duration { return iv.lower }

// Upper returns the upper bound and false when the interval is unbounded.
func (iv Interval) Upper() (time.Duration, bool) {
	if iv.unbounded {
		return 0, false
	}
	return iv.upper, true
}

// Contains reports whether lower <= d <= upper.
func (iv Interval) Contains(d time.Duration) bool {
	if d < iv.lower {
		return false
	}
	return iv.unbounded || d <= iv.upper
}

// Past reports whether d lies after the upper bound. Offsets only grow along
// a trace, so once Past is true no later event can re-enter the interval.
func (iv Interval) Past(d time.Duration) bool {
	return !iv.unbounded && d > iv.upper
}

func (iv Interval) String() string {
	if iv.unbounded {
		return fmt.Sprintf("[%s,∞)", iv.lower)
	}
	return fmt.Sprintf("[%s,%s]", iv.lower, iv.upper)
}
