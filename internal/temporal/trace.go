package temporal

import (
	"math"
	"time"
)

// TraceEvent is one observation of the system state at a point in time.
type TraceEvent[S any] struct {
	Timestamp time.Duration
	Value     S
}

// Trace is an immutable sequence of events with non-decreasing timestamps.
// The zero value is an empty trace.
type Trace[S any] struct {
	events []TraceEvent[S]
}

// NewTrace copies events into a Trace. Equal timestamps are allowed; a
// timestamp lower than its predecessor is rejected.
func NewTrace[S any](events ...TraceEvent[S]) (*Trace[S], error) {
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp < events[i-1].Timestamp {
			return nil, invariantf("trace timestamps must be non-decreasing: event %d at %s precedes event %d at %s",
				i, events[i].Timestamp, i-1, events[i-1].Timestamp)
		}
	}
	out := make([]TraceEvent[S], len(events))
	copy(out, events)
	return &Trace[S]{events: out}, nil
}

// MustTrace is NewTrace for fixtures; it panics on a non-monotonic trace.
func MustTrace[S any](events ...TraceEvent[S]) *Trace[S] {
	t, err := NewTrace(events...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromStates builds a trace whose k-th state is stamped k*step. Like
// MustTrace it panics with an *InvariantError when step is negative or the
// last stamp would overflow a Duration.
func FromStates[S any](step time.Duration, states ...S) *Trace[S] {
	if step < 0 {
		panic(invariantf("trace step %s is negative", step))
	}
	if n := len(states); n > 1 && step > 0 && time.Duration(n-1) > math.MaxInt64/step {
		panic(invariantf("trace of %d states with step %s overflows", n, step))
	}
	events := make([]TraceEvent[S], len(states))
	for k, s := range states {
		events[k] = TraceEvent[S]{Timestamp: time.Duration(k) * step, Value: s}
	}
	return &Trace[S]{events: events}
}

// Len returns the number of events; a nil trace is empty.
func (t *Trace[S]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}

// At returns the i-th event. It panics when i is out of range.
func (t *Trace[S]) At(i int) TraceEvent[S] {
	return t.events[i]
}

// Events returns a copy of the events.
func (t *Trace[S]) Events() []TraceEvent[S] {
	out := make([]TraceEvent[S], t.Len())
	if t != nil {
		copy(out, t.events)
	}
	return out
}

func (t *Trace[S]) offset(k int, t0 time.Duration) time.Duration {
	return t.events[k].Timestamp - t0
}
