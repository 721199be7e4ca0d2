// Package recorder captures live observations into a temporal trace.
package recorder

import (
	"sync"
	"time"

	"github.com/awmpietro/tracecheck/internal/temporal"
)

type Recorder[S any] struct {
	mu     sync.Mutex
	clock  func() time.Time
	start  time.Time
	last   time.Duration
	events []temporal.TraceEvent[S]
}

// New returns a recorder whose stamps are offsets from the first clock
// reading. A nil clock uses time.Now.
func New[S any](clock func() time.Time) *Recorder[S] {
	if clock == nil {
		clock = time.Now
	}
	return &Recorder[S]{clock: clock, start: clock()}
}

// Record appends value stamped with the elapsed time since start. Stamps
// never go backwards even if the clock does.
func (r *Recorder[S]) Record(value S) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := r.clock().Sub(r.start)
	if at < r.last {
		at = r.last
	}
	r.last = at
	r.events = append(r.events, temporal.TraceEvent[S]{Timestamp: at, Value: value})
	return at
}

func (r *Recorder[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Snapshot returns the trace recorded so far. Later records do not affect it.
func (r *Recorder[S]) Snapshot() *temporal.Trace[S] {
	r.mu.Lock()
	defer r.mu.Unlock()
	// stamps are clamped on the way in, so this cannot fail
	return temporal.MustTrace(r.events...)
}

// Reset drops all events and restarts the clock.
func (r *Recorder[S]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.last = 0
	r.start = r.clock()
}
