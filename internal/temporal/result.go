package temporal

import (
	"fmt"
	"strings"
	"time"
)

// Result is the verdict of one evaluation. On failure Reason explains which
// sub-formula failed, and Index/Timestamp locate it in the trace when known.
type Result struct {
	Holds     bool           `json:"holds"`
	Reason    string         `json:"reason,omitempty"`
	Index     *int           `json:"index,omitempty"`
	Timestamp *time.Duration `json:"timestamp,omitempty"`
}

func (r Result) String() string {
	var b strings.Builder
	if r.Holds {
		b.WriteString("holds")
	} else {
		b.WriteString("fails")
	}
	if r.Index != nil {
		fmt.Fprintf(&b, " at index %d", *r.Index)
	}
	if r.Timestamp != nil {
		fmt.Fprintf(&b, " (%s)", *r.Timestamp)
	}
	if r.Reason != "" {
		b.WriteString(": ")
		b.WriteString(r.Reason)
	}
	return b.String()
}

func success() Result {
	return Result{Holds: true}
}

func failure(reason string) Result {
	return Result{Reason: reason}
}

// failureAt locates a failure at trace position k.
func failureAt[S any](t *Trace[S], k int, reason string) Result {
	ts := t.At(k).Timestamp
	idx := k
	return Result{Reason: reason, Index: &idx, Timestamp: &ts}
}

func successAt[S any](t *Trace[S], k int) Result {
	ts := t.At(k).Timestamp
	idx := k
	return Result{Holds: true, Index: &idx, Timestamp: &ts}
}

// locate fills a missing position on r with trace position k.
func locate[S any](t *Trace[S], k int, r Result) Result {
	if r.Index == nil && k < t.Len() {
		idx := k
		ts := t.At(k).Timestamp
		r.Index = &idx
		r.Timestamp = &ts
	}
	return r
}
