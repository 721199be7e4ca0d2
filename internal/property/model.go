package property

import (
	"fmt"
	"math"
	"time"

	"github.com/awmpietro/tracecheck/internal/temporal"
)

// State is one observed snapshot of the system under test.
type State = map[string]any

// Document is a property expressed as data: a formula tree whose leaves are
// conditions over State.
type Document struct {
	Name    string `json:"name,omitempty" yaml:"name"`
	Formula *Node  `json:"formula" yaml:"formula"`
}

type Node struct {
	Op     string  `json:"op" yaml:"op"`
	Cond   string  `json:"cond,omitempty" yaml:"cond"`
	Name   string  `json:"name,omitempty" yaml:"name"`
	Args   []Node  `json:"args,omitempty" yaml:"args"`
	Within *Window `json:"within,omitempty" yaml:"within"`
}

// Window is a relative time interval in milliseconds. A nil ToMS leaves the
// interval unbounded above.
type Window struct {
	FromMS int64  `json:"from_ms" yaml:"from_ms"`
	ToMS   *int64 `json:"to_ms,omitempty" yaml:"to_ms"`
}

// Sample is a State observed AtMS milliseconds into the recording.
type Sample struct {
	AtMS  int64 `json:"at_ms" yaml:"at_ms"`
	State State `json:"state" yaml:"state"`
}

// Property is a compiled Document.
type Property struct {
	Name    string
	Formula temporal.Formula[State]
	// Vars are the state variables read by any condition, sorted.
	Vars []string
}

// MaxMS is the largest millisecond value that converts to a time.Duration
// without overflow.
const MaxMS = math.MaxInt64 / int64(time.Millisecond)

// msDuration converts a millisecond field named by path into a Duration.
func msDuration(path string, ms int64) (time.Duration, error) {
	if ms < 0 {
		return 0, fmt.Errorf("%s %d is negative", path, ms)
	}
	if ms > MaxMS {
		return 0, fmt.Errorf("%s %d exceeds the maximum of %d", path, ms, MaxMS)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
