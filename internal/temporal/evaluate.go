package temporal

import (
	"fmt"
	"time"
)

// DefaultStep is the spacing Check gives to consecutive states.
const DefaultStep = time.Millisecond

// Evaluate decides whether f holds on the suffix of t starting at start.
// start may equal t.Len(), which denotes the empty suffix. A negative start
// is reported as a failing Result. Evaluate never mutates t or f and is safe
// to call concurrently.
func Evaluate[S any](t *Trace[S], f Formula[S], start int) Result {
	if start < 0 {
		return failure(fmt.Sprintf("invalid start index %d", start))
	}
	if t == nil {
		t = &Trace[S]{}
	}
	return evaluator[S]{t: t}.eval(f, start)
}

// Check evaluates f from the first of states, stamped DefaultStep apart.
// Timed operators are accepted and see the k-th state at k milliseconds, so
// an interval bound of n ms spans n steps. Unlike Evaluate, an empty input
// always fails, whatever the formula.
func Check[S any](states []S, f Formula[S]) Result {
	if len(states) == 0 {
		return failure("empty trace")
	}
	return Evaluate(FromStates(DefaultStep, states...), f, 0)
}

type evaluator[S any] struct {
	t *Trace[S]
}

func (e evaluator[S]) eval(f Formula[S], i int) Result {
	n := e.t.Len()

	switch node := f.(type) {
	case Prop[S]:
		if i >= n {
			return failure(fmt.Sprintf("proposition %s evaluated past trace end", node))
		}
		if node.Pred(e.t.At(i).Value) {
			return success()
		}
		return failureAt(e.t, i, fmt.Sprintf("%s did not hold", node))

	case NotOp[S]:
		r := e.eval(node.F, i)
		if !r.Holds {
			return success()
		}
		return locate(e.t, i, Result{
			Reason:    fmt.Sprintf("negated formula held: %s", node.F),
			Index:     r.Index,
			Timestamp: r.Timestamp,
		})

	case AndOp[S]:
		if l := e.eval(node.L, i); !l.Holds {
			return l
		}
		return e.eval(node.R, i)

	case OrOp[S]:
		l := e.eval(node.L, i)
		if l.Holds {
			return l
		}
		r := e.eval(node.R, i)
		if r.Holds {
			return r
		}
		return locate(e.t, i, failure(fmt.Sprintf("neither operand held: %s; %s", l.Reason, r.Reason)))

	case ImpliesOp[S]:
		if l := e.eval(node.L, i); !l.Holds {
			return success()
		}
		return e.eval(node.R, i)

	case NextOp[S]:
		if i+1 >= n {
			return locate(e.t, i, failure("Next evaluated past trace end"))
		}
		return e.eval(node.F, i+1)

	case AlwaysOp[S]:
		for k := i; k < n; k++ {
			if r := e.eval(node.F, k); !r.Holds {
				return failureAt(e.t, k, r.Reason)
			}
		}
		return success()

	case EventuallyOp[S]:
		if i >= n {
			return failure(fmt.Sprintf("%s evaluated on empty trace suffix", node))
		}
		for k := i; k < n; k++ {
			if e.eval(node.F, k).Holds {
				return successAt(e.t, k)
			}
		}
		return failure(fmt.Sprintf("operand never held: %s", node.F))

	case UntilOp[S]:
		if i >= n {
			return failure(fmt.Sprintf("%s evaluated on empty trace suffix", node))
		}
		// Reaching k means L held on every j in [i, k).
		for k := i; k < n; k++ {
			if e.eval(node.R, k).Holds {
				return successAt(e.t, k)
			}
			if l := e.eval(node.L, k); !l.Holds {
				return failureAt(e.t, k, fmt.Sprintf("left operand failed before right operand held: %s", l.Reason))
			}
		}
		return failure(fmt.Sprintf("right operand never held: %s", node.R))

	case WeakUntilOp[S]:
		return e.eval(Or(Always(node.L), Until(node.L, node.R)), i)

	case ReleaseOp[S]:
		return e.eval(Not(Until(Not(node.L), Not(node.R))), i)

	case EventuallyWithinOp[S], AlwaysWithinOp[S], UntilWithinOp[S], ReleaseWithinOp[S], WeakUntilWithinOp[S]:
		return e.evalTimed(f, i)
	}

	panic(fmt.Sprintf("temporal: unsupported formula node %T", f))
}
