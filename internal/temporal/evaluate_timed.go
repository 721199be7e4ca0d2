package temporal

import "fmt"

// evalTimed handles the interval operators. Offsets are measured from the
// timestamp at i, so a nested timed operator re-anchors at its own position.
func (e evaluator[S]) evalTimed(f Formula[S], i int) Result {
	n := e.t.Len()

	switch node := f.(type) {
	case EventuallyWithinOp[S]:
		if i >= n {
			return failure(fmt.Sprintf("%s evaluated on empty trace suffix", node))
		}
		t0 := e.t.At(i).Timestamp
		for k := i; k < n; k++ {
			off := e.t.offset(k, t0)
			if node.Within.Past(off) {
				break
			}
			if node.Within.Contains(off) && e.eval(node.F, k).Holds {
				return successAt(e.t, k)
			}
		}
		return failure(fmt.Sprintf("operand never held within %s: %s", node.Within, node.F))

	case AlwaysWithinOp[S]:
		if i >= n {
			return success()
		}
		t0 := e.t.At(i).Timestamp
		for k := i; k < n; k++ {
			off := e.t.offset(k, t0)
			if node.Within.Past(off) {
				break
			}
			if !node.Within.Contains(off) {
				continue
			}
			if r := e.eval(node.F, k); !r.Holds {
				return failureAt(e.t, k, r.Reason)
			}
		}
		return success()

	case UntilWithinOp[S]:
		if i >= n {
			return failure(fmt.Sprintf("%s evaluated on empty trace suffix", node))
		}
		t0 := e.t.At(i).Timestamp
		// L is checked at every position, inside the interval or not, so
		// reaching k means L held on all of [i, k).
		for k := i; k < n; k++ {
			off := e.t.offset(k, t0)
			if node.Within.Past(off) {
				break
			}
			if node.Within.Contains(off) && e.eval(node.R, k).Holds {
				return successAt(e.t, k)
			}
			if l := e.eval(node.L, k); !l.Holds {
				return failureAt(e.t, k, fmt.Sprintf("left operand failed before right operand held: %s", l.Reason))
			}
		}
		return failure(fmt.Sprintf("right operand never held within %s while left held: %s", node.Within, node.R))

	case ReleaseWithinOp[S]:
		return e.eval(Not(UntilWithin(Not(node.L), Not(node.R), node.Within)), i)

	case WeakUntilWithinOp[S]:
		return e.eval(Or(AlwaysWithin(node.L, node.Within), UntilWithin(node.L, node.R, node.Within)), i)
	}

	panic(fmt.Sprintf("temporal: unsupported timed formula node %T", f))
}
