package temporal

// Builders expect non-nil operands; a nil child formula is a programming
// error and makes Evaluate panic.

// State builds an atomic proposition for a condition that holds over a
// stretch of time ("loading", "connected"). It panics when pred is nil.
func State[S any](name string, pred func(S) bool) Formula[S] {
	return newProp(name, pred)
}

// Event builds an atomic proposition for a momentary occurrence ("request
// sent"). It evaluates exactly like State; the two only read differently.
// It panics when pred is nil.
func Event[S any](name string, pred func(S) bool) Formula[S] {
	return newProp(name, pred)
}

func newProp[S any](name string, pred func(S) bool) Prop[S] {
	if pred == nil {
		panic("temporal: proposition " + name + " has a nil predicate")
	}
	return Prop[S]{Name: name, Pred: pred}
}

func True[S any]() Formula[S] {
	return Prop[S]{Name: "true", Pred: func(S) bool { return true }}
}

func False[S any]() Formula[S] {
	return Prop[S]{Name: "false", Pred: func(S) bool { return false }}
}

func Not[S any](f Formula[S]) Formula[S]        { return NotOp[S]{F: f} }
func And[S any](l, r Formula[S]) Formula[S]     { return AndOp[S]{L: l, R: r} }
func Or[S any](l, r Formula[S]) Formula[S]      { return OrOp[S]{L: l, R: r} }
func Implies[S any](l, r Formula[S]) Formula[S] { return ImpliesOp[S]{L: l, R: r} }

// AllOf folds fs left to right with And. It returns True for no formulas.
func AllOf[S any](fs ...Formula[S]) Formula[S] {
	if len(fs) == 0 {
		return True[S]()
	}
	out := fs[0]
	for _, f := range fs[1:] {
		out = And(out, f)
	}
	return out
}

// AnyOf folds fs left to right with Or. It returns False for no formulas.
func AnyOf[S any](fs ...Formula[S]) Formula[S] {
	if len(fs) == 0 {
		return False[S]()
	}
	out := fs[0]
	for _, f := range fs[1:] {
		out = Or(out, f)
	}
	return out
}

func Next[S any](f Formula[S]) Formula[S]         { return NextOp[S]{F: f} }
func Always[S any](f Formula[S]) Formula[S]       { return AlwaysOp[S]{F: f} }
func Eventually[S any](f Formula[S]) Formula[S]   { return EventuallyOp[S]{F: f} }
func Until[S any](l, r Formula[S]) Formula[S]     { return UntilOp[S]{L: l, R: r} }
func WeakUntil[S any](l, r Formula[S]) Formula[S] { return WeakUntilOp[S]{L: l, R: r} }
func Release[S any](l, r Formula[S]) Formula[S]   { return ReleaseOp[S]{L: l, R: r} }

func EventuallyWithin[S any](f Formula[S], within Interval) Formula[S] {
	return EventuallyWithinOp[S]{F: f, Within: within}
}

func AlwaysWithin[S any](f Formula[S], within Interval) Formula[S] {
	return AlwaysWithinOp[S]{F: f, Within: within}
}

func UntilWithin[S any](l, r Formula[S], within Interval) Formula[S] {
	return UntilWithinOp[S]{L: l, R: r, Within: within}
}

func ReleaseWithin[S any](l, r Formula[S], within Interval) Formula[S] {
	return ReleaseWithinOp[S]{L: l, R: r, Within: within}
}

func WeakUntilWithin[S any](l, r Formula[S], within Interval) Formula[S] {
	return WeakUntilWithinOp[S]{L: l, R: r, Within: within}
}
