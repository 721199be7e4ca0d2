package temporal

import "fmt"

// Kind identifies a formula node type.
type Kind int

const (
	KindProp Kind = iota
	KindNot
	KindAnd
	KindOr
	KindImplies
	KindNext
	KindAlways
	KindEventually
	KindUntil
	KindWeakUntil
	KindRelease
	KindEventuallyWithin
	KindAlwaysWithin
	KindUntilWithin
	KindReleaseWithin
	KindWeakUntilWithin
)

var kindSymbols = [...]string{
	KindProp:             "prop",
	KindNot:              "!",
	KindAnd:              "&",
	KindOr:               "|",
	KindImplies:          "->",
	KindNext:             "X",
	KindAlways:           "G",
	KindEventually:       "F",
	KindUntil:            "U",
	KindWeakUntil:        "W",
	KindRelease:          "R",
	KindEventuallyWithin: "F",
	KindAlwaysWithin:     "G",
	KindUntilWithin:      "U",
	KindReleaseWithin:    "R",
	KindWeakUntilWithin:  "W",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindSymbols) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindSymbols[k]
}

// Timed reports whether nodes of this kind carry an Interval.
func (k Kind) Timed() bool {
	return k >= KindEventuallyWithin && k <= KindWeakUntilWithin
}

// Formula is a temporal-logic formula over states of type S. The set of node
// types is closed: only the types in this package implement it.
type Formula[S any] interface {
	Kind() Kind
	// Operands returns the direct sub-formulas, left to right.
	Operands() []Formula[S]
	String() string
	isFormula()
}

// Prop is an atomic proposition, the only leaf.
type Prop[S any] struct {
	Name string
	Pred func(S) bool
}

type NotOp[S any] struct{ F Formula[S] }

type AndOp[S any] struct{ L, R Formula[S] }

type OrOp[S any] struct{ L, R Formula[S] }

type ImpliesOp[S any] struct{ L, R Formula[S] }

type NextOp[S any] struct{ F Formula[S] }

type AlwaysOp[S any] struct{ F Formula[S] }

type EventuallyOp[S any] struct{ F Formula[S] }

type UntilOp[S any] struct{ L, R Formula[S] }

// WeakUntilOp is (L W R) ≡ G(L) | (L U R).
type WeakUntilOp[S any] struct{ L, R Formula[S] }

// ReleaseOp is (L R R) ≡ !(!L U !R).
type ReleaseOp[S any] struct{ L, R Formula[S] }

type EventuallyWithinOp[S any] struct {
	F      Formula[S]
	Within Interval
}

type AlwaysWithinOp[S any] struct {
	F      Formula[S]
	Within Interval
}

type UntilWithinOp[S any] struct {
	L, R   Formula[S]
	Within Interval
}

type ReleaseWithinOp[S any] struct {
	L, R   Formula[S]
	Within Interval
}

type WeakUntilWithinOp[S any] struct {
	L, R   Formula[S]
	Within Interval
}

func (Prop[S]) Kind() Kind               { return KindProp }
func (NotOp[S]) Kind() Kind              { return KindNot }
func (AndOp[S]) Kind() Kind              { return KindAnd }
func (OrOp[S]) Kind() Kind               { return KindOr }
func (ImpliesOp[S]) Kind() Kind          { return KindImplies }
func (NextOp[S]) Kind() Kind             { return KindNext }
func (AlwaysOp[S]) Kind() Kind           { return KindAlways }
func (EventuallyOp[S]) Kind() Kind       { return KindEventually }
func (UntilOp[S]) Kind() Kind            { return KindUntil }
func (WeakUntilOp[S]) Kind() Kind        { return KindWeakUntil }
func (ReleaseOp[S]) Kind() Kind          { return KindRelease }
func (EventuallyWithinOp[S]) Kind() Kind { return KindEventuallyWithin }
func (AlwaysWithinOp[S]) Kind() Kind     { return KindAlwaysWithin }
func (UntilWithinOp[S]) Kind() Kind      { return KindUntilWithin }
func (ReleaseWithinOp[S]) Kind() Kind    { return KindReleaseWithin }
func (WeakUntilWithinOp[S]) Kind() Kind  { return KindWeakUntilWithin }

func (Prop[S]) Operands() []Formula[S]                 { return nil }
func (f NotOp[S]) Operands() []Formula[S]              { return []Formula[S]{f.F} }
func (f AndOp[S]) Operands() []Formula[S]              { return []Formula[S]{f.L, f.R} }
func (f OrOp[S]) Operands() []Formula[S]               { return []Formula[S]{f.L, f.R} }
func (f ImpliesOp[S]) Operands() []Formula[S]          { return []Formula[S]{f.L, f.R} }
func (f NextOp[S]) Operands() []Formula[S]             { return []Formula[S]{f.F} }
func (f AlwaysOp[S]) Operands() []Formula[S]           { return []Formula[S]{f.F} }
func (f EventuallyOp[S]) Operands() []Formula[S]       { return []Formula[S]{f.F} }
func (f UntilOp[S]) Operands() []Formula[S]            { return []Formula[S]{f.L, f.R} }
func (f WeakUntilOp[S]) Operands() []Formula[S]        { return []Formula[S]{f.L, f.R} }
func (f ReleaseOp[S]) Operands() []Formula[S]          { return []Formula[S]{f.L, f.R} }
func (f EventuallyWithinOp[S]) Operands() []Formula[S] { return []Formula[S]{f.F} }
func (f AlwaysWithinOp[S]) Operands() []Formula[S]     { return []Formula[S]{f.F} }
func (f UntilWithinOp[S]) Operands() []Formula[S]      { return []Formula[S]{f.L, f.R} }
func (f ReleaseWithinOp[S]) Operands() []Formula[S]    { return []Formula[S]{f.L, f.R} }
func (f WeakUntilWithinOp[S]) Operands() []Formula[S]  { return []Formula[S]{f.L, f.R} }

func (p Prop[S]) String() string {
	if p.Name == "" {
		return "prop"
	}
	return p.Name
}
func (f NotOp[S]) String() string     { return "!" + f.F.String() }
func (f AndOp[S]) String() string     { return binary(f.L, "&", f.R) }
func (f OrOp[S]) String() string      { return binary(f.L, "|", f.R) }
func (f ImpliesOp[S]) String() string { return binary(f.L, "->", f.R) }
func (f NextOp[S]) String() string    { return "X(" + f.F.String() + ")" }
func (f AlwaysOp[S]) String() string  { return "G(" + f.F.String() + ")" }
func (f EventuallyOp[S]) String() string {
	return "F(" + f.F.String() + ")"
}
func (f UntilOp[S]) String() string     { return binary(f.L, "U", f.R) }
func (f WeakUntilOp[S]) String() string { return binary(f.L, "W", f.R) }
func (f ReleaseOp[S]) String() string   { return binary(f.L, "R", f.R) }
func (f EventuallyWithinOp[S]) String() string {
	return "F" + f.Within.String() + "(" + f.F.String() + ")"
}
func (f AlwaysWithinOp[S]) String() string {
	return "G" + f.Within.String() + "(" + f.F.String() + ")"
}
func (f UntilWithinOp[S]) String() string {
	return binary(f.L, "U"+f.Within.String(), f.R)
}
func (f ReleaseWithinOp[S]) String() string {
	return binary(f.L, "R"+f.Within.String(), f.R)
}
func (f WeakUntilWithinOp[S]) String() string {
	return binary(f.L, "W"+f.Within.String(), f.R)
}

func binary[S any](l Formula[S], op string, r Formula[S]) string {
	return "(" + l.String() + " " + op + " " + r.String() + ")"
}

func (Prop[S]) isFormula()               {}
func (NotOp[S]) isFormula()              {}
func (AndOp[S]) isFormula()              {}
func (OrOp[S]) isFormula()               {}
func (ImpliesOp[S]) isFormula()          {}
func (NextOp[S]) isFormula()             {}
func (AlwaysOp[S]) isFormula()           {}
func (EventuallyOp[S]) isFormula()       {}
func (UntilOp[S]) isFormula()            {}
func (WeakUntilOp[S]) isFormula()        {}
func (ReleaseOp[S]) isFormula()          {}
func (EventuallyWithinOp[S]) isFormula() {}
func (AlwaysWithinOp[S]) isFormula()     {}
func (UntilWithinOp[S]) isFormula()      {}
func (ReleaseWithinOp[S]) isFormula()    {}
func (WeakUntilWithinOp[S]) isFormula()  {}

// Label is the node's own text without its operands, used for diagrams.
func Label[S any](f Formula[S]) string {
	switch n := f.(type) {
	case Prop[S]:
		return n.String()
	case EventuallyWithinOp[S]:
		return "F" + n.Within.String()
	case AlwaysWithinOp[S]:
		return "G" + n.Within.String()
	case UntilWithinOp[S]:
		return "U" + n.Within.String()
	case ReleaseWithinOp[S]:
		return "R" + n.Within.String()
	case WeakUntilWithinOp[S]:
		return "W" + n.Within.String()
	}
	return f.Kind().String()
}

// Depth is the height of the formula tree; a single proposition has depth 1.
func Depth[S any](f Formula[S]) int {
	d := 0
	for _, op := range f.Operands() {
		d = max(d, Depth(op))
	}
	return d + 1
}

// Size counts the nodes of the formula tree.
func Size[S any](f Formula[S]) int {
	n := 1
	for _, op := range f.Operands() {
		n += Size(op)
	}
	return n
}
