package property

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/awmpietro/tracecheck/internal/property/cond"
	"github.com/awmpietro/tracecheck/internal/temporal"
)

type Compiler struct{}

func NewCompiler() *Compiler { return &Compiler{} }

// Compile turns doc into a Property. Errors name the offending node by its
// path, e.g. `formula.args[1]`.
func (c *Compiler) Compile(doc Document) (*Property, error) {
	if doc.Formula == nil {
		return nil, fmt.Errorf("property formula is required")
	}

	vars := map[string]struct{}{}
	f, err := compileNode(*doc.Formula, "formula", vars)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}
	sort.Strings(names)

	return &Property{Name: doc.Name, Formula: f, Vars: names}, nil
}

func compileNode(n Node, path string, vars map[string]struct{}) (temporal.Formula[State], error) {
	op := strings.ToLower(strings.TrimSpace(n.Op))

	if n.Within != nil && !timedOps[op] {
		return nil, fmt.Errorf("%s: op %q does not take a time window", path, n.Op)
	}

	switch op {
	case "state", "event":
		if len(n.Args) != 0 {
			return nil, fmt.Errorf("%s: %s takes no args", path, op)
		}
		if strings.TrimSpace(n.Cond) == "" {
			return nil, fmt.Errorf("%s: %s requires cond", path, op)
		}
		compiled, err := cond.Compile(n.Cond)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid cond %q: %w", path, n.Cond, err)
		}
		for _, v := range compiled.Vars {
			vars[v] = struct{}{}
		}
		name := n.Name
		if name == "" {
			name = compiled.Source
		}
		if op == "event" {
			return temporal.Event(name, compiled.Predicate()), nil
		}
		return temporal.State(name, compiled.Predicate()), nil

	case "true", "false":
		if len(n.Args) != 0 {
			return nil, fmt.Errorf("%s: %s takes no args", path, op)
		}
		if op == "true" {
			return temporal.True[State](), nil
		}
		return temporal.False[State](), nil
	}

	args, err := compileArgs(n, path, vars)
	if err != nil {
		return nil, err
	}

	switch op {
	case "and", "or":
		if len(args) < 2 {
			return nil, fmt.Errorf("%s: %s expects at least 2 args, got %d", path, op, len(args))
		}
		if op == "and" {
			return temporal.AllOf(args...), nil
		}
		return temporal.AnyOf(args...), nil
	}

	want, ok := arity[op]
	if !ok {
		return nil, fmt.Errorf("%s: unknown op %q", path, n.Op)
	}
	if len(args) != want {
		return nil, fmt.Errorf("%s: %s expects %d args, got %d", path, op, want, len(args))
	}

	if n.Within != nil {
		iv, err := n.Within.interval()
		if err != nil {
			return nil, fmt.Errorf("%s: invalid within: %w", path, err)
		}
		switch op {
		case "always":
			return temporal.AlwaysWithin(args[0], iv), nil
		case "eventually":
			return temporal.EventuallyWithin(args[0], iv), nil
		case "until":
			return temporal.UntilWithin(args[0], args[1], iv), nil
		case "weak_until":
			return temporal.WeakUntilWithin(args[0], args[1], iv), nil
		case "release":
			return temporal.ReleaseWithin(args[0], args[1], iv), nil
		}
	}

	switch op {
	case "not":
		return temporal.Not(args[0]), nil
	case "implies":
		return temporal.Implies(args[0], args[1]), nil
	case "next":
		return temporal.Next(args[0]), nil
	case "always":
		return temporal.Always(args[0]), nil
	case "eventually":
		return temporal.Eventually(args[0]), nil
	case "until":
		return temporal.Until(args[0], args[1]), nil
	case "weak_until":
		return temporal.WeakUntil(args[0], args[1]), nil
	default: // release
		return temporal.Release(args[0], args[1]), nil
	}
}

var arity = map[string]int{
	"not":        1,
	"implies":    2,
	"next":       1,
	"always":     1,
	"eventually": 1,
	"until":      2,
	"weak_until": 2,
	"release":    2,
}

var timedOps = map[string]bool{
	"always":     true,
	"eventually": true,
	"until":      true,
	"weak_until": true,
	"release":    true,
}

func compileArgs(n Node, path string, vars map[string]struct{}) ([]temporal.Formula[State], error) {
	out := make([]temporal.Formula[State], 0, len(n.Args))
	for i, arg := range n.Args {
		f, err := compileNode(arg, fmt.Sprintf("%s.args[%d]", path, i), vars)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (w Window) interval() (temporal.Interval, error) {
	lower, err := msDuration("from_ms", w.FromMS)
	if err != nil {
		return temporal.Interval{}, err
	}
	if w.ToMS == nil {
		return temporal.AtLeast(lower), nil
	}
	if *w.ToMS > MaxMS {
		return temporal.Interval{}, fmt.Errorf("to_ms %d exceeds the maximum of %d", *w.ToMS, MaxMS)
	}
	return temporal.NewInterval(lower, time.Duration(*w.ToMS)*time.Millisecond)
}
