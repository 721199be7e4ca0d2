// Package cond compiles the conditions used as atomic propositions. A
// condition is an expr-lang boolean expression over the variables of one
// observed state, e.g. `status=="loading" && retries<3`.
package cond

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compiled is a validated condition ready to run against many states.
type Compiled struct {
	Source string
	// Vars are the state variables the condition reads, sorted.
	Vars    []string
	program *vm.Program
}

// Compile validates and compiles cond. An empty condition always holds.
func Compile(cond string) (*Compiled, error) {
	cond = strings.TrimSpace(cond)
	vars, err := Validate(cond)
	if err != nil {
		return nil, err
	}
	c := &Compiled{Source: cond, Vars: vars}
	if cond == "" {
		return c, nil
	}

	program, err := expr.Compile(cond, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition: %w", err)
	}
	c.program = program
	return c, nil
}

// Eval runs the condition against one state.
func (c *Compiled) Eval(state map[string]any) (bool, error) {
	if c.program == nil {
		return true, nil
	}
	if state == nil {
		state = map[string]any{}
	}

	out, err := expr.Run(c.program, state)
	if err != nil {
		if missing := c.missing(state); len(missing) > 0 {
			return false, &MissingVariablesError{Vars: missing, Err: err}
		}
		return false, err
	}

	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition must evaluate to bool (got %T)", out)
	}
	return b, nil
}

// Predicate adapts c to a proposition predicate. A state on which the
// condition cannot be evaluated does not satisfy it.
func (c *Compiled) Predicate() func(map[string]any) bool {
	return func(state map[string]any) bool {
		ok, err := c.Eval(state)
		return err == nil && ok
	}
}

func (c *Compiled) missing(state map[string]any) []string {
	var out []string
	for _, name := range c.Vars {
		if _, ok := state[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// MissingVariablesError reports a condition that failed because the state
// lacks variables it reads.
type MissingVariablesError struct {
	Vars []string
	Err  error
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("missing variables [%s]: %v", strings.Join(e.Vars, ", "), e.Err)
}

func (e *MissingVariablesError) Unwrap() error {
	return e.Err
}
