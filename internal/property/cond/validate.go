package cond

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

var allowedBinary = map[string]struct{}{
	"==": {}, "!=": {}, "<": {}, "<=": {}, ">": {}, ">=": {},
	"&&": {}, "||": {}, "and": {}, "or": {},
	"in": {}, "not in": {}, "contains": {}, "startsWith": {}, "endsWith": {}, "matches": {},
}

var allowedUnary = map[string]struct{}{
	"!": {}, "not": {}, "-": {},
}

// Validate checks that cond only compares state variables and literals:
// no arithmetic, no function calls, no member access. It returns the names
// of the variables cond reads, sorted.
func Validate(cond string) ([]string, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return nil, nil
	}

	tree, err := parser.Parse(cond)
	if err != nil {
		return nil, fmt.Errorf("parse condition: %w", err)
	}

	v := &validator{vars: map[string]struct{}{}}
	ast.Walk(&tree.Node, v)
	if v.err != nil {
		return nil, v.err
	}

	vars := make([]string, 0, len(v.vars))
	for name := range v.vars {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars, nil
}

type validator struct {
	vars map[string]struct{}
	err  error
}

func (v *validator) Visit(node *ast.Node) {
	if v.err != nil {
		return
	}

	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		v.vars[n.Value] = struct{}{}
	case *ast.BinaryNode:
		if _, ok := allowedBinary[n.Operator]; !ok {
			v.err = fmt.Errorf("operator %q is not allowed", n.Operator)
		}
	case *ast.UnaryNode:
		if _, ok := allowedUnary[n.Operator]; !ok {
			v.err = fmt.Errorf("operator %q is not allowed", n.Operator)
		}
	case *ast.CallNode:
		v.err = fmt.Errorf("function calls are not allowed")
	case *ast.BuiltinNode:
		v.err = fmt.Errorf("function calls are not allowed (found %s(...))", n.Name)
	case *ast.MemberNode, *ast.ChainNode:
		v.err = fmt.Errorf("member access is not allowed")
	case *ast.IntegerNode, *ast.FloatNode, *ast.StringNode, *ast.BoolNode, *ast.NilNode,
		*ast.ArrayNode, *ast.ConstantNode:
	default:
		v.err = fmt.Errorf("unsupported expression %T", n)
	}
}
