package property

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/awmpietro/tracecheck/internal/temporal"
)

const dotGraphName = "formula"

// RenderDOT draws the formula tree as a DOT digraph: one node per operator or
// proposition, edges from each operator to its operands in order. Timed
// operators are dashed.
func RenderDOT[S any](f temporal.Formula[S]) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(dotGraphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	next := 0
	if _, err := addFormulaNode(g, f, &next); err != nil {
		return "", fmt.Errorf("failed to render DOT: %w", err)
	}
	return g.String(), nil
}

func addFormulaNode[S any](g *gographviz.Graph, f temporal.Formula[S], next *int) (string, error) {
	id := fmt.Sprintf("n%d", *next)
	*next++

	shape := "ellipse"
	if f.Kind() == temporal.KindProp {
		shape = "box"
	}
	attrs := map[string]string{
		"label": strconv.Quote(temporal.Label(f)),
		"shape": shape,
	}
	if f.Kind().Timed() {
		attrs["style"] = "dashed"
	}
	if err := g.AddNode(dotGraphName, id, attrs); err != nil {
		return "", err
	}

	operands := f.Operands()
	for i, op := range operands {
		child, err := addFormulaNode(g, op, next)
		if err != nil {
			return "", err
		}
		var edgeAttrs map[string]string
		if len(operands) == 2 {
			edgeAttrs = map[string]string{"label": strconv.Quote([]string{"lhs", "rhs"}[i])}
		}
		if err := g.AddEdge(id, child, true, edgeAttrs); err != nil {
			return "", err
		}
	}
	return id, nil
}
