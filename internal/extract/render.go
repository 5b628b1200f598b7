package extract

import (
	"fmt"

	"fieldeq/internal/bridge"
)

// Render walks a selection from rootClass and prints the chosen enodes
// back out as an S-expression, the form §6's stdout contract prints for
// "Tree: Optimized expr" / "DAG: Optimized expr".
func Render(g *bridge.Graph, sel Selection, rootClass string) string {
	nid, ok := sel[rootClass]
	if !ok {
		return "()"
	}
	return renderNode(g, sel, g.Nodes[nid])
}

func renderNode(g *bridge.Graph, sel Selection, n *bridge.Node) string {
	switch n.Op {
	case "const":
		return formatConstant(n.Value)
	case "symbol":
		return n.Symbol
	}

	args := make([]string, len(n.Children))
	for i, c := range n.Children {
		childClass := g.NodeClass(c)
		childID, ok := sel[childClass]
		if !ok {
			childID = c
		}
		args[i] = renderNode(g, sel, g.Nodes[childID])
	}

	out := "(" + n.Op
	for _, a := range args {
		out += " " + a
	}
	return out + ")"
}

func formatConstant(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
