package egraph

import "fieldeq/internal/ast"

// InsertRecExpr inserts a flattened, topologically sorted expression
// bottom-up (§4.1: "inserted bottom-up into the e-graph, allocating one
// e-class per distinct subterm"). It returns the root class id and, for
// callers that need it, the full index-to-class-id mapping.
func InsertRecExpr[D any](g *EGraph[D], r *ast.RecExpr) (root int, classOf []int) {
	classOf = make([]int, len(r.Nodes))
	for i, n := range r.Nodes {
		switch {
		case r.IsConst(i):
			classOf[i] = g.Add(Const(n.Value))
		case r.IsSymbol(i):
			classOf[i] = g.Add(Symbol(n.Symbol))
		default:
			children := make([]int, len(n.Children))
			for j, c := range n.Children {
				children[j] = classOf[c]
			}
			classOf[i] = g.Add(ENode{Op: n.Op, Children: children})
		}
	}
	return classOf[r.Root()], classOf
}
