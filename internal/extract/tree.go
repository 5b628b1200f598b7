// Package extract implements the two extraction procedures of §4.6/§4.7:
// a bottom-up dynamic program optimal for tree cost, and two DAG-aware
// selectors (a greedy heuristic and, in package ilpsolver, an exact
// integer program) optimal — or admissible — for DAG cost.
package extract

import (
	"math"

	"fieldeq/internal/bridge"
)

// Selection maps each e-class key to the node id chosen to represent it.
type Selection map[string]bridge.NodeID

// Tree runs the bottom-up fixpoint of §4.6: repeatedly relax each
// class's best cost using every member enode's cost plus its children's
// current best costs, until nothing improves. Leaves (no children)
// settle to their own cost on the first pass.
func Tree(g *bridge.Graph) Selection {
	best := make(map[string]float64, len(g.Classes))
	choice := make(Selection, len(g.Classes))
	for k := range g.Classes {
		best[k] = math.Inf(1)
	}

	for changed := true; changed; {
		changed = false
		for classKey, nodeIDs := range g.Classes {
			for _, nid := range nodeIDs {
				n := g.Nodes[nid]
				total, ready := n.Cost, true
				for _, c := range n.Children {
					cb, known := best[g.NodeClass(c)]
					if !known || math.IsInf(cb, 1) {
						ready = false
						break
					}
					total += cb
				}
				if !ready {
					continue
				}
				if total < best[classKey] {
					best[classKey] = total
					choice[classKey] = nid
					changed = true
				}
			}
		}
	}
	return choice
}
