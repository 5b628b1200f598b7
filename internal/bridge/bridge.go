// Package bridge flattens a live fieldtype e-graph into the serialized,
// cost-annotated representation of §4.8 that the DAG extractors (ILP
// and greedy) consume. Decoupling extraction from the live e-graph lets
// both extractors stay ignorant of union-find/hashcons mechanics.
package bridge

import (
	"fmt"
	"sort"

	"fieldeq/internal/cost"
	"fieldeq/internal/egraph"
	"fieldeq/internal/fieldtype"
)

// NodeID is the flattened id "{class}.{index}" (§4.8).
type NodeID = string

// Node is one flattened enode: its operator, its children's
// *representative* node ids (always the ".0" member of the child
// class — the ILP's class-level choice makes picking among a child
// class's other members a class-level decision, not a node-level one),
// the e-class it belongs to, and its pre-annotated cost.
type Node struct {
	ID       NodeID
	Op       string
	Children []NodeID
	Class    string
	Cost     float64
	Value    float64 // meaningful only when Op == "const"
	Symbol   string  // meaningful only when Op == "symbol"
}

// Graph is the serialized e-graph of §4.8: classes keyed by stringified
// id, each holding its member node ids, plus the root classes.
type Graph struct {
	Nodes        map[NodeID]*Node
	Classes      map[string][]NodeID
	RootEClasses []string
}

// classKey renders a class id in the stringified form §4.8 uses as a map key.
func classKey(id int) string { return fmt.Sprintf("%d", id) }

func repNodeID(classID int) NodeID { return fmt.Sprintf("%d.0", classID) }

// FromEGraph flattens g, annotating every enode's cost per m, with
// roots as the graph's root e-classes.
func FromEGraph(g *egraph.EGraph[fieldtype.FieldType], m cost.Model, roots ...int) *Graph {
	out := &Graph{
		Nodes:   make(map[NodeID]*Node),
		Classes: make(map[string][]NodeID),
	}

	g.Classes(func(classID int) {
		key := classKey(classID)
		nodes := g.Nodes(classID)
		ids := make([]NodeID, len(nodes))
		for i, n := range nodes {
			id := fmt.Sprintf("%d.%d", classID, i)
			ids[i] = id

			children := make([]NodeID, len(n.Children))
			for j, c := range n.Children {
				children[j] = repNodeID(g.Find(c))
			}

			out.Nodes[id] = &Node{
				ID:       id,
				Op:       opString(n),
				Children: children,
				Class:    key,
				Cost:     float64(cost.NodeCost(g, classID, n, m)),
				Value:    n.Value,
				Symbol:   n.Symbol,
			}
		}
		sort.Strings(ids)
		out.Classes[key] = ids
	})

	rootKeys := make([]string, len(roots))
	for i, r := range roots {
		rootKeys[i] = classKey(g.Find(r))
	}
	out.RootEClasses = rootKeys
	return out
}

func opString(n egraph.ENode) string {
	switch {
	case n.IsConst():
		return "const"
	case n.IsSymbol():
		return "symbol"
	default:
		return string(n.Op)
	}
}

// NodeClass returns the e-class (as its string key) the given node id
// belongs to, read from the node's recorded Class field.
func (g *Graph) NodeClass(id NodeID) string {
	return g.Nodes[id].Class
}
