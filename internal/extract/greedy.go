package extract

import (
	"math"
	"sort"

	"fieldeq/internal/bridge"
)

// uniqueQueue is a FIFO queue that silently drops re-insertions of an
// element already queued (ported from the original implementation's
// UniqueQueue, credited there to @Bastacyclop).
type uniqueQueue struct {
	set   map[bridge.NodeID]bool
	queue []bridge.NodeID
}

func newUniqueQueue() *uniqueQueue {
	return &uniqueQueue{set: make(map[bridge.NodeID]bool)}
}

func (q *uniqueQueue) insert(id bridge.NodeID) {
	if !q.set[id] {
		q.set[id] = true
		q.queue = append(q.queue, id)
	}
}

func (q *uniqueQueue) extend(ids []bridge.NodeID) {
	for _, id := range ids {
		q.insert(id)
	}
}

func (q *uniqueQueue) pop() (bridge.NodeID, bool) {
	if len(q.queue) == 0 {
		return "", false
	}
	id := q.queue[0]
	q.queue = q.queue[1:]
	delete(q.set, id)
	return id, true
}

// costSet tracks, for one candidate enode, the cost of every distinct
// class reachable from it (so classes shared between children are
// credited only once) plus the node's aggregate total.
type costSet struct {
	costs  map[string]float64
	total  float64
	choice bridge.NodeID
}

// calculateCostSet mirrors calculate_cost_set in the original greedy DAG
// extractor: it unions the cost-sets of a node's (deduplicated) child
// classes, adds the node itself, and shortcuts to infinity whenever the
// node's own class reappears among its dependencies (a cycle) or a
// single-child node can already be proven costlier than the best known
// total.
func calculateCostSet(g *bridge.Graph, nodeID bridge.NodeID, costs map[string]costSet, bestCost float64) costSet {
	n := g.Nodes[nodeID]

	if len(n.Children) == 0 {
		return costSet{costs: map[string]float64{n.Class: n.Cost}, total: n.Cost, choice: nodeID}
	}

	childClasses := uniqueSortedClasses(g, n.Children)
	first := costs[childClasses[0]]

	containsSelf := false
	for _, c := range childClasses {
		if c == n.Class {
			containsSelf = true
			break
		}
	}
	if containsSelf || (len(childClasses) == 1 && n.Cost+first.total > bestCost) {
		return costSet{total: math.Inf(1), choice: nodeID}
	}

	biggest := childClasses[0]
	for _, c := range childClasses {
		if len(costs[c].costs) > len(costs[biggest].costs) {
			biggest = c
		}
	}

	result := make(map[string]float64, len(costs[biggest].costs))
	for k, v := range costs[biggest].costs {
		result[k] = v
	}
	for _, c := range childClasses {
		if c == biggest {
			continue
		}
		for k, v := range costs[c].costs {
			result[k] = v
		}
	}

	_, alreadyHasSelf := result[n.Class]
	result[n.Class] = n.Cost

	total := math.Inf(1)
	if !alreadyHasSelf {
		total = 0
		for _, v := range result {
			total += v
		}
	}

	return costSet{costs: result, total: total, choice: nodeID}
}

func uniqueSortedClasses(g *bridge.Graph, children []bridge.NodeID) []string {
	seen := make(map[string]bool, len(children))
	var out []string
	for _, c := range children {
		cl := g.NodeClass(c)
		if !seen[cl] {
			seen[cl] = true
			out = append(out, cl)
		}
	}
	sort.Strings(out)
	return out
}

// Greedy is FasterGreedyDagExtractor.extract: a worklist propagation
// seeded from leaves, relaxing each class's cost-set as its dependencies
// settle, until the queue drains. Admissible but not optimal (§4.6).
func Greedy(g *bridge.Graph) Selection {
	parents := make(map[string][]bridge.NodeID, len(g.Classes))
	for k := range g.Classes {
		parents[k] = nil
	}

	pending := newUniqueQueue()
	for _, ids := range g.Classes {
		for _, nid := range ids {
			n := g.Nodes[nid]
			for _, c := range n.Children {
				cl := g.NodeClass(c)
				parents[cl] = append(parents[cl], nid)
			}
			if len(n.Children) == 0 {
				pending.insert(nid)
			}
		}
	}

	costs := make(map[string]costSet, len(g.Classes))
	for {
		nodeID, ok := pending.pop()
		if !ok {
			break
		}
		n := g.Nodes[nodeID]
		classKey := n.Class

		allChildrenKnown := true
		for _, c := range n.Children {
			if _, ok := costs[g.NodeClass(c)]; !ok {
				allChildrenKnown = false
				break
			}
		}
		if !allChildrenKnown {
			continue
		}

		prevCost := math.Inf(1)
		if cs, ok := costs[classKey]; ok {
			prevCost = cs.total
		}

		cs := calculateCostSet(g, nodeID, costs, prevCost)
		if cs.total < prevCost {
			costs[classKey] = cs
			pending.extend(parents[classKey])
		}
	}

	sel := make(Selection, len(costs))
	for classKey, cs := range costs {
		sel[classKey] = cs.choice
	}
	return sel
}
