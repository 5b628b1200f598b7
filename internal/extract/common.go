package extract

import (
	"math"

	"fieldeq/internal/bridge"
)

type dfsStatus int

const (
	statusDoing dfsStatus = iota
	statusDone
)

// FindCycles performs the tri-color DFS of the original extractor's
// cycle_dfs over a selection, exposed as its own function (rather than
// folded into a result-validation assertion) so both extractors and
// tests can call it directly (§4.6 "Cycles during saturation").
func FindCycles(g *bridge.Graph, sel Selection, roots []string) []string {
	status := make(map[string]dfsStatus)
	var cycles []string
	for _, root := range roots {
		cycleDFS(g, sel, root, status, &cycles)
	}
	return cycles
}

func cycleDFS(g *bridge.Graph, sel Selection, classKey string, status map[string]dfsStatus, cycles *[]string) {
	if s, seen := status[classKey]; seen {
		if s == statusDoing {
			*cycles = append(*cycles, classKey)
		}
		return
	}
	status[classKey] = statusDoing
	if nid, ok := sel[classKey]; ok {
		for _, child := range g.Nodes[nid].Children {
			cycleDFS(g, sel, g.NodeClass(child), status, cycles)
		}
	}
	status[classKey] = statusDone
}

// TreeCost re-sums cost along a recursive walk, memoized by node id, so
// a subterm reachable through multiple paths is paid for at every
// occurrence (§4.6 "tree_cost").
func TreeCost(g *bridge.Graph, sel Selection, roots []string) float64 {
	memo := make(map[bridge.NodeID]float64)
	total := 0.0
	for _, root := range roots {
		total += treeCostRec(g, sel, sel[root], memo)
	}
	return total
}

func treeCostRec(g *bridge.Graph, sel Selection, nodeID bridge.NodeID, memo map[bridge.NodeID]float64) float64 {
	if c, ok := memo[nodeID]; ok {
		return c
	}
	n := g.Nodes[nodeID]
	total := n.Cost
	for _, child := range n.Children {
		total += treeCostRec(g, sel, sel[g.NodeClass(child)], memo)
	}
	memo[nodeID] = total
	return total
}

// DagCost sums each selected node's cost once per e-class reachable
// from roots, crediting shared subterms a single time (§4.6 "dag_cost").
// Each class is visited at most once, so a cyclic selection still
// terminates but is not reported; callers should run FindCycles first
// when acyclicity isn't already guaranteed.
func DagCost(g *bridge.Graph, sel Selection, roots []string) float64 {
	visited := make(map[string]bool)
	var todo []string
	todo = append(todo, roots...)
	total := 0.0
	for len(todo) > 0 {
		cid := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if visited[cid] {
			continue
		}
		visited[cid] = true
		nid := sel[cid]
		n := g.Nodes[nid]
		total += n.Cost
		for _, child := range n.Children {
			todo = append(todo, g.NodeClass(child))
		}
	}
	return total
}

// NodeSumCost prices a single node plus the already-known best cost of
// each of its children's classes, treating an unknown child class as
// infinitely expensive rather than panicking (§4.6 "node_sum_cost").
func NodeSumCost(g *bridge.Graph, node *bridge.Node, classCost map[string]float64) float64 {
	total := node.Cost
	for _, child := range node.Children {
		if c, ok := classCost[g.NodeClass(child)]; ok {
			total += c
		} else {
			total += math.Inf(1)
		}
	}
	return total
}
