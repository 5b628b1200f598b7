// Package ilpsolver implements the integer-linear-program formulation of
// §4.7 — one variable per enode, minimize total cost, forbid cycles —
// as a branch-and-bound search rather than a general-purpose MILP
// library: no suitable one was available to reuse (see DESIGN.md), so
// this is hand-rolled over the standard library only.
//
// The search threads a running cost that mirrors extract.DagCost's own
// traversal exactly: a class is only ever charged once, the first time
// it is reached from a root, and a class reached while one of its own
// ancestors in the current assignment is still unresolved is rejected
// as a cycle rather than explored further. That makes the running cost
// a true lower bound on any completion, so pruning branches once the
// running cost reaches the best full assignment found so far can never
// discard the true optimum. Candidates within a class are tried
// cheapest-first, so the first complete assignment found is usually
// already optimal or very close to it.
package ilpsolver

import (
	"errors"
	"math"
	"sort"
	"time"

	"fieldeq/internal/bridge"
	"fieldeq/internal/extract"
)

// ErrInfeasible is returned when no acyclic selection could be found
// before the exploration budget or wall-clock deadline was exhausted.
var ErrInfeasible = errors.New("ilpsolver: no acyclic selection exists within budget")

// Limits bounds the branch-and-bound search (§4.7 "bounded wall-clock").
type Limits struct {
	Timeout time.Duration
	// MaxExplored caps the number of genuine branch decisions taken
	// (classes with more than one candidate); classes with only one
	// possible enode never count against it, since there's nothing to
	// decide. 0 means unbounded.
	MaxExplored int
}

// Result is a solved (or best-incumbent) DAG extraction.
type Result struct {
	Selection  extract.Selection
	Cost       float64
	StopReason string // "optimal" | "timeout_incumbent" | "node_cap_incumbent"
}

// Solve finds the minimum-cost acyclic selection of one enode per
// class reachable from g.RootEClasses (§4.7's objective).
func Solve(g *bridge.Graph, limits Limits) (Result, error) {
	s := &searchState{
		g:          g,
		candidates: sortedCandidates(g),
		bestCost:   math.Inf(1),
		deadline:   deadlineFrom(limits.Timeout),
		maxNodes:   limits.MaxExplored,
	}

	s.resolveRoots(g.RootEClasses, 0, make(extract.Selection), make(map[string]int8), 0)

	if !s.found {
		return Result{}, ErrInfeasible
	}

	reason := "optimal"
	switch {
	case s.timedOut:
		reason = "timeout_incumbent"
	case s.capped:
		reason = "node_cap_incumbent"
	}
	return Result{Selection: s.best, Cost: s.bestCost, StopReason: reason}, nil
}

const (
	statusUnseen int8 = iota
	statusDoing
	statusDone
)

type searchState struct {
	g          *bridge.Graph
	candidates map[string][]bridge.NodeID // per class, cheapest first

	best     extract.Selection
	bestCost float64
	found    bool

	explored int
	maxNodes int
	deadline time.Time
	timedOut bool
	capped   bool
}

func (s *searchState) stopped() bool {
	if s.timedOut || s.capped {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.timedOut = true
		return true
	}
	return false
}

// resolveRoots resolves each root class in turn, threading the running
// cost and the shared selection/status maps forward, recording a new
// incumbent whenever a complete acyclic assignment beats it.
func (s *searchState) resolveRoots(roots []string, idx int, sel extract.Selection, status map[string]int8, cost float64) {
	if s.stopped() || cost >= s.bestCost {
		return
	}
	if idx == len(roots) {
		s.best = cloneSelection(sel)
		s.bestCost = cost
		s.found = true
		return
	}
	s.resolveClass(roots[idx], sel, status, cost, func(next float64) {
		s.resolveRoots(roots, idx+1, sel, status, next)
	})
}

// resolveClass tries every candidate enode for classKey, cheapest
// first, backtracking between attempts so every acyclic combination is
// considered rather than stopping at the first that works. A class
// already resolved earlier in this assignment (status done) costs
// nothing further; one still being resolved by an ancestor call
// (status doing) means this path loops back on itself and is rejected.
// cont is invoked once per successful resolution of classKey's own
// subtree, carrying the running cost forward.
func (s *searchState) resolveClass(classKey string, sel extract.Selection, status map[string]int8, cost float64, cont func(float64)) {
	if s.stopped() || cost >= s.bestCost {
		return
	}

	switch status[classKey] {
	case statusDone:
		cont(cost)
		return
	case statusDoing:
		return
	}

	candidates := s.candidates[classKey]
	branching := len(candidates) > 1
	for _, nid := range candidates {
		next := cost + s.g.Nodes[nid].Cost
		if next >= s.bestCost {
			continue
		}
		if branching {
			s.explored++
			if s.maxNodes > 0 && s.explored >= s.maxNodes {
				s.capped = true
			}
		}

		sel[classKey] = nid
		status[classKey] = statusDoing
		s.resolveChildren(s.g.Nodes[nid].Children, 0, sel, status, next, func(after float64) {
			status[classKey] = statusDone
			cont(after)
		})
		status[classKey] = statusUnseen

		if s.stopped() {
			break
		}
	}
	delete(sel, classKey)
	status[classKey] = statusUnseen
}

// resolveChildren resolves children[idx:] in sequence, folding the
// running cost through each, then invokes cont once every child's own
// subtree is resolved.
func (s *searchState) resolveChildren(children []bridge.NodeID, idx int, sel extract.Selection, status map[string]int8, cost float64, cont func(float64)) {
	if s.stopped() || cost >= s.bestCost {
		return
	}
	if idx == len(children) {
		cont(cost)
		return
	}
	childKey := s.g.NodeClass(children[idx])
	s.resolveClass(childKey, sel, status, cost, func(next float64) {
		s.resolveChildren(children, idx+1, sel, status, next, cont)
	})
}

func sortedCandidates(g *bridge.Graph) map[string][]bridge.NodeID {
	out := make(map[string][]bridge.NodeID, len(g.Classes))
	for classKey, ids := range g.Classes {
		sorted := append([]bridge.NodeID(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool {
			return g.Nodes[sorted[i]].Cost < g.Nodes[sorted[j]].Cost
		})
		out[classKey] = sorted
	}
	return out
}

func cloneSelection(s extract.Selection) extract.Selection {
	out := make(extract.Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func deadlineFrom(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}
