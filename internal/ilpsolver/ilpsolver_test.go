package ilpsolver

import (
	"testing"
	"time"

	"fieldeq/internal/bridge"
	"fieldeq/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDiamond() *bridge.Graph {
	g := &bridge.Graph{
		Nodes:   map[string]*bridge.Node{},
		Classes: map[string][]string{},
	}
	add := func(id, class, op string, cost float64, children ...string) {
		g.Nodes[id] = &bridge.Node{ID: id, Op: op, Children: children, Class: class, Cost: cost}
		g.Classes[class] = append(g.Classes[class], id)
	}
	add("s.0", "s", "symbol", 1)
	add("a.0", "a", "sq", 5, "s.0")
	add("b.0", "b", "sq", 5, "s.0")
	add("r.0", "r", "+", 2, "a.0", "b.0")
	g.RootEClasses = []string{"r"}
	return g
}

func TestSolveMatchesGreedyOnAcyclicDiamond(t *testing.T) {
	g := buildDiamond()
	res, err := Solve(g, Limits{})
	require.NoError(t, err)
	assert.Equal(t, "optimal", res.StopReason)
	assert.Equal(t, 13.0, res.Cost)
	assert.Equal(t, "r.0", res.Selection["r"])
}

func TestSolvePicksCheaperAlternativeToBreakACycle(t *testing.T) {
	// Two classes alias each other's cheapest enode, forcing a cycle;
	// each class also carries a slightly pricier acyclic alternative
	// that the solver must fall back to.
	g := &bridge.Graph{
		Nodes:   map[string]*bridge.Node{},
		Classes: map[string][]string{},
	}
	add := func(id, class, op string, cost float64, children ...string) {
		g.Nodes[id] = &bridge.Node{ID: id, Op: op, Children: children, Class: class, Cost: cost}
		g.Classes[class] = append(g.Classes[class], id)
	}
	add("leaf.0", "leaf", "symbol", 1)
	add("a.0", "a", "+", 1, "b.0") // cheap but cyclic via b
	add("a.1", "a", "+", 4, "leaf.0")
	add("b.0", "b", "+", 1, "a.0") // cheap but cyclic via a
	add("b.1", "b", "+", 4, "leaf.0")
	g.RootEClasses = []string{"a"}

	res, err := Solve(g, Limits{Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Empty(t, extract.FindCycles(g, res.Selection, g.RootEClasses))
	assert.Equal(t, "a.1", res.Selection["a"])
}

func TestSolveReturnsInfeasibleWhenNoAcyclicSelectionExists(t *testing.T) {
	g := &bridge.Graph{
		Nodes:   map[string]*bridge.Node{},
		Classes: map[string][]string{},
	}
	g.Nodes["a.0"] = &bridge.Node{ID: "a.0", Op: "+", Children: []string{"b.0"}, Class: "a", Cost: 1}
	g.Nodes["b.0"] = &bridge.Node{ID: "b.0", Op: "+", Children: []string{"a.0"}, Class: "b", Cost: 1}
	g.Classes["a"] = []string{"a.0"}
	g.Classes["b"] = []string{"b.0"}
	g.RootEClasses = []string{"a"}

	_, err := Solve(g, Limits{Timeout: time.Second})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveRespectsExploredCapAndReportsIncumbent(t *testing.T) {
	g := buildDiamond()
	// With a near-zero exploration budget and an already-acyclic cheapest
	// assignment, Solve never needs to branch at all.
	res, err := Solve(g, Limits{MaxExplored: 1})
	require.NoError(t, err)
	assert.Equal(t, "optimal", res.StopReason)
}
