package extract

import (
	"testing"

	"fieldeq/internal/bridge"

	"github.com/stretchr/testify/assert"
)

// buildDiamond builds a small DAG-shaped graph: root "r" has two
// children "a" and "b", which both point at shared leaf "s" — the
// canonical case where tree cost double-counts and DAG cost doesn't.
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

func TestTreeExtractionPicksOnlyOptions(t *testing.T) {
	g := buildDiamond()
	sel := Tree(g)
	assert.Equal(t, "r.0", sel["r"])
	assert.Equal(t, "a.0", sel["a"])
	assert.Equal(t, "b.0", sel["b"])
	assert.Equal(t, "s.0", sel["s"])
}

func TestTreeCostDoubleCountsSharedLeaf(t *testing.T) {
	g := buildDiamond()
	sel := Tree(g)
	// r(2) + a(5+s(1)) + b(5+s(1)) = 2+6+6 = 14
	assert.Equal(t, 14.0, TreeCost(g, sel, g.RootEClasses))
}

func TestDagCostCountsSharedLeafOnce(t *testing.T) {
	g := buildDiamond()
	sel := Tree(g)
	// r(2) + a(5) + b(5) + s(1) = 13
	assert.Equal(t, 13.0, DagCost(g, sel, g.RootEClasses))
}

func TestDagCostNeverExceedsTreeCost(t *testing.T) {
	g := buildDiamond()
	sel := Tree(g)
	assert.LessOrEqual(t, DagCost(g, sel, g.RootEClasses), TreeCost(g, sel, g.RootEClasses))
}

func TestGreedyMatchesTreeOnSharedDAG(t *testing.T) {
	g := buildDiamond()
	sel := Greedy(g)
	assert.Equal(t, "r.0", sel["r"])
	assert.Equal(t, DagCost(g, Tree(g), g.RootEClasses), DagCost(g, sel, g.RootEClasses))
}

func TestFindCyclesOnAcyclicSelection(t *testing.T) {
	g := buildDiamond()
	sel := Tree(g)
	assert.Empty(t, FindCycles(g, sel, g.RootEClasses))
}

func TestFindCyclesDetectsSelfReference(t *testing.T) {
	g := &bridge.Graph{
		Nodes:   map[string]*bridge.Node{},
		Classes: map[string][]string{},
	}
	g.Nodes["a.0"] = &bridge.Node{ID: "a.0", Op: "+", Children: []string{"b.0"}, Class: "a", Cost: 1}
	g.Nodes["b.0"] = &bridge.Node{ID: "b.0", Op: "+", Children: []string{"a.0"}, Class: "b", Cost: 1}
	g.Classes["a"] = []string{"a.0"}
	g.Classes["b"] = []string{"b.0"}

	sel := Selection{"a": "a.0", "b": "b.0"}
	cycles := FindCycles(g, sel, []string{"a"})
	assert.NotEmpty(t, cycles)
}

func TestNodeSumCostTreatsUnknownClassAsInfinite(t *testing.T) {
	g := buildDiamond()
	n := g.Nodes["r.0"]
	cost := NodeSumCost(g, n, map[string]float64{"a": 5})
	assert.True(t, cost > 1e300)
}
