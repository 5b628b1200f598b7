package rewrite

import (
	"testing"
	"time"

	"fieldeq/internal/ast"
	"fieldeq/internal/egraph"
	"fieldeq/internal/fieldtype"

	"github.com/stretchr/testify/assert"
)

func newGraph(symbols map[string]fieldtype.FieldType) *egraph.EGraph[fieldtype.FieldType] {
	return egraph.New[fieldtype.FieldType](&fieldtype.Analysis{SymbolTypes: symbols})
}

func TestMatchSimpleAdd(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp, "b": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	b := g.Add(egraph.Symbol("b"))
	sum := g.Add(egraph.ENode{Op: ast.Add, Children: []int{a, b}})

	rule := Rule[fieldtype.FieldType]{Name: "comm-add", LHS: Op(ast.Add, V("x"), V("y")), RHS: Op(ast.Add, V("y"), V("x"))}
	matches := rule.match(g)
	assert.Len(t, matches, 1)
	assert.Equal(t, g.Find(sum), matches[0].root)
	assert.Equal(t, g.Find(a), g.Find(matches[0].subst["x"]))
	assert.Equal(t, g.Find(b), g.Find(matches[0].subst["y"]))
}

func TestRepeatedVariableRequiresSameClass(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp, "b": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	b := g.Add(egraph.Symbol("b"))
	g.Add(egraph.ENode{Op: ast.Mul, Children: []int{a, b}})
	selfMul := g.Add(egraph.ENode{Op: ast.Mul, Children: []int{a, a}})

	rule := Rule[fieldtype.FieldType]{Name: "mul-same", LHS: Op(ast.Mul, V("x"), V("x")), RHS: Op(ast.Sq, V("x"))}
	matches := rule.match(g)
	assert.Len(t, matches, 1)
	assert.Equal(t, g.Find(selfMul), matches[0].root)
}

func TestSqToMulSaturation(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	sq := g.Add(egraph.ENode{Op: ast.Sq, Children: []int{a}})
	g.Rebuild()

	sat := NewSaturator(MainRules[fieldtype.FieldType](), Limits{MaxIterations: 10}, nil)
	reason := sat.Run(g)
	assert.Equal(t, StopSaturated, reason)

	mulClass, ok := g.Lookup(egraph.ENode{Op: ast.Mul, Children: []int{g.Find(a), g.Find(a)}})
	assert.True(t, ok)
	assert.Equal(t, g.Find(sq), mulClass)
}

func TestCancelAddSub(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp, "b": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	b := g.Add(egraph.Symbol("b"))
	addab := g.Add(egraph.ENode{Op: ast.Add, Children: []int{a, b}})
	expr := g.Add(egraph.ENode{Op: ast.Sub, Children: []int{addab, b}})
	g.Rebuild()

	sat := NewSaturator(MainRules[fieldtype.FieldType](), Limits{MaxIterations: 10}, nil)
	sat.Run(g)

	assert.Equal(t, g.Find(a), g.Find(expr))
}

func TestDistributivityGuardedByIsNotSame(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp, "b": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	b := g.Add(egraph.Symbol("b"))

	sumSame := g.Add(egraph.ENode{Op: ast.Add, Children: []int{b, b}})
	mulSame := g.Add(egraph.ENode{Op: ast.Mul, Children: []int{a, sumSame}})

	rule := MainRules[fieldtype.FieldType]()[9] // distrib-mul-add-left
	assert.Equal(t, "distrib-mul-add-left", rule.Name)
	matches := rule.match(g)
	for _, m := range matches {
		assert.NotEqual(t, g.Find(mulSame), m.root, "self-distributed match must be excluded by is_not_same")
	}
}

func TestSaturatorStopsAtIterationCap(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp, "b": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	b := g.Add(egraph.Symbol("b"))
	g.Add(egraph.ENode{Op: ast.Add, Children: []int{a, b}})
	g.Rebuild()

	sat := NewSaturator(MainRules[fieldtype.FieldType](), Limits{MaxIterations: 1}, nil)
	assert.Equal(t, StopIterations, sat.Run(g))
}

func TestSaturatorStopsAtTimeout(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp, "b": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	b := g.Add(egraph.Symbol("b"))
	g.Add(egraph.ENode{Op: ast.Add, Children: []int{a, b}})
	g.Rebuild()

	sat := NewSaturator(MainRules[fieldtype.FieldType](), Limits{Timeout: time.Nanosecond}, nil)
	assert.Equal(t, StopTimeout, sat.Run(g))
}

func TestPairRulesEliminateFstPair(t *testing.T) {
	g := newGraph(map[string]fieldtype.FieldType{"a": fieldtype.Fp, "b": fieldtype.Fp})
	a := g.Add(egraph.Symbol("a"))
	b := g.Add(egraph.Symbol("b"))
	pr := g.Add(egraph.ENode{Op: ast.Pair, Children: []int{a, b}})
	fst := g.Add(egraph.ENode{Op: ast.Fst, Children: []int{pr}})
	g.Rebuild()

	sat := NewSaturator(PairRules[fieldtype.FieldType](), Limits{MaxIterations: 10}, nil)
	sat.Run(g)

	assert.Equal(t, g.Find(a), g.Find(fst))
}
