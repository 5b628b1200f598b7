// Package cost implements the field × operation cost table of §4.5: a
// lookup with fallback chain (per-field override, then a global default,
// then zero) used to price every enode during extraction.
package cost

import (
	"fieldeq/internal/ast"
	"fieldeq/internal/egraph"
	"fieldeq/internal/fieldtype"
)

// opName is the printed operator key used in cost tables: "+" "-" "*"
// "*const" "inv" "sq" "const" "symbol".
type opName = string

const (
	opAdd    opName = "+"
	opSub    opName = "-"
	opMul    opName = "*"
	opMulC   opName = "*const"
	opInv    opName = "inv"
	opSq     opName = "sq"
	opConst  opName = "const"
	opSymbol opName = "symbol"
)

// Model is CostModel = {costs, default_costs} (§4.5). Both maps may be
// nil; lookups fall through to zero.
type Model struct {
	Costs        map[string]map[string]uint64
	DefaultCosts map[string]uint64
}

// Get resolves the cost of op in field, following costs[field][op] ->
// default_costs[op] -> 0.
func (m Model) Get(field, op string) uint64 {
	if m.Costs != nil {
		if byOp, ok := m.Costs[field]; ok {
			if v, ok := byOp[op]; ok {
				return v
			}
		}
	}
	if m.DefaultCosts != nil {
		if v, ok := m.DefaultCosts[op]; ok {
			return v
		}
	}
	return 0
}

// NodeCost prices a single enode: its result FieldType is read off its
// class's analysis data (g.Data(classID), computed by egraph.Rebuild
// via fieldtype.Analysis) rather than recomputed per-enode via
// Analysis.Make(n). §4.5 says "the enode's result FieldType"; the two
// coincide for every class the rewrite rules ever produce, since
// Analysis.Join never widens a class past what any of its own member
// enodes independently compute (congruent enodes in one class always
// carry the same field type). '*' is priced as "*const" whenever
// either operand's class contains a Constant enode (§4.5, §9 — the
// fixed resolution of the Mul cost-key open question).
func NodeCost(g *egraph.EGraph[fieldtype.FieldType], classID int, n egraph.ENode, m Model) uint64 {
	field := g.Data(classID).String()

	switch {
	case n.IsConst():
		return m.Get(field, opConst)
	case n.IsSymbol():
		return m.Get(field, opSymbol)
	}

	op := opKey(g, n)
	return m.Get(field, op)
}

func opKey(g *egraph.EGraph[fieldtype.FieldType], n egraph.ENode) opName {
	switch n.Op {
	case ast.Add:
		return opAdd
	case ast.Sub:
		return opSub
	case ast.Mul:
		if g.ContainsConst(n.Children[0]) || g.ContainsConst(n.Children[1]) {
			return opMulC
		}
		return opMul
	case ast.Inv:
		return opInv
	case ast.Sq:
		return opSq
	default:
		// pair/fst/snd never survive main saturation (eliminated by
		// pair_rules, §4.4) but price them at zero if they do, rather
		// than panicking mid-extraction.
		return ""
	}
}
