package fieldtype

import (
	"fieldeq/internal/ast"
	"fieldeq/internal/egraph"
)

// Analysis implements egraph.Analysis[FieldType]: the e-class semilattice
// of §4.3 that gates rewrites (IsSameField) and costs enodes (§4.5).
type Analysis struct {
	// SymbolTypes is the user-provided typing assignment for free
	// symbols (symbol_types.json, §6); symbols absent from it default
	// to Fp.
	SymbolTypes map[string]FieldType
	// MaxDegree clamps every join and doubled pair degree (§3, §9). Zero
	// means unclamped.
	MaxDegree int
}

// Make computes the result FieldType of a freshly-inserted enode,
// exactly per §4.3's per-operator rules.
func (a *Analysis) Make(g *egraph.EGraph[FieldType], n egraph.ENode) FieldType {
	switch {
	case n.IsConst():
		return Fp
	case n.IsSymbol():
		if t, ok := a.SymbolTypes[n.Symbol]; ok {
			return t
		}
		return Fp
	}

	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul:
		da, db := g.Data(n.Children[0]), g.Data(n.Children[1])
		return Join(da, db, a.MaxDegree)

	case ast.Inv, ast.Sq:
		return g.Data(n.Children[0])

	case ast.Pair:
		da, db := g.Data(n.Children[0]), g.Data(n.Children[1])
		if da.Degree == db.Degree {
			doubled := FpExt(da.Degree * 2)
			if a.MaxDegree > 0 && doubled.Degree > a.MaxDegree {
				return Join(da, db, a.MaxDegree)
			}
			return doubled
		}
		return Join(da, db, a.MaxDegree)

	case ast.Fst, ast.Snd:
		dx := g.Data(n.Children[0])
		if dx.Degree > 1 {
			return FieldType{Degree: dx.Degree / 2}
		}
		return Fp

	default:
		return Fp
	}
}

// Merge joins old and new, reporting whether the class's data changed.
func (a *Analysis) Merge(old, new FieldType) (FieldType, bool) {
	joined := Join(old, new, a.MaxDegree)
	return joined, joined != old
}
