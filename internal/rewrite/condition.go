package rewrite

import "fieldeq/internal/egraph"

// Condition is a rewrite rule's side-condition (§4.4), evaluated against
// the e-graph and a candidate substitution.
type Condition[D comparable] func(g *egraph.EGraph[D], s Subst) bool

// IsNotSame is is_not_same("?a","?b"): find(a) != find(b). Guards
// distributivity rules against generative self-matches.
func IsNotSame[D comparable](a, b string) Condition[D] {
	return func(g *egraph.EGraph[D], s Subst) bool {
		return g.Find(s[a]) != g.Find(s[b])
	}
}

// IsSameField is is_same_field("?a","?b"): data(find(a)) == data(find(b)).
// A true result only ever over-approximates real field equality (§9
// "Clamping"), so rules guarded by it stay sound even when degrees were
// clamped for cost estimation.
func IsSameField[D comparable](a, b string) Condition[D] {
	return func(g *egraph.EGraph[D], s Subst) bool {
		return g.Data(g.Find(s[a])) == g.Data(g.Find(s[b]))
	}
}

func evalConditions[D comparable](g *egraph.EGraph[D], conds []Condition[D], s Subst) bool {
	for _, c := range conds {
		if !c(g, s) {
			return false
		}
	}
	return true
}
