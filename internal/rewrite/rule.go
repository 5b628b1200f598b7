package rewrite

import "fieldeq/internal/egraph"

// Rule is one (lhs, rhs, side-conditions) triple (§4.4). Firing a rule
// instantiates rhs under the matched substitution and unions its root
// with the match's root — it never mutates lhs's enode in place.
type Rule[D comparable] struct {
	Name       string
	LHS, RHS   Pattern
	Conditions []Condition[D]
}

// match collects every (subst, matched root) pair for this rule over
// the current e-graph. Matching is read-only over g (§4.4 step 1): no
// Add/Union happens here, so a rule can't see another rule's in-flight
// rewrites within the same saturation iteration.
func (r Rule[D]) match(g *egraph.EGraph[D]) []ruleMatch {
	var matches []ruleMatch
	g.Classes(func(id int) {
		for _, s := range matchClass(g, r.LHS, id, Subst{}) {
			if evalConditions(g, r.Conditions, s) {
				matches = append(matches, ruleMatch{root: id, subst: s})
			}
		}
	})
	return matches
}

type ruleMatch struct {
	root  int
	subst Subst
}

// apply instantiates rhs under subst and unions it with root (§4.4 step
// 2), reporting whether the union actually changed anything.
func (r Rule[D]) apply(g *egraph.EGraph[D], m ruleMatch) bool {
	newRoot := instantiate(g, r.RHS, m.subst)
	_, changed := g.Union(m.root, newRoot)
	return changed
}
