package rewrite

import "fieldeq/internal/egraph"

// Subst binds pattern variable names to e-class ids (§4.4 "substitution").
type Subst map[string]int

func (s Subst) clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// matchClass returns every substitution extending base under which p
// matches some enode in classID's e-class.
func matchClass[D any](g *egraph.EGraph[D], p Pattern, classID int, base Subst) []Subst {
	root := g.Find(classID)

	switch pat := p.(type) {
	case Var:
		if bound, ok := base[pat.Name]; ok {
			if g.Find(bound) == root {
				return []Subst{base}
			}
			return nil
		}
		next := base.clone()
		next[pat.Name] = root
		return []Subst{next}

	case ConstPat:
		for _, n := range g.Nodes(root) {
			if n.IsConst() && n.Value == pat.Value {
				return []Subst{base}
			}
		}
		return nil

	case SymPat:
		for _, n := range g.Nodes(root) {
			if n.IsSymbol() && n.Symbol == pat.Name {
				return []Subst{base}
			}
		}
		return nil

	case OpPat:
		var out []Subst
		for _, n := range g.Nodes(root) {
			if n.IsConst() || n.IsSymbol() || n.Op != pat.Op || len(n.Children) != len(pat.Args) {
				continue
			}
			out = append(out, matchArgs(g, pat.Args, n.Children, base)...)
		}
		return out

	default:
		return nil
	}
}

// matchArgs folds matchClass over a pattern's argument list, threading
// substitutions so the same variable appearing in two argument
// positions is forced to bind to the same class both times.
func matchArgs[D any](g *egraph.EGraph[D], args []Pattern, children []int, base Subst) []Subst {
	substs := []Subst{base}
	for i, arg := range args {
		var next []Subst
		for _, s := range substs {
			next = append(next, matchClass(g, arg, children[i], s)...)
		}
		substs = next
		if len(substs) == 0 {
			return nil
		}
	}
	return substs
}

// instantiate builds p into the e-graph under subst, returning the
// e-class id of the resulting term (§4.4 "instantiate rhs, add
// recursively").
func instantiate[D any](g *egraph.EGraph[D], p Pattern, subst Subst) int {
	switch pat := p.(type) {
	case Var:
		return g.Find(subst[pat.Name])
	case ConstPat:
		return g.Add(egraph.Const(pat.Value))
	case SymPat:
		return g.Add(egraph.Symbol(pat.Name))
	case OpPat:
		children := make([]int, len(pat.Args))
		for i, a := range pat.Args {
			children[i] = instantiate(g, a, subst)
		}
		return g.Add(egraph.ENode{Op: pat.Op, Children: children})
	default:
		panic("rewrite: unhandled pattern type in instantiate")
	}
}
