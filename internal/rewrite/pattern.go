// Package rewrite implements the rule-based rewrite engine of §4.4: a
// left-to-right tree matcher over e-classes, side-conditioned rule
// application, and a phased saturation loop with resource caps.
package rewrite

import "fieldeq/internal/ast"

// Pattern is a rewrite rule's lhs or rhs: a tree with variable holes
// ("?x" style, here just a bare name), literal constants, literal
// symbols, or an operator applied to sub-patterns.
type Pattern interface {
	isPattern()
}

// Var is a pattern hole. The same name appearing twice within one rule
// must bind to the same e-class (checked, not assumed, by the matcher).
type Var struct{ Name string }

// ConstPat matches (or instantiates) a constant leaf of exactly Value.
type ConstPat struct{ Value float64 }

// SymPat matches (or instantiates) a literal symbol leaf, e.g. the fixed
// non-residue "xi" introduced by pair-mul.
type SymPat struct{ Name string }

// OpPat matches (or instantiates) an operator applied to sub-patterns.
type OpPat struct {
	Op   ast.Op
	Args []Pattern
}

func (Var) isPattern()     {}
func (ConstPat) isPattern()  {}
func (SymPat) isPattern()   {}
func (OpPat) isPattern()    {}

// V is shorthand for a variable pattern.
func V(name string) Pattern { return Var{Name: name} }

// C is shorthand for a constant pattern.
func C(v float64) Pattern { return ConstPat{Value: v} }

// S is shorthand for a literal-symbol pattern.
func S(name string) Pattern { return SymPat{Name: name} }

// Op is shorthand for an operator pattern.
func Op(op ast.Op, args ...Pattern) Pattern { return OpPat{Op: op, Args: args} }
