package rewrite

import "fieldeq/internal/ast"

// xi is the fixed non-residue symbol pair-mul introduces when it
// multiplies two paired (extension-field) elements componentwise (§4.4).
const xi = "xi"

// PairRules returns the pre-simplification rule set: structural
// identities that eliminate pair/fst/snd by pushing arithmetic through
// them (§4.4 "Pre-simplification rules").
func PairRules[D comparable]() []Rule[D] {
	return []Rule[D]{
		{
			Name: "fst-pair",
			LHS:  Op(ast.Fst, Op(ast.Pair, V("a"), V("b"))),
			RHS:  V("a"),
		},
		{
			Name: "snd-pair",
			LHS:  Op(ast.Snd, Op(ast.Pair, V("a"), V("b"))),
			RHS:  V("b"),
		},
		{
			Name: "pair-add",
			LHS:  Op(ast.Add, Op(ast.Pair, V("a"), V("b")), Op(ast.Pair, V("c"), V("d"))),
			RHS:  Op(ast.Pair, Op(ast.Add, V("a"), V("c")), Op(ast.Add, V("b"), V("d"))),
		},
		{
			Name: "pair-sub",
			LHS:  Op(ast.Sub, Op(ast.Pair, V("a"), V("b")), Op(ast.Pair, V("c"), V("d"))),
			RHS:  Op(ast.Pair, Op(ast.Sub, V("a"), V("c")), Op(ast.Sub, V("b"), V("d"))),
		},
		{
			Name:       "pair-mul-const",
			LHS:        Op(ast.Mul, Op(ast.Pair, V("a"), V("b")), V("c")),
			RHS:        Op(ast.Pair, Op(ast.Mul, V("a"), V("c")), Op(ast.Mul, V("b"), V("c"))),
			Conditions: []Condition[D]{IsSameField[D]("a", "b")},
		},
		{
			Name: "pair-sq",
			LHS:  Op(ast.Sq, Op(ast.Pair, V("a"), V("b"))),
			RHS: Op(ast.Pair,
				Op(ast.Add, Op(ast.Sq, V("a")), Op(ast.Mul, S(xi), Op(ast.Sq, V("b")))),
				Op(ast.Mul, C(2), Op(ast.Mul, V("a"), V("b"))),
			),
		},
		{
			Name: "pair-mul",
			LHS:  Op(ast.Mul, Op(ast.Pair, V("a"), V("b")), Op(ast.Pair, V("c"), V("d"))),
			RHS: Op(ast.Pair,
				Op(ast.Add, Op(ast.Mul, V("a"), V("c")), Op(ast.Mul, S(xi), Op(ast.Mul, V("b"), V("d")))),
				Op(ast.Add, Op(ast.Mul, V("a"), V("d")), Op(ast.Mul, V("b"), V("c"))),
			),
		},
	}
}

// MainRules returns the main algebraic rule set, applied during the
// primary saturation phase after pair elimination (§4.4 "Main rules").
func MainRules[D comparable]() []Rule[D] {
	return []Rule[D]{
		{
			Name: "comm-add",
			LHS:  Op(ast.Add, V("a"), V("b")),
			RHS:  Op(ast.Add, V("b"), V("a")),
		},
		{
			Name: "comm-mul",
			LHS:  Op(ast.Mul, V("a"), V("b")),
			RHS:  Op(ast.Mul, V("b"), V("a")),
		},
		{
			Name: "assoc-add",
			LHS:  Op(ast.Add, Op(ast.Add, V("a"), V("b")), V("c")),
			RHS:  Op(ast.Add, V("a"), Op(ast.Add, V("b"), V("c"))),
		},
		{
			Name: "assoc-mul",
			LHS:  Op(ast.Mul, Op(ast.Mul, V("a"), V("b")), V("c")),
			RHS:  Op(ast.Mul, V("a"), Op(ast.Mul, V("b"), V("c"))),
		},
		{
			Name: "sq-to-mul",
			LHS:  Op(ast.Sq, V("x")),
			RHS:  Op(ast.Mul, V("x"), V("x")),
		},
		{
			Name: "mul-same-to-sq",
			LHS:  Op(ast.Mul, V("x"), V("x")),
			RHS:  Op(ast.Sq, V("x")),
		},
		{
			Name: "cancel-add-sub",
			LHS:  Op(ast.Sub, Op(ast.Add, V("a"), V("b")), V("b")),
			RHS:  V("a"),
		},
		{
			Name: "double-to-mul2",
			LHS:  Op(ast.Add, V("a"), V("a")),
			RHS:  Op(ast.Mul, C(2), V("a")),
		},
		{
			Name: "self-sub-zero",
			LHS:  Op(ast.Sub, V("a"), V("a")),
			RHS:  C(0),
		},
		{
			Name:       "distrib-mul-add-left",
			LHS:        Op(ast.Mul, V("a"), Op(ast.Add, V("b"), V("c"))),
			RHS:        Op(ast.Add, Op(ast.Mul, V("a"), V("b")), Op(ast.Mul, V("a"), V("c"))),
			Conditions: []Condition[D]{IsNotSame[D]("b", "c")},
		},
		{
			Name:       "distrib-mul-sub-left",
			LHS:        Op(ast.Mul, V("a"), Op(ast.Sub, V("b"), V("c"))),
			RHS:        Op(ast.Sub, Op(ast.Mul, V("a"), V("b")), Op(ast.Mul, V("a"), V("c"))),
			Conditions: []Condition[D]{IsNotSame[D]("b", "c")},
		},
		{
			Name:       "distrib-mul-add-right",
			LHS:        Op(ast.Mul, Op(ast.Add, V("a"), V("b")), V("c")),
			RHS:        Op(ast.Add, Op(ast.Mul, V("a"), V("c")), Op(ast.Mul, V("b"), V("c"))),
			Conditions: []Condition[D]{IsNotSame[D]("a", "b")},
		},
		{
			Name:       "distrib-mul-sub-right",
			LHS:        Op(ast.Mul, Op(ast.Sub, V("a"), V("b")), V("c")),
			RHS:        Op(ast.Sub, Op(ast.Mul, V("a"), V("c")), Op(ast.Mul, V("b"), V("c"))),
			Conditions: []Condition[D]{IsNotSame[D]("a", "b")},
		},
		{
			Name: "binomial-expand",
			LHS:  Op(ast.Sq, Op(ast.Add, V("a"), V("b"))),
			RHS: Op(ast.Add,
				Op(ast.Add, Op(ast.Sq, V("a")), Op(ast.Mul, C(2), Op(ast.Mul, V("a"), V("b")))),
				Op(ast.Sq, V("b")),
			),
		},
		{
			Name: "binomial-contract",
			LHS: Op(ast.Add,
				Op(ast.Add, Op(ast.Sq, V("a")), Op(ast.Mul, C(2), Op(ast.Mul, V("a"), V("b")))),
				Op(ast.Sq, V("b")),
			),
			RHS: Op(ast.Sq, Op(ast.Add, V("a"), V("b"))),
		},
		{
			Name: "two-ab-reformulation",
			LHS:  Op(ast.Mul, C(2), Op(ast.Mul, V("a"), V("b"))),
			RHS: Op(ast.Sub,
				Op(ast.Sub, Op(ast.Sq, Op(ast.Add, V("a"), V("b"))), Op(ast.Sq, V("a"))),
				Op(ast.Sq, V("b")),
			),
		},
		{
			Name: "karatsuba",
			LHS:  Op(ast.Add, Op(ast.Mul, V("a"), V("b")), Op(ast.Mul, V("c"), V("d"))),
			RHS: Op(ast.Sub,
				Op(ast.Sub,
					Op(ast.Mul, Op(ast.Add, V("a"), V("c")), Op(ast.Add, V("d"), V("b"))),
					Op(ast.Mul, V("a"), V("d")),
				),
				Op(ast.Mul, V("c"), V("b")),
			),
			Conditions: []Condition[D]{
				IsNotSame[D]("a", "b"), IsNotSame[D]("a", "c"), IsNotSame[D]("a", "d"),
				IsNotSame[D]("b", "c"), IsNotSame[D]("b", "d"), IsNotSame[D]("c", "d"),
				IsSameField[D]("a", "c"), IsSameField[D]("b", "d"),
			},
		},
	}
}
