package parser

import "github.com/alecthomas/participle/v2/lexer"

// exprNode is the participle grammar for one S-expression: a number, a
// bare symbol, or a parenthesized operator application. The grammar
// itself doesn't know about operator arities — buildExpr enforces those
// against ast.Arity once parsing succeeds (§2 "arity is fixed per
// operator").
type exprNode struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Number *string   `  @Number`
	Symbol *string   `| @Ident`
	List   *exprList `| @@`
}

type exprList struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string      `"(" @(Operator|Ident)`
	Args   []*exprNode `@@+ ")"`
}
