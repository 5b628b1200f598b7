package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2"

	"fieldeq/internal/ast"
	ferrors "fieldeq/internal/errors"
)

var build = participle.MustBuild[exprNode](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseSource parses one S-expression (§2) into an ast.Expr. filename is
// used only for diagnostics.
func ParseSource(filename, source string) (ast.Expr, error) {
	node, err := build.ParseString(filename, source)
	if err != nil {
		return nil, translateParseError(err)
	}
	return buildExpr(node)
}

// translateParseError turns participle's lexer/grammar error into the
// front end's own CompilerError so every failure mode — lexing,
// grammar, or arity — reports through the same caret diagnostic.
func translateParseError(err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return ferrors.ParseError(err.Error(), ast.Position{Line: 1, Column: 1})
	}
	pos := pe.Position()
	return ferrors.ParseError(pe.Message(), ast.Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset})
}

// buildExpr converts the participle parse tree into an ast.Expr,
// checking operator validity and arity (§2, §7.1) along the way.
func buildExpr(n *exprNode) (ast.Expr, error) {
	pos := ast.Position{Line: n.Pos.Line, Column: n.Pos.Column, Offset: n.Pos.Offset}
	endPos := ast.Position{Line: n.EndPos.Line, Column: n.EndPos.Column, Offset: n.EndPos.Offset}

	switch {
	case n.Number != nil:
		v, err := strconv.ParseFloat(*n.Number, 64)
		if err != nil {
			return nil, ferrors.ParseError("malformed numeric literal '"+*n.Number+"'", pos)
		}
		return &ast.ConstExpr{Pos: pos, EndPos: endPos, Value: v}, nil

	case n.Symbol != nil:
		return &ast.SymbolExpr{Pos: pos, EndPos: endPos, Name: *n.Symbol}, nil

	case n.List != nil:
		return buildList(n.List)

	default:
		return nil, ferrors.ParseError("empty expression", pos)
	}
}

func buildList(l *exprList) (ast.Expr, error) {
	pos := ast.Position{Line: l.Pos.Line, Column: l.Pos.Column, Offset: l.Pos.Offset}
	endPos := ast.Position{Line: l.EndPos.Line, Column: l.EndPos.Column, Offset: l.EndPos.Offset}

	op := ast.Op(l.Op)
	arity := ast.Arity(op)
	if arity == -1 {
		return nil, ferrors.UnknownOperatorError(l.Op, pos)
	}
	if len(l.Args) != arity {
		return nil, ferrors.ArityMismatchError(l.Op, arity, len(l.Args), pos)
	}

	children := make([]ast.Expr, len(l.Args))
	for i, a := range l.Args {
		child, err := buildExpr(a)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	switch arity {
	case 1:
		return &ast.UnaryExpr{Pos: pos, EndPos: endPos, Op: op, Value: children[0]}, nil
	case 2:
		return &ast.BinaryExpr{Pos: pos, EndPos: endPos, Op: op, Left: children[0], Right: children[1]}, nil
	default:
		return nil, ferrors.ParseError("unsupported arity for operator '"+l.Op+"'", pos)
	}
}
