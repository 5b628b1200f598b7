package parser

import (
	"testing"

	"fieldeq/internal/ast"
	ferrors "fieldeq/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestParseConstant(t *testing.T) {
	e, err := ParseSource("t", "42")
	assert.NoError(t, err)
	c, ok := e.(*ast.ConstExpr)
	assert.True(t, ok)
	assert.Equal(t, 42.0, c.Value)
}

func TestParseNegativeConstant(t *testing.T) {
	e, err := ParseSource("t", "-7")
	assert.NoError(t, err)
	c, ok := e.(*ast.ConstExpr)
	assert.True(t, ok)
	assert.Equal(t, -7.0, c.Value)
}

func TestParseSymbol(t *testing.T) {
	e, err := ParseSource("t", "x")
	assert.NoError(t, err)
	s, ok := e.(*ast.SymbolExpr)
	assert.True(t, ok)
	assert.Equal(t, "x", s.Name)
}

func TestParseBinaryOperators(t *testing.T) {
	for _, src := range []string{"(+ a b)", "(- a b)", "(* a b)", "(pair a b)"} {
		e, err := ParseSource("t", src)
		assert.NoError(t, err, src)
		b, ok := e.(*ast.BinaryExpr)
		assert.True(t, ok, src)
		assert.Equal(t, src, b.String())
	}
}

func TestParseUnaryOperators(t *testing.T) {
	for _, src := range []string{"(sq a)", "(inv a)", "(fst a)", "(snd a)"} {
		e, err := ParseSource("t", src)
		assert.NoError(t, err, src)
		u, ok := e.(*ast.UnaryExpr)
		assert.True(t, ok, src)
		assert.Equal(t, src, u.String())
	}
}

func TestParseNested(t *testing.T) {
	e, err := ParseSource("t", "(+ a (* b b))")
	assert.NoError(t, err)
	assert.Equal(t, "(+ a (* b b))", e.String())
}

func TestParseUnknownOperator(t *testing.T) {
	_, err := ParseSource("t", "(sqr a)")
	assert.Error(t, err)
	ce, ok := err.(ferrors.CompilerError)
	assert.True(t, ok)
	assert.Equal(t, ferrors.ErrorUnknownOperator, ce.Code)
}

func TestParseArityMismatch(t *testing.T) {
	_, err := ParseSource("t", "(+ a b c)")
	assert.Error(t, err)
	ce, ok := err.(ferrors.CompilerError)
	assert.True(t, ok)
	assert.Equal(t, ferrors.ErrorArityMismatch, ce.Code)
}

func TestParseMalformedSyntax(t *testing.T) {
	_, err := ParseSource("t", "(+ a b")
	assert.Error(t, err)
	ce, ok := err.(ferrors.CompilerError)
	assert.True(t, ok)
	assert.Equal(t, ferrors.ErrorParse, ce.Code)
}
