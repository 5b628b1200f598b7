package errors

import (
	"strings"
	"testing"

	"fieldeq/internal/ast"
	"github.com/stretchr/testify/assert"
)

func TestErrorReporterParseError(t *testing.T) {
	source := "(+ a (* b b)\n"
	reporter := NewErrorReporter("tests.txt", source)

	err := ParseError("unexpected end of input, expected ')'", ast.Position{Line: 1, Column: 14})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorParse+"]")
	assert.Contains(t, formatted, "unexpected end of input")
	assert.Contains(t, formatted, "tests.txt:1:14")
}

func TestUnknownOperatorError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 2}

	err := UnknownOperatorError("sqr", pos)
	assert.Equal(t, ErrorUnknownOperator, err.Code)
	assert.Contains(t, err.Message, "sqr")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "sq")
}

func TestArityMismatchError(t *testing.T) {
	pos := ast.Position{Line: 2, Column: 1}

	err := ArityMismatchError("sq", 1, 2, pos)
	assert.Equal(t, ErrorArityMismatch, err.Code)
	assert.Contains(t, err.Message, "expects 1 operand(s), found 2")
}

func TestTypeDomainError(t *testing.T) {
	err := TypeDomainError("fp3")
	assert.Equal(t, ErrorTypeDomain, err.Code)
	assert.Contains(t, err.Message, "fp3")
	assert.Contains(t, err.Suggestions[0].Message, "fp2")
}

func TestSolverInfeasibleError(t *testing.T) {
	err := SolverInfeasibleError(4)
	assert.Equal(t, ErrorSolverInfeasible, err.Code)
	assert.Contains(t, err.Message, "test case 4")
	assert.Contains(t, err.Notes[0], "tree-extraction")
}

func TestErrorMarkerCreation(t *testing.T) {
	source := "(+ a b)"
	reporter := NewErrorReporter("tests.txt", source)

	marker := reporter.createMarker(4, 1, Error)
	spaces := strings.Count(marker, " ")
	assert.Equal(t, 3, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 1, carets)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"+", "-", "*", "sq", "inv", "pair", "fst", "snd"}

	similar := findSimilarNames("sqr", candidates)
	assert.Contains(t, similar, "sq")

	similar = findSimilarNames("zzzzzzzzzz", candidates)
	assert.Empty(t, similar)
}

func TestErrorLevels(t *testing.T) {
	source := "x"
	reporter := NewErrorReporter("tests.txt", source)
	pos := ast.Position{Line: 1, Column: 1}

	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	assert.Contains(t, reporter.FormatError(errorErr), "error:")
}
