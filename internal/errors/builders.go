package errors

import (
	"fmt"
	"sort"
	"strings"

	"fieldeq/internal/ast"
)

// ParseError reports malformed S-expression syntax at pos.
func ParseError(message string, pos ast.Position) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorParse,
		Message:  message,
		Position: pos,
		Length:   1,
	}
}

// UnknownOperatorError reports an operator token that is not one of
// + - * sq inv pair fst snd, suggesting the closest known operator.
func UnknownOperatorError(got string, pos ast.Position) CompilerError {
	known := []string{"+", "-", "*", "sq", "inv", "pair", "fst", "snd"}
	err := CompilerError{
		Level:    Error,
		Code:     ErrorUnknownOperator,
		Message:  fmt.Sprintf("unknown operator '%s'", got),
		Position: pos,
		Length:   len(got),
	}
	if similar := findSimilarNames(got, known); len(similar) > 0 {
		err.Suggestions = append(err.Suggestions, Suggestion{
			Message: fmt.Sprintf("did you mean '%s'?", similar[0]),
		})
	}
	return err
}

// ArityMismatchError reports an operator applied to the wrong number of operands.
func ArityMismatchError(op string, want, got int, pos ast.Position) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorArityMismatch,
		Message:  fmt.Sprintf("'%s' expects %d operand(s), found %d", op, want, got),
		Position: pos,
		Length:   len(op),
	}
}

// TypeDomainError reports a field-name string that isn't "fp" or "fp<n>"
// with n a power of two.
func TypeDomainError(fieldName string) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    ErrorTypeDomain,
		Message: fmt.Sprintf("invalid field name '%s': expected \"fp\" or \"fp<n>\" with n a power of two", fieldName),
		Suggestions: []Suggestion{
			{Message: "valid examples: \"fp\", \"fp2\", \"fp4\", \"fp8\""},
		},
	}
}

// SolverInfeasibleError reports that the ILP solver proved the DAG
// extraction problem infeasible for a test case (should never happen by
// construction; §4.7).
func SolverInfeasibleError(testCase int) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    ErrorSolverInfeasible,
		Message: fmt.Sprintf("DAG extraction for test case %d is infeasible", testCase),
		Notes:   []string{"the tree-extraction result for this test case remains valid"},
	}
}

// levenshteinDistance computes the edit distance between a and b.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minOf3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func minOf3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// findSimilarNames returns candidates close to target by edit distance,
// closest first, capped to a small threshold relative to target's length.
func findSimilarNames(target string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	threshold := len(target)/2 + 1
	var matches []scored
	for _, c := range candidates {
		d := levenshteinDistance(strings.ToLower(target), strings.ToLower(c))
		if d <= threshold {
			matches = append(matches, scored{c, d})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}
