// Package parser turns S-expression source text into an ast.Expr tree,
// the same job grammar.go did for the teacher's contract language, now
// retargeted at the flat prefix-notation grammar of §2: numbers,
// symbols, and parenthesized operator applications.
package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes "(op a b)" style source: an operator or bareword
// identifier, a signed decimal literal, and the two parens that nest
// them. Mirrors the teacher's stateful-lexer idiom (one "Root" state,
// ordered rules, Whitespace elided by the parser).
var exprLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Whitespace", `[ \t\r\n]+`, nil},
		{"Number", `-?[0-9]+(\.[0-9]+)?`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Operator", `[+\-*]`, nil},
		{"LParen", `\(`, nil},
		{"RParen", `\)`, nil},
	},
})
