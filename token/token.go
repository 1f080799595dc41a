// Copyright 2023-2026 Mica Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token defines the lexical vocabulary of the Mica language: the
// token kinds the lexer can produce, the keyword table, and the Token value
// that flows between the lexer and the parser.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int

const (
	// EOF is the end-of-stream sentinel. A well-formed token sequence ends
	// with exactly one EOF token.
	EOF Kind = iota

	Ident
	Number
	String

	// Keywords.
	Fn
	Const
	Var
	Struct
	Union
	Enum
	If
	Else
	While
	For
	Break
	Continue
	Return
	Comptime
	Inline
	And
	Or
	True
	False
	I32
	I64
	U32
	F32
	F64
	Bool
	Void

	// Punctuation and operators.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Semicolon
	Comma
	Dot
	Bang
	Minus
	Plus
	Star
	Slash
	Percent
	Assign      // =
	PlusAssign  // +=
	Equals      // ==
	NotEquals   // !=
	Less        // <
	Greater     // >
	LessEq      // <=
	GreaterEq   // >=
)

var kindNames = map[Kind]string{
	EOF:        "end of file",
	Ident:      "identifier",
	Number:     "number literal",
	String:     "string literal",
	Fn:         "fn",
	Const:      "const",
	Var:        "var",
	Struct:     "struct",
	Union:      "union",
	Enum:       "enum",
	If:         "if",
	Else:       "else",
	While:      "while",
	For:        "for",
	Break:      "break",
	Continue:   "continue",
	Return:     "return",
	Comptime:   "comptime",
	Inline:     "inline",
	And:        "and",
	Or:         "or",
	True:       "true",
	False:      "false",
	I32:        "i32",
	I64:        "i64",
	U32:        "u32",
	F32:        "f32",
	F64:        "f64",
	Bool:       "bool",
	Void:       "void",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Colon:      ":",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	Bang:       "!",
	Minus:      "-",
	Plus:       "+",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	PlusAssign: "+=",
	Equals:     "==",
	NotEquals:  "!=",
	Less:       "<",
	Greater:    ">",
	LessEq:     "<=",
	GreaterEq:  ">=",
}

// String returns a human-readable name for the kind, suitable for use in
// diagnostics ("expected `;`, got number literal").
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps keyword spellings to their kinds. Keyword recognition is a
// lookup applied after identifier scanning, so any spelling that matches a
// keyword is always classified as that keyword.
var keywords = map[string]Kind{
	"fn":       Fn,
	"const":    Const,
	"var":      Var,
	"struct":   Struct,
	"union":    Union,
	"enum":     Enum,
	"if":       If,
	"else":     Else,
	"while":    While,
	"for":      For,
	"break":    Break,
	"continue": Continue,
	"return":   Return,
	"comptime": Comptime,
	"inline":   Inline,
	"and":      And,
	"or":       Or,
	"true":     True,
	"false":    False,
	"i32":      I32,
	"i64":      I64,
	"u32":      U32,
	"f32":      F32,
	"f64":      F64,
	"bool":     Bool,
	"void":     Void,
}

// Lookup classifies an identifier spelling, returning the keyword kind if it
// matches one and Ident otherwise.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// IsKeyword reports whether the kind is one of the language keywords.
func (k Kind) IsKeyword() bool {
	return k >= Fn && k <= Void
}

// IsPrimitiveType reports whether the kind names one of the primitive type
// keywords (i32, i64, u32, f32, f64, bool, void).
func (k Kind) IsPrimitiveType() bool {
	return k >= I32 && k <= Void
}

// Operator precedence levels. The binary tiers run from LowestPrec+1 up to
// HighestPrec-1; unary operators bind tighter than any binary operator.
const (
	LowestPrec  = 0 // non-operators
	UnaryPrec   = 7
	HighestPrec = 8
)

// Precedence returns the binary operator precedence of k, or LowestPrec if
// k is not a binary operator. This single table drives both the parser's
// precedence-climbing loop and the printer's parenthesization; assignment is
// not in the table because it is the only right-associative tier and is
// handled separately below every binary level.
func (k Kind) Precedence() int {
	switch k {
	case Or:
		return 1
	case And:
		return 2
	case Equals, NotEquals:
		return 3
	case Less, Greater, LessEq, GreaterEq:
		return 4
	case Plus, Minus:
		return 5
	case Star, Slash, Percent:
		return 6
	}
	return LowestPrec
}

// Token is a classified, positioned lexical unit. Line and Column are
// 1-based and refer to the first character of the token's text.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Number, String:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
