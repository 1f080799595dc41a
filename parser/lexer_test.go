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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micalang/micacompile/reporter"
	"github.com/micalang/micacompile/token"
)

func TestLexer(t *testing.T) {
	tokens, err := Tokenize(`
// leading comment
fn add(a: i32, b: i32) i32 {
    return a + b; // trailing comment
}
const greeting = 'hello';
var ratio = 1.5;
x += 2;
a == b != c <= d >= e < f > g;
`)
	require.NoError(t, err)

	type expected struct {
		kind token.Kind
		text string
	}
	wanted := []expected{
		{token.Fn, "fn"},
		{token.Ident, "add"},
		{token.LParen, "("},
		{token.Ident, "a"},
		{token.Colon, ":"},
		{token.I32, "i32"},
		{token.Comma, ","},
		{token.Ident, "b"},
		{token.Colon, ":"},
		{token.I32, "i32"},
		{token.RParen, ")"},
		{token.I32, "i32"},
		{token.LBrace, "{"},
		{token.Return, "return"},
		{token.Ident, "a"},
		{token.Plus, "+"},
		{token.Ident, "b"},
		{token.Semicolon, ";"},
		{token.RBrace, "}"},
		{token.Const, "const"},
		{token.Ident, "greeting"},
		{token.Assign, "="},
		{token.String, "hello"},
		{token.Semicolon, ";"},
		{token.Var, "var"},
		{token.Ident, "ratio"},
		{token.Assign, "="},
		{token.Number, "1.5"},
		{token.Semicolon, ";"},
		{token.Ident, "x"},
		{token.PlusAssign, "+="},
		{token.Number, "2"},
		{token.Semicolon, ";"},
		{token.Ident, "a"},
		{token.Equals, "=="},
		{token.Ident, "b"},
		{token.NotEquals, "!="},
		{token.Ident, "c"},
		{token.LessEq, "<="},
		{token.Ident, "d"},
		{token.GreaterEq, ">="},
		{token.Ident, "e"},
		{token.Less, "<"},
		{token.Ident, "f"},
		{token.Greater, ">"},
		{token.Ident, "g"},
		{token.Semicolon, ";"},
	}

	require.Len(t, tokens, len(wanted)+1)
	for i, want := range wanted {
		assert.Equal(t, want.kind, tokens[i].Kind, "token %d", i)
		assert.Equal(t, want.text, tokens[i].Text, "token %d", i)
	}
	assert.Equal(t, token.EOF, tokens[len(tokens)-1].Kind)
}

func TestLexerPositions(t *testing.T) {
	tokens, err := Tokenize("fn main() void {\n    return;\n}\n")
	require.NoError(t, err)

	type pos struct{ line, col int }
	wanted := []pos{
		{1, 1},  // fn
		{1, 4},  // main
		{1, 8},  // (
		{1, 9},  // )
		{1, 11}, // void
		{1, 16}, // {
		{2, 5},  // return
		{2, 11}, // ;
		{3, 1},  // }
		{4, 1},  // EOF
	}
	require.Len(t, tokens, len(wanted))
	for i, want := range wanted {
		assert.Equal(t, want.line, tokens[i].Line, "token %d (%s)", i, tokens[i])
		assert.Equal(t, want.col, tokens[i].Column, "token %d (%s)", i, tokens[i])
	}
}

func TestLexerColumnsCountRunes(t *testing.T) {
	// Identifiers are ASCII-only, but strings may carry arbitrary runes;
	// columns after one must count runes, not bytes.
	tokens, err := Tokenize("'héllo' x")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "héllo", tokens[0].Text)
	assert.Equal(t, 9, tokens[1].Column)
}

func TestLexerEmptyInput(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.EOF, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)

	tokens, err = Tokenize("   \n\t  // only trivia\n")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.EOF, tokens[0].Kind)
}

func TestLexerNumberEdgeCases(t *testing.T) {
	// A second dot ends the number; the rest lexes as member access.
	tokens, err := Tokenize("1.2.3")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "1.2", tokens[0].Text)
	assert.Equal(t, token.Dot, tokens[1].Kind)
	assert.Equal(t, "3", tokens[2].Text)

	// A trailing dot with no digit after it is not part of the number.
	tokens, err = Tokenize("1.")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "1", tokens[0].Text)
	assert.Equal(t, token.Dot, tokens[1].Kind)
}

func TestLexerStringDelimiters(t *testing.T) {
	tokens, err := Tokenize(`'single' "double" 'with "quotes" inside'`)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "single", tokens[0].Text)
	assert.Equal(t, "double", tokens[1].Text)
	assert.Equal(t, `with "quotes" inside`, tokens[2].Text)
}

func TestLexerErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		errMsg string
		line   int
		col    int
	}{
		{
			name:   "unexpected character",
			input:  "var x = 1 # 2;",
			errMsg: `unexpected character '#'`,
			line:   1, col: 11,
		},
		{
			name:   "unterminated string",
			input:  "const s = 'abc",
			errMsg: "unterminated string literal",
			line:   1, col: 11,
		},
		{
			name:   "string broken by newline",
			input:  "const s = 'abc\ndef';",
			errMsg: "string literal not terminated before end of line",
			line:   1, col: 11,
		},
		{
			name:   "error position on later line",
			input:  "var x = 1;\nvar y = @;\n",
			errMsg: `unexpected character '@'`,
			line:   2, col: 9,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Tokenize(tc.input)
			assert.Nil(t, tokens)
			require.Error(t, err)
			var ewp reporter.ErrorWithPos
			require.ErrorAs(t, err, &ewp)
			assert.Equal(t, tc.errMsg, ewp.Unwrap().Error())
			assert.Equal(t, tc.line, ewp.GetPosition().Line)
			assert.Equal(t, tc.col, ewp.GetPosition().Col)
		})
	}
}

func TestLexerKeywordsAreReserved(t *testing.T) {
	tokens, err := Tokenize("whiled while")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, token.Ident, tokens[0].Kind)
	assert.Equal(t, token.While, tokens[1].Kind)
}
