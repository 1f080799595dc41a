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

package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/internal/corpora"
	"github.com/micalang/micacompile/parser"
	"github.com/micalang/micacompile/token"
)

func generateSource(t *testing.T, source string) string {
	t.Helper()
	tokens, err := parser.Tokenize(source)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	return Generate(prog)
}

func TestGenerate(t *testing.T) {
	corpora.Corpus{
		Root:      "testdata",
		Refresh:   "MICA_REFRESH",
		Extension: "mica",
		Outputs:   []corpora.Output{{Extension: "fmt"}},
		Test: func(t *testing.T, path, text string) []string {
			formatted := generateSource(t, text)
			// Canonical form is a fixed point: formatting the output again
			// must reproduce it byte for byte.
			assert.Equal(t, formatted, generateSource(t, formatted), "formatting is not idempotent")
			return []string{formatted}
		},
	}.Run(t)
}

func TestGenerateEmptyProgram(t *testing.T) {
	assert.Equal(t, "", Generate(&ast.Program{}))
}

func TestGenerateDeterministic(t *testing.T) {
	const source = "fn f(a: i32) i32 { return a * (a + 1); }"
	first := generateSource(t, source)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, generateSource(t, source))
	}
}

func TestGenerateSyntheticTypes(t *testing.T) {
	// These type shapes have no surface syntax; only hand-built trees reach
	// them.
	decl := &ast.VarDecl{
		Name: "buf",
		Type: &ast.PointerType{
			Elem: &ast.ArrayType{
				Len:  &ast.NumberLit{Text: "16"},
				Elem: &ast.OptionalType{Elem: &ast.PrimitiveType{Kind: token.U32}},
			},
		},
	}
	got := Generate(&ast.Program{Decls: []ast.Decl{decl}})
	assert.Equal(t, "var buf: *[16]?u32;\n", got)
}

func TestGenerateSyntheticDecls(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.StructDecl{Name: "Point", Fields: []ast.Field{
			{Name: "x", Type: &ast.PrimitiveType{Kind: token.F64}},
			{Name: "y", Type: &ast.PrimitiveType{Kind: token.F64}},
		}},
		&ast.EnumDecl{Name: "Color", Members: []ast.EnumMember{
			{Name: "red"}, {Name: "green"},
		}},
		&ast.UnionDecl{Name: "Value"},
	}}
	want := `struct Point {
    x: f64,
    y: f64,
}

enum Color {
    red,
    green,
}

union Value {}
`
	assert.Equal(t, want, Generate(prog))
}

func TestGenerateSyntheticLiterals(t *testing.T) {
	lit := &ast.StructLit{
		TypeName: "Point",
		Fields: []ast.FieldInit{
			{Name: "x", Value: &ast.NumberLit{Text: "1"}},
			{Name: "y", Value: &ast.NumberLit{Text: "2"}},
		},
	}
	arr := &ast.ArrayLit{Elems: []ast.Expr{
		&ast.NumberLit{Text: "1"},
		&ast.NumberLit{Text: "2"},
	}}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.VarDecl{Name: "p", Init: lit},
		&ast.VarDecl{Name: "xs", Init: arr},
	}}
	want := `var p = Point{ .x = 1, .y = 2 };

var xs = [1, 2];
`
	assert.Equal(t, want, Generate(prog))
}
