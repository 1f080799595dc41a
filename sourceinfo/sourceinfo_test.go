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

package sourceinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/parser"
)

const indexSource = `const limit = 100;

fn clamp(x: i32) i32 {
    if (x > limit) {
        return limit;
    }
    return x;
}

var counter = 0;
`

func collectSource(t *testing.T, source string) *Index {
	t.Helper()
	tokens, err := parser.Tokenize(source)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	return Collect(prog)
}

func TestIndexDeclAt(t *testing.T) {
	idx := collectSource(t, indexSource)
	require.Equal(t, 3, idx.Len())

	limit := idx.DeclAt(1)
	require.NotNil(t, limit)
	assert.Equal(t, "limit", DeclName(limit))

	// Every line of the function body maps back to the function.
	for line := 3; line <= 7; line++ {
		decl := idx.DeclAt(line)
		require.NotNil(t, decl, "line %d", line)
		assert.Equal(t, "clamp", DeclName(decl), "line %d", line)
	}

	counter := idx.DeclAt(10)
	require.NotNil(t, counter)
	assert.Equal(t, "counter", DeclName(counter))

	// Blank lines between declarations belong to nothing.
	assert.Nil(t, idx.DeclAt(2))
	assert.Nil(t, idx.DeclAt(9))
	assert.Nil(t, idx.DeclAt(100))
	assert.Nil(t, idx.DeclAt(0))
}

func TestIndexDeclByName(t *testing.T) {
	idx := collectSource(t, indexSource)

	clamp := idx.DeclByName("clamp")
	require.NotNil(t, clamp)
	fn, ok := clamp.(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, 3, fn.Pos().Line)

	assert.Nil(t, idx.DeclByName("missing"))
	assert.Equal(t, []string{"clamp", "counter", "limit"}, idx.Names())
}

func TestIndexDuplicateNamesFirstWins(t *testing.T) {
	idx := collectSource(t, "var x = 1;\nvar x = 2;\n")
	decl := idx.DeclByName("x")
	require.NotNil(t, decl)
	assert.Equal(t, 1, decl.Pos().Line)
}

func TestIndexEmptyProgram(t *testing.T) {
	idx := collectSource(t, "")
	assert.Zero(t, idx.Len())
	assert.Nil(t, idx.DeclAt(1))
	assert.Empty(t, idx.Names())

	assert.Zero(t, Collect(nil).Len())
}
