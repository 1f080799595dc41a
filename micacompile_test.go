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

package micacompile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/reporter"
)

func TestAnalyzeValidProgram(t *testing.T) {
	res := Analyze(`
fn add(a: i32, b: i32) i32 {
    return a + b;
}

fn main() void {
    var sum = add(1, 2);
    if (sum > 2) {
        sum += 1;
    }
}
`)
	assert.True(t, res.Valid())
	require.NotNil(t, res.Program)
	assert.Len(t, res.Program.Decls, 2)
}

func TestAnalyzeEmptySource(t *testing.T) {
	res := Analyze("")
	assert.True(t, res.Valid())
	require.NotNil(t, res.Program)
	assert.Empty(t, res.Program.Decls)

	formatted, err := Format("")
	require.NoError(t, err)
	assert.Equal(t, "", formatted)
}

func TestAnalyzeLexicalError(t *testing.T) {
	res := Analyze("var x = 1 ~ 2;")
	assert.False(t, res.Valid())
	assert.Nil(t, res.Program)
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, "unexpected character '~'", d.Message)
	assert.Equal(t, ast.SourcePos{Line: 1, Col: 11}, d.Pos)
	assert.Equal(t, reporter.SeverityError, d.Severity)
}

func TestAnalyzeSyntaxErrorIsSingular(t *testing.T) {
	// Structurally broken source yields exactly one diagnostic, even though
	// more problems follow.
	res := Analyze("fn f( void {}\nfn g( void {}\n")
	assert.Nil(t, res.Program)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, 1, res.Diagnostics[0].Pos.Line)
}

func TestAnalyzeSemanticErrorsAreBatched(t *testing.T) {
	res := Analyze(`
fn f() i32 {
    x = 1;
    break;
    return true;
}
`)
	assert.False(t, res.Valid())
	require.NotNil(t, res.Program, "semantic errors still produce a tree")
	require.Len(t, res.Diagnostics, 3)
	assert.Equal(t, `undefined identifier "x"`, res.Diagnostics[0].Message)
	assert.Equal(t, "break outside of a loop", res.Diagnostics[1].Message)
	assert.Equal(t, "return type mismatch: expected i32, found bool", res.Diagnostics[2].Message)
}

func TestFormat(t *testing.T) {
	got, err := Format("fn f(a: i32)i32{return a;}")
	require.NoError(t, err)
	want := `fn f(a: i32) i32 {
    return a;
}
`
	assert.Equal(t, want, got)

	// Already-canonical input is returned unchanged.
	again, err := Format(got)
	require.NoError(t, err)
	assert.Equal(t, want, again)
}

func TestFormatIgnoresSemanticErrors(t *testing.T) {
	// Undefined names are a checker concern; formatting only needs a tree.
	got, err := Format("fn f() void { missing(); }")
	require.NoError(t, err)
	assert.Contains(t, got, "missing();")
}

func TestFormatError(t *testing.T) {
	_, err := Format("fn f( {}")
	require.Error(t, err)
	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, ast.SourcePos{Line: 1, Col: 7}, ewp.GetPosition())
}

func TestCompilerAnalyzeAll(t *testing.T) {
	sources := make([]string, 50)
	for i := range sources {
		if i%10 == 9 {
			sources[i] = "fn f() void { oops; }"
		} else {
			sources[i] = fmt.Sprintf("fn f%d() i32 {\n    return %d;\n}\n", i, i)
		}
	}

	c := &Compiler{MaxParallelism: 4}
	results, err := c.AnalyzeAll(context.Background(), sources...)
	require.NoError(t, err)
	require.Len(t, results, len(sources))

	for i, res := range results {
		if i%10 == 9 {
			assert.False(t, res.Valid(), "source %d", i)
		} else {
			assert.True(t, res.Valid(), "source %d", i)
		}
	}
}

func TestCompilerFormatAll(t *testing.T) {
	c := &Compiler{}
	out, err := c.FormatAll(context.Background(),
		"var a=1;",
		"var b = 2;",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"var a = 1;\n", "var b = 2;\n"}, out)

	_, err = c.FormatAll(context.Background(), "var a = 1;", "var b = ;")
	require.Error(t, err)
}

func TestCompilerEmptyBatch(t *testing.T) {
	c := &Compiler{}
	results, err := c.AnalyzeAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCompilerHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Compiler{MaxParallelism: 1}
	_, err := c.AnalyzeAll(ctx, "var a = 1;", "var b = 2;")
	assert.ErrorIs(t, err, context.Canceled)
}
