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

package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/micalang/micacompile/ast"
)

func TestRender(t *testing.T) {
	source := "fn f() i32 {\n    return \"x\";\n}\n"
	d := Diagnostic{
		Message:  "return type mismatch: expected i32, found string",
		Pos:      ast.SourcePos{Line: 2, Col: 12},
		Severity: SeverityError,
	}
	want := `error: return type mismatch: expected i32, found string
 --> 2:12
  |
2 |     return "x";
  |            ^`
	assert.Equal(t, want, Render(d, source))
}

func TestRenderNoPosition(t *testing.T) {
	d := Diagnostic{Message: "something went wrong", Severity: SeverityWarning}
	assert.Equal(t, "warning: something went wrong", Render(d, "var x = 1;"))
}

func TestRenderWideCharacters(t *testing.T) {
	// The string literal holds a CJK character, which occupies one column
	// but renders two cells wide; the caret still has to land on the
	// offending token after it.
	source := "s = '宽' + #;"
	d := Diagnostic{
		Message:  "unexpected character '#'",
		Pos:      ast.SourcePos{Line: 1, Col: 11},
		Severity: SeverityError,
	}
	want := `error: unexpected character '#'
 --> 1:11
  |
1 | s = '宽' + #;
  |            ^`
	assert.Equal(t, want, Render(d, source))
}

func TestRenderTabIndentation(t *testing.T) {
	source := "fn f() void {\n\tbad?;\n}"
	d := Diagnostic{
		Message:  "unexpected character '?'",
		Pos:      ast.SourcePos{Line: 2, Col: 5},
		Severity: SeverityError,
	}
	want := `error: unexpected character '?'
 --> 2:5
  |
2 |     bad?;
  |        ^`
	assert.Equal(t, want, Render(d, source))
}

func TestRenderPositionPastLineEnd(t *testing.T) {
	// An EOF diagnostic can point one past the last column.
	source := "var x = 1"
	d := Diagnostic{
		Message:  "unexpected end of file; expected ;",
		Pos:      ast.SourcePos{Line: 1, Col: 10},
		Severity: SeverityError,
	}
	want := `error: unexpected end of file; expected ;
 --> 1:10
  |
1 | var x = 1
  |          ^`
	assert.Equal(t, want, Render(d, source))
}
