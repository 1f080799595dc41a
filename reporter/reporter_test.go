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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micalang/micacompile/ast"
)

func TestErrorWithPos(t *testing.T) {
	pos := ast.SourcePos{Line: 3, Col: 14}
	err := Errorf(pos, "unexpected character %q", '#')

	assert.Equal(t, `3:14: unexpected character '#'`, err.Error())
	assert.Equal(t, pos, err.GetPosition())
	assert.Equal(t, `unexpected character '#'`, err.Unwrap().Error())

	wrapped := Error(pos, ErrInvalidSource)
	assert.ErrorIs(t, wrapped, ErrInvalidSource)
}

func TestHandlerFailFast(t *testing.T) {
	// A nil reporter aborts on the first error.
	h := NewHandler(nil)
	first := h.HandleErrorf(ast.SourcePos{Line: 1, Col: 1}, "first")
	require.Error(t, first)

	// Once aborted, the handler keeps returning the original error.
	second := h.HandleErrorf(ast.SourcePos{Line: 2, Col: 1}, "second")
	assert.Equal(t, first, second)
	assert.Equal(t, "1:1: first", second.Error())
	assert.Equal(t, first, h.Err())
	assert.Equal(t, first, h.ReporterError())
}

func TestHandlerWithCollector(t *testing.T) {
	collector := &Collector{}
	h := NewHandler(collector)

	assert.NoError(t, h.HandleErrorf(ast.SourcePos{Line: 1, Col: 2}, "one"))
	assert.NoError(t, h.HandleErrorf(ast.SourcePos{Line: 3, Col: 4}, "two"))
	h.HandleWarningf(ast.SourcePos{Line: 5, Col: 6}, "heads up")

	// Errors were reported but nothing aborted.
	assert.Nil(t, h.ReporterError())
	assert.ErrorIs(t, h.Err(), ErrInvalidSource)

	diags := collector.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, Diagnostic{Message: "one", Pos: ast.SourcePos{Line: 1, Col: 2}, Severity: SeverityError}, diags[0])
	assert.Equal(t, Diagnostic{Message: "two", Pos: ast.SourcePos{Line: 3, Col: 4}, Severity: SeverityError}, diags[1])
	assert.Equal(t, SeverityWarning, diags[2].Severity)
}

func TestHandlerCustomReporterCanAbort(t *testing.T) {
	boom := errors.New("boom")
	count := 0
	rep := NewReporter(func(err ErrorWithPos) error {
		count++
		if count == 2 {
			return boom
		}
		return nil
	}, nil)

	h := NewHandler(rep)
	assert.NoError(t, h.HandleErrorf(ast.SourcePos{Line: 1, Col: 1}, "tolerated"))
	assert.Same(t, boom, h.HandleErrorf(ast.SourcePos{Line: 2, Col: 1}, "fatal"))
	assert.Same(t, boom, h.Err())

	// Reporting after the abort does not reach the reporter again.
	assert.Same(t, boom, h.HandleErrorf(ast.SourcePos{Line: 3, Col: 1}, "ignored"))
	assert.Equal(t, 2, count)
}

func TestHandlerNoErrors(t *testing.T) {
	h := NewHandler(&Collector{})
	assert.NoError(t, h.Err())
	assert.NoError(t, h.ReporterError())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
}
