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
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Render formats a diagnostic as a human-readable snippet, quoting the
// offending source line with a caret under the diagnostic's column:
//
//	error: return type mismatch: expected i32, found string
//	 --> 3:12
//	  |
//	3 |     return "x";
//	  |            ^
//
// When the diagnostic carries no position, only the first line is produced.
// The caret is aligned by display width, not byte count, so lines containing
// wide characters or grapheme clusters still point at the right spot.
func Render(d Diagnostic, source string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", d.Severity, d.Message)
	if d.Pos.IsZero() {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n --> %s", d.Pos)

	lines := strings.Split(source, "\n")
	if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
		return sb.String()
	}
	line := expandTabs(lines[d.Pos.Line-1])

	gutter := fmt.Sprintf("%d", d.Pos.Line)
	pad := strings.Repeat(" ", len(gutter))

	// Columns are counted in runes, so the prefix has to be cut the same way.
	runes := []rune(lines[d.Pos.Line-1])
	col := d.Pos.Col
	if col-1 > len(runes) {
		col = len(runes) + 1
	}
	caret := uniseg.StringWidth(expandTabs(string(runes[:col-1])))

	fmt.Fprintf(&sb, "\n%s |", pad)
	fmt.Fprintf(&sb, "\n%s | %s", gutter, line)
	fmt.Fprintf(&sb, "\n%s | %s^", pad, strings.Repeat(" ", caret))
	return sb.String()
}

const tabWidth = 4

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
