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

// Package sourceinfo maps between source positions and declarations.
//
// An [Index] is computed once from a parsed program and answers two kinds of
// question: which top-level declaration covers a given source line, and where
// a given name is declared. Tools that annotate or navigate source text build
// on this rather than re-walking the tree per query.
package sourceinfo

import (
	"github.com/tidwall/btree"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/internal/interval"
	"github.com/micalang/micacompile/walk"
)

// Index is a queryable view of where a program's declarations live. It is
// immutable after [Collect] returns and safe for concurrent readers.
type Index struct {
	byName btree.Map[string, ast.Decl]
	byLine interval.Map[int, ast.Decl]
}

// Collect builds an Index for prog. Line coverage extends from a
// declaration's first token to the deepest position in its subtree, so a
// multi-line function body is attributed to its declaration.
func Collect(prog *ast.Program) *Index {
	idx := &Index{}
	if prog == nil {
		return idx
	}
	for _, decl := range prog.Decls {
		if name := DeclName(decl); name != "" {
			if _, ok := idx.byName.Get(name); !ok {
				idx.byName.Set(name, decl)
			}
		}
		start := decl.Pos().Line
		end := start
		_ = walk.Nodes(decl, func(n ast.Node) error {
			if pos := n.Pos(); pos.Line > end {
				end = pos.Line
			}
			return nil
		})
		// Duplicate coverage can only come from malformed positions;
		// first declaration wins.
		idx.byLine.Insert(start, end, decl)
	}
	return idx
}

// DeclAt returns the top-level declaration whose source text covers the given
// 1-based line, or nil if the line is blank or between declarations.
func (idx *Index) DeclAt(line int) ast.Decl {
	decl, ok := idx.byLine.Get(line)
	if !ok {
		return nil
	}
	return decl
}

// DeclByName returns the first top-level declaration with the given name, or
// nil if there is none.
func (idx *Index) DeclByName(name string) ast.Decl {
	decl, _ := idx.byName.Get(name)
	return decl
}

// Names returns the names of all indexed top-level declarations in sorted
// order.
func (idx *Index) Names() []string {
	out := make([]string, 0, idx.byName.Len())
	idx.byName.Scan(func(name string, _ ast.Decl) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Len returns the number of top-level declarations in the index.
func (idx *Index) Len() int {
	return idx.byLine.Len()
}

// DeclName returns the name a declaration introduces, or "" for anonymous
// declarations.
func DeclName(decl ast.Decl) string {
	switch decl := decl.(type) {
	case *ast.FuncDecl:
		return decl.Name
	case *ast.VarDecl:
		return decl.Name
	case *ast.StructDecl:
		return decl.Name
	case *ast.UnionDecl:
		return decl.Name
	case *ast.EnumDecl:
		return decl.Name
	default:
		return ""
	}
}
