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

// Package ast defines the node taxonomy for Mica source trees.
//
// Nodes are pure data: they carry source positions for diagnostics and no
// behavior. Every node belongs to exactly one of four closed families, each
// expressed as a sealed interface: [Decl], [Stmt], [Expr], and [Type].
// Sealing is done with unexported marker methods so that the checker and the
// printer can switch over all variants exhaustively.
//
// A [Program] is the tree root. Each composite node exclusively owns its
// children: the tree is strict, with no sharing and no cycles. The parser is
// the only producer of trees from source text and it never emits a malformed
// tree; invalid input is reported as an error, not as a broken AST.
package ast

import "fmt"

// SourcePos is a location in source text. Line and Col are 1-based.
type SourcePos struct {
	Line int
	Col  int
}

func (p SourcePos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// IsZero reports whether the position is unset.
func (p SourcePos) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// Node is implemented by every AST node.
type Node interface {
	// Pos returns the node's source position. Binary, unary, and assignment
	// expressions report the position of their left/operand child.
	Pos() SourcePos
}

// Program is the root of a parsed source unit: an ordered sequence of
// top-level declarations. Empty input yields a Program with no declarations.
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() SourcePos {
	if len(p.Decls) == 0 {
		return SourcePos{}
	}
	return p.Decls[0].Pos()
}
