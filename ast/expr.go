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

package ast

import (
	"strings"

	"github.com/micalang/micacompile/token"
)

// Expr is the expression family.
type Expr interface {
	Node
	exprNode()
}

// BinaryExpr is a binary operation. Op is one of the binary operator token
// kinds (arithmetic, comparison, equality, `and`, `or`). Its position is the
// position of the left operand.
type BinaryExpr struct {
	Op token.Kind
	X  Expr
	Y  Expr
}

// UnaryExpr is a prefix operation (`-` or `!`). Its position is the position
// of the operand.
type UnaryExpr struct {
	Op token.Kind
	X  Expr
}

// AssignExpr is an assignment (`=`) or compound assignment (`+=`).
// Assignment is right-associative, so `a = b = 1` nests in the Value field.
// Its position is the position of the target.
type AssignExpr struct {
	Op     token.Kind
	Target Expr
	Value  Expr
}

// CallExpr is a function call.
type CallExpr struct {
	Fun  Expr
	Args []Expr
}

// MemberExpr is a `.name` member access.
type MemberExpr struct {
	X    Expr
	Name string
}

// IndexExpr is a `[...]` index operation.
type IndexExpr struct {
	X     Expr
	Index Expr
}

// IdentExpr is a reference to a declared name.
type IdentExpr struct {
	StartPos SourcePos
	Name     string
}

// NumberLit is a numeric literal. Text is the literal spelling as scanned;
// a spelling containing a decimal point is a float literal.
type NumberLit struct {
	StartPos SourcePos
	Text     string
}

// IsFloat reports whether the literal has a decimal point.
func (e *NumberLit) IsFloat() bool {
	return strings.Contains(e.Text, ".")
}

// StringLit is a string literal. Value holds the content without the
// delimiting quotes.
type StringLit struct {
	StartPos SourcePos
	Value    string
}

// BoolLit is a `true` or `false` literal.
type BoolLit struct {
	StartPos SourcePos
	Value    bool
}

// StructLit is a struct literal. It exists in the tree model but is not
// reachable from the current grammar.
type StructLit struct {
	StartPos SourcePos
	TypeName string
	Fields   []FieldInit
}

// FieldInit is a single field initializer inside a struct literal.
type FieldInit struct {
	StartPos SourcePos
	Name     string
	Value    Expr
}

// ArrayLit is an array literal. It exists in the tree model but is not
// reachable from the current grammar.
type ArrayLit struct {
	StartPos SourcePos
	Elems    []Expr
}

// Positions for operator and postfix nodes are attributed to the leftmost
// child, so a node's position is never after any position in its subtree.
func (e *BinaryExpr) Pos() SourcePos { return e.X.Pos() }
func (e *UnaryExpr) Pos() SourcePos  { return e.X.Pos() }
func (e *AssignExpr) Pos() SourcePos { return e.Target.Pos() }
func (e *CallExpr) Pos() SourcePos   { return e.Fun.Pos() }
func (e *MemberExpr) Pos() SourcePos { return e.X.Pos() }
func (e *IndexExpr) Pos() SourcePos  { return e.X.Pos() }

func (e *IdentExpr) Pos() SourcePos { return e.StartPos }
func (e *NumberLit) Pos() SourcePos { return e.StartPos }
func (e *StringLit) Pos() SourcePos { return e.StartPos }
func (e *BoolLit) Pos() SourcePos   { return e.StartPos }
func (e *StructLit) Pos() SourcePos { return e.StartPos }
func (e *ArrayLit) Pos() SourcePos  { return e.StartPos }

func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*AssignExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*IndexExpr) exprNode()  {}
func (*IdentExpr) exprNode()  {}
func (*NumberLit) exprNode()  {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*StructLit) exprNode()  {}
func (*ArrayLit) exprNode()   {}

var (
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*MemberExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*IdentExpr)(nil)
	_ Expr = (*NumberLit)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*StructLit)(nil)
	_ Expr = (*ArrayLit)(nil)
)
