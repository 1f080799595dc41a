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

// Stmt is the statement family.
type Stmt interface {
	Node
	stmtNode()
}

// BlockStmt is a brace-delimited statement sequence. Each block introduces
// a new lexical scope in the checker.
type BlockStmt struct {
	StartPos SourcePos
	Stmts    []Stmt
}

// ReturnStmt is a return statement with an optional value.
type ReturnStmt struct {
	StartPos SourcePos
	Value    Expr // nil for a bare `return;`
}

// IfStmt is an if statement with an optional else branch. `else if` chains
// are represented as an IfStmt in the Else field; there is no dedicated
// chain node.
type IfStmt struct {
	StartPos SourcePos
	Cond     Expr
	Then     Stmt
	Else     Stmt // nil if absent
}

// WhileStmt is a while loop.
type WhileStmt struct {
	StartPos SourcePos
	Cond     Expr
	Body     Stmt
}

// ForStmt is a for loop. It exists in the tree model but is not reachable
// from the current grammar.
type ForStmt struct {
	StartPos SourcePos
	Init     Stmt // nil if absent
	Cond     Expr // nil if absent
	Post     Expr // nil if absent
	Body     Stmt
}

// BreakStmt is a break statement.
type BreakStmt struct {
	StartPos SourcePos
}

// ContinueStmt is a continue statement.
type ContinueStmt struct {
	StartPos SourcePos
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X Expr
}

// ComptimeStmt is a comptime-evaluated block.
type ComptimeStmt struct {
	StartPos SourcePos
	Body     *BlockStmt
}

func (s *BlockStmt) Pos() SourcePos    { return s.StartPos }
func (s *ReturnStmt) Pos() SourcePos   { return s.StartPos }
func (s *IfStmt) Pos() SourcePos       { return s.StartPos }
func (s *WhileStmt) Pos() SourcePos    { return s.StartPos }
func (s *ForStmt) Pos() SourcePos      { return s.StartPos }
func (s *BreakStmt) Pos() SourcePos    { return s.StartPos }
func (s *ContinueStmt) Pos() SourcePos { return s.StartPos }
func (s *ExprStmt) Pos() SourcePos     { return s.X.Pos() }
func (s *ComptimeStmt) Pos() SourcePos { return s.StartPos }

func (*BlockStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ExprStmt) stmtNode()     {}
func (*ComptimeStmt) stmtNode() {}

// VarDecl doubles as a statement when it appears inside a block.
func (*VarDecl) stmtNode() {}

var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*ComptimeStmt)(nil)
	_ Stmt = (*VarDecl)(nil)
)
