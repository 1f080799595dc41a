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

// Decl is the declaration family: Function, Variable, Struct, Union, Enum.
type Decl interface {
	Node
	declNode()
}

// FuncDecl is a function declaration.
//
// The return type is always non-nil; a function with a `!` marker has an
// [ErrorUnionType] wrapping the annotated type.
type FuncDecl struct {
	StartPos   SourcePos
	Name       string
	Params     []Param
	ReturnType Type
	Body       *BlockStmt

	Inline   bool
	Comptime bool
}

// Param is a single function parameter. Parameters are not themselves nodes
// in a family; they are owned exclusively by their FuncDecl.
type Param struct {
	StartPos SourcePos
	Name     string
	Type     Type
	Comptime bool
}

// VarDecl is a `const` or `var` declaration. It appears both at the top
// level and as a statement inside blocks. Type and Init may each be nil,
// but not both in well-typed programs (the checker diagnoses that case).
type VarDecl struct {
	StartPos SourcePos
	Const    bool
	Name     string
	Type     Type // optional annotation
	Init     Expr // optional initializer

	Inline   bool
	Comptime bool
}

// StructDecl is a struct type declaration.
//
// Struct, union, and enum declarations exist in the tree model but are not
// reachable from the current grammar; see the parser documentation.
type StructDecl struct {
	StartPos SourcePos
	Name     string
	Fields   []Field
}

// UnionDecl is a union type declaration.
type UnionDecl struct {
	StartPos SourcePos
	Name     string
	Fields   []Field
}

// Field is a single struct or union field.
type Field struct {
	StartPos SourcePos
	Name     string
	Type     Type
}

// EnumDecl is an enum type declaration.
type EnumDecl struct {
	StartPos SourcePos
	Name     string
	Members  []EnumMember
}

// EnumMember is a single enum member name.
type EnumMember struct {
	StartPos SourcePos
	Name     string
}

func (d *FuncDecl) Pos() SourcePos   { return d.StartPos }
func (d *VarDecl) Pos() SourcePos    { return d.StartPos }
func (d *StructDecl) Pos() SourcePos { return d.StartPos }
func (d *UnionDecl) Pos() SourcePos  { return d.StartPos }
func (d *EnumDecl) Pos() SourcePos   { return d.StartPos }

func (*FuncDecl) declNode()   {}
func (*VarDecl) declNode()    {}
func (*StructDecl) declNode() {}
func (*UnionDecl) declNode()  {}
func (*EnumDecl) declNode()   {}

var (
	_ Decl = (*FuncDecl)(nil)
	_ Decl = (*VarDecl)(nil)
	_ Decl = (*StructDecl)(nil)
	_ Decl = (*UnionDecl)(nil)
	_ Decl = (*EnumDecl)(nil)
)
