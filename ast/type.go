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

import "github.com/micalang/micacompile/token"

// Type is the type-annotation family.
//
// The grammar's type-annotation entry point only produces [PrimitiveType]
// and [NamedType]; [ErrorUnionType] additionally appears when a function
// return type carries the `!` marker. Pointer, array, and optional types are
// constructible in the tree but have no surface syntax.
type Type interface {
	Node
	typeNode()
}

// PrimitiveType is one of the primitive type keywords.
type PrimitiveType struct {
	StartPos SourcePos
	Kind     token.Kind // I32, I64, U32, F32, F64, Bool, or Void
}

// NamedType is a type referenced by identifier.
type NamedType struct {
	StartPos SourcePos
	Name     string
}

// PointerType is a pointer to an element type.
type PointerType struct {
	StartPos SourcePos
	Elem     Type
}

// ArrayType is a fixed-length array type. Len may be nil for an
// unknown-length array.
type ArrayType struct {
	StartPos SourcePos
	Len      Expr
	Elem     Type
}

// ErrorUnionType is an error union of a payload type, written `!T` in
// function return position.
type ErrorUnionType struct {
	StartPos SourcePos
	Payload  Type
}

// OptionalType is an optional of an element type.
type OptionalType struct {
	StartPos SourcePos
	Elem     Type
}

func (t *PrimitiveType) Pos() SourcePos  { return t.StartPos }
func (t *NamedType) Pos() SourcePos      { return t.StartPos }
func (t *PointerType) Pos() SourcePos    { return t.StartPos }
func (t *ArrayType) Pos() SourcePos      { return t.StartPos }
func (t *ErrorUnionType) Pos() SourcePos { return t.StartPos }
func (t *OptionalType) Pos() SourcePos   { return t.StartPos }

func (*PrimitiveType) typeNode()  {}
func (*NamedType) typeNode()      {}
func (*PointerType) typeNode()    {}
func (*ArrayType) typeNode()      {}
func (*ErrorUnionType) typeNode() {}
func (*OptionalType) typeNode()   {}

var (
	_ Type = (*PrimitiveType)(nil)
	_ Type = (*NamedType)(nil)
	_ Type = (*PointerType)(nil)
	_ Type = (*ArrayType)(nil)
	_ Type = (*ErrorUnionType)(nil)
	_ Type = (*OptionalType)(nil)
)
