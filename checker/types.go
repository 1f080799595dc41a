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

package checker

import (
	"fmt"
	"strings"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/token"
)

// TypeKind discriminates the checker's semantic types.
type TypeKind int

const (
	// Invalid is the type of expressions whose type could not be
	// determined. It is compatible with everything so that one error does
	// not cascade into a chain of follow-ups.
	Invalid TypeKind = iota

	I32
	I64
	U32
	F32
	F64
	Bool
	Void
	String

	// UntypedInt and UntypedFloat are the types of numeric literals before
	// context fixes them to a concrete type.
	UntypedInt
	UntypedFloat

	Named
	Func
	Pointer
	Array
	Optional
	ErrorUnion
)

// Type is the checker's semantic representation of a Mica type. Types are
// compared structurally; named types nominally by name.
type Type struct {
	Kind TypeKind
	Name string // Named only

	Elem *Type // Pointer, Array, Optional, ErrorUnion payload

	Params []*Type // Func only
	Result *Type   // Func only
}

var (
	typInvalid      = &Type{Kind: Invalid}
	typBool         = &Type{Kind: Bool}
	typVoid         = &Type{Kind: Void}
	typString       = &Type{Kind: String}
	typUntypedInt   = &Type{Kind: UntypedInt}
	typUntypedFloat = &Type{Kind: UntypedFloat}
)

var primitiveTypes = map[token.Kind]*Type{
	token.I32:  {Kind: I32},
	token.I64:  {Kind: I64},
	token.U32:  {Kind: U32},
	token.F32:  {Kind: F32},
	token.F64:  {Kind: F64},
	token.Bool: typBool,
	token.Void: typVoid,
}

func (t *Type) String() string {
	switch t.Kind {
	case Invalid:
		return "<invalid>"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U32:
		return "u32"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case String:
		return "string"
	case UntypedInt:
		return "integer literal"
	case UntypedFloat:
		return "float literal"
	case Named:
		return t.Name
	case Pointer:
		return "*" + t.Elem.String()
	case Array:
		return "[]" + t.Elem.String()
	case Optional:
		return "?" + t.Elem.String()
	case ErrorUnion:
		return "!" + t.Elem.String()
	case Func:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return fmt.Sprintf("fn(%s) %s", strings.Join(params, ", "), t.Result)
	default:
		panic(fmt.Sprintf("checker: unknown type kind %d", t.Kind))
	}
}

// IsInvalid reports whether the type is the error-suppressing placeholder.
func (t *Type) IsInvalid() bool { return t.Kind == Invalid }

// IsNumeric reports whether the type supports arithmetic.
func (t *Type) IsNumeric() bool {
	switch t.Kind {
	case I32, I64, U32, F32, F64, UntypedInt, UntypedFloat:
		return true
	}
	return false
}

// IsFloat reports whether the type is a floating-point type.
func (t *Type) IsFloat() bool {
	switch t.Kind {
	case F32, F64, UntypedFloat:
		return true
	}
	return false
}

// isUntyped reports whether the type is an unfixed literal type.
func (t *Type) isUntyped() bool {
	return t.Kind == UntypedInt || t.Kind == UntypedFloat
}

// defaultType fixes an untyped literal to its default concrete type:
// i32 for integer literals, f64 for float literals.
func defaultType(t *Type) *Type {
	switch t.Kind {
	case UntypedInt:
		return primitiveTypes[token.I32]
	case UntypedFloat:
		return primitiveTypes[token.F64]
	default:
		return t
	}
}

// assignable reports whether a value of type src can be used where dst is
// expected. Invalid is compatible with everything; untyped integer literals
// fit any numeric type and untyped float literals any float type. Error
// unions compare by payload (full error-set semantics are out of scope).
func assignable(dst, src *Type) bool {
	if dst.IsInvalid() || src.IsInvalid() {
		return true
	}
	if dst.Kind == ErrorUnion {
		return assignable(dst.Elem, src)
	}
	if src.Kind == ErrorUnion {
		return assignable(dst, src.Elem)
	}
	switch src.Kind {
	case UntypedInt:
		return dst.IsNumeric() || dst.isUntyped()
	case UntypedFloat:
		return dst.IsFloat() || dst.Kind == UntypedFloat
	}
	if dst.isUntyped() {
		return assignable(src, dst)
	}
	if dst.Kind != src.Kind {
		return false
	}
	switch dst.Kind {
	case Named:
		return dst.Name == src.Name
	case Pointer, Array, Optional:
		return assignable(dst.Elem, src.Elem)
	default:
		return true
	}
}

// merge combines the operand types of a binary operator: an untyped literal
// adopts the other side's type; equal types stay put. Returns nil when the
// operands are incompatible.
func merge(a, b *Type) *Type {
	if a.IsInvalid() || b.IsInvalid() {
		return typInvalid
	}
	if a.isUntyped() && b.isUntyped() {
		// Mixed literals adopt the float side.
		if a.Kind == UntypedFloat {
			return a
		}
		return b
	}
	if a.isUntyped() {
		if assignable(b, a) {
			return b
		}
		return nil
	}
	if b.isUntyped() {
		if assignable(a, b) {
			return a
		}
		return nil
	}
	if assignable(a, b) {
		return a
	}
	return nil
}

// resolveType converts a syntactic type annotation into a semantic type.
// Named types are nominal; there is no declaration check because type
// declarations have no surface syntax.
func resolveType(t ast.Type) *Type {
	switch t := t.(type) {
	case *ast.PrimitiveType:
		return primitiveTypes[t.Kind]
	case *ast.NamedType:
		return &Type{Kind: Named, Name: t.Name}
	case *ast.PointerType:
		return &Type{Kind: Pointer, Elem: resolveType(t.Elem)}
	case *ast.ArrayType:
		return &Type{Kind: Array, Elem: resolveType(t.Elem)}
	case *ast.OptionalType:
		return &Type{Kind: Optional, Elem: resolveType(t.Elem)}
	case *ast.ErrorUnionType:
		return &Type{Kind: ErrorUnion, Elem: resolveType(t.Payload)}
	default:
		panic(fmt.Sprintf("checker: unknown type annotation %T", t))
	}
}
