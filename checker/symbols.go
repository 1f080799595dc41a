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
	"github.com/micalang/micacompile/ast"
	"github.com/tidwall/btree"
)

// SymbolKind classifies what a name refers to.
type SymbolKind int

const (
	SymbolVar SymbolKind = iota
	SymbolConst
	SymbolParam
	SymbolFunc
	SymbolType
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolConst:
		return "const"
	case SymbolParam:
		return "parameter"
	case SymbolFunc:
		return "function"
	case SymbolType:
		return "type"
	default:
		return "symbol"
	}
}

// Symbol is a declared name.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type *Type
	Pos  ast.SourcePos
}

// Scope is one lexical scope: an ordered symbol table with a link to the
// enclosing scope. Each block introduces a new Scope; a name is visible
// from its point of introduction to the end of its scope, and shadowing an
// outer name is permitted.
type Scope struct {
	parent  *Scope
	symbols btree.Map[string, *Symbol]
}

// NewScope returns a scope nested in parent. A nil parent makes a root
// scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent}
}

// Declare adds a symbol to this scope. If the name is already declared in
// this same scope, the existing symbol is returned and the table is left
// unchanged; shadowing checks only apply within one scope.
func (s *Scope) Declare(sym *Symbol) (existing *Symbol) {
	if prev, ok := s.symbols.Get(sym.Name); ok {
		return prev
	}
	s.symbols.Set(sym.Name, sym)
	return nil
}

// Lookup resolves a name in this scope or any enclosing scope, innermost
// first. Returns nil if the name is not visible.
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols.Get(name); ok {
			return sym
		}
	}
	return nil
}

// Symbols returns the symbols declared directly in this scope, in name
// order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, s.symbols.Len())
	s.symbols.Scan(func(_ string, sym *Symbol) bool {
		out = append(out, sym)
		return true
	})
	return out
}
