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

// Package parser contains the lexer and parser for Mica source.
//
// The two stages are strictly sequential: [Tokenize] turns source text into
// a fully-materialized token sequence, and [Parse] turns that sequence into
// a single-rooted [ast.Program]. Both stages are fail-fast: the first
// unrecognized character or unmet grammar expectation aborts the call with a
// positioned error, so at most one structural diagnostic is ever produced
// per attempt. Batch error collection is the type checker's job, not the
// parser's.
//
// Expression parsing is precedence climbing driven by an explicit
// operator-precedence table; assignment is the only right-associative tier.
//
// The grammar is deliberately narrower than the tree model in package ast:
// pointer, array, and optional type annotations, `for` loops, struct, union,
// and enum declarations, and struct/array literals are constructible in the
// tree but have no surface syntax.
package parser
