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

// Package micacompile provides the front end of a compiler for the Mica
// language: lexing, parsing, semantic analysis, and canonical source
// generation.
//
// The sub-packages implement the individual stages and can be used directly
// for finer control:
//
//   - [github.com/micalang/micacompile/parser] turns source text into tokens
//     and tokens into a tree.
//   - [github.com/micalang/micacompile/checker] validates a parsed program
//     and reports every semantic error it finds.
//   - [github.com/micalang/micacompile/printer] renders a tree back into
//     canonical source text.
//   - [github.com/micalang/micacompile/ast] and
//     [github.com/micalang/micacompile/walk] define the tree and its
//     traversal.
//
// This package ties the stages together. [Analyze] and [Format] run the full
// pipeline over one source text; [Compiler] does the same for a batch of
// sources with bounded parallelism.
package micacompile
