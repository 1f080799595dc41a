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

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, Fn, Lookup("fn"))
	assert.Equal(t, While, Lookup("while"))
	assert.Equal(t, I32, Lookup("i32"))
	assert.Equal(t, Ident, Lookup("whiled"))
	assert.Equal(t, Ident, Lookup("Fn"))
	assert.Equal(t, Ident, Lookup(""))
}

func TestClassification(t *testing.T) {
	assert.True(t, Fn.IsKeyword())
	assert.True(t, Void.IsKeyword())
	assert.False(t, Ident.IsKeyword())
	assert.False(t, Plus.IsKeyword())

	assert.True(t, I32.IsPrimitiveType())
	assert.True(t, Void.IsPrimitiveType())
	assert.False(t, Struct.IsPrimitiveType())
	assert.False(t, Ident.IsPrimitiveType())
}

func TestPrecedence(t *testing.T) {
	// Each tier binds strictly tighter than the one before it.
	tiers := [][]Kind{
		{Or},
		{And},
		{Equals, NotEquals},
		{Less, Greater, LessEq, GreaterEq},
		{Plus, Minus},
		{Star, Slash, Percent},
	}
	prev := LowestPrec
	for _, tier := range tiers {
		prec := tier[0].Precedence()
		assert.Greater(t, prec, prev)
		for _, k := range tier {
			assert.Equal(t, prec, k.Precedence(), "kind %s", k)
		}
		prev = prec
	}
	assert.Greater(t, UnaryPrec, prev)
	assert.Greater(t, HighestPrec, UnaryPrec)

	// Non-operators sit outside the table.
	assert.Equal(t, LowestPrec, Ident.Precedence())
	assert.Equal(t, LowestPrec, Assign.Precedence())
	assert.Equal(t, LowestPrec, Bang.Precedence())
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `identifier "count"`, Token{Kind: Ident, Text: "count"}.String())
	assert.Equal(t, `number literal "1.5"`, Token{Kind: Number, Text: "1.5"}.String())
	assert.Equal(t, "+=", Token{Kind: PlusAssign, Text: "+="}.String())
	assert.Equal(t, "end of file", Token{Kind: EOF}.String())
}
