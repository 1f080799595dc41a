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

// Package interval provides an ordered map from disjoint closed intervals
// to values.
package interval

import (
	"fmt"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Map maps disjoint closed intervals with endpoints in K to values of type
// V. A zero value is ready to use.
type Map[K constraints.Ordered, V any] struct {
	// Keys are the ends of the intervals in the map.
	tree btree.Map[K, *entry[K, V]]
}

type entry[K constraints.Ordered, V any] struct {
	start K
	value V
}

// Insert adds the interval [start, end] with its value. Both endpoints are
// inclusive. Returns false without modifying the map if the interval
// overlaps one already present.
func (m *Map[K, V]) Insert(start, end K, value V) bool {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}
	// Overlap iff the interval with the least end >= start begins at or
	// before end.
	overlap := false
	m.tree.Ascend(start, func(_ K, e *entry[K, V]) bool {
		overlap = e.start <= end
		return false
	})
	if overlap {
		return false
	}
	m.tree.Set(end, &entry[K, V]{start: start, value: value})
	return true
}

// Get looks up the interval containing key. The second result is false if
// no interval contains it.
func (m *Map[K, V]) Get(key K) (v V, ok bool) {
	m.tree.Ascend(key, func(_ K, e *entry[K, V]) bool {
		if e.start <= key {
			v, ok = e.value, true
		}
		return false
	})
	return v, ok
}

// Len returns the number of intervals in the map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Scan visits every interval in ascending order until fn returns false.
func (m *Map[K, V]) Scan(fn func(start, end K, value V) bool) {
	m.tree.Scan(func(end K, e *entry[K, V]) bool {
		return fn(e.start, end, e.value)
	})
}
