// Copyright 2025 Ian Lewis
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

package index

import (
	"slices"
	"sort"
	"strings"
)

type entry struct {
	key string

	// pos is the position of the value in the original slice.
	pos int
}

// Index is a generic sorted array index. A value may be indexed under
// several keys.
type Index[V any] struct {
	entries []entry
	values  []V
}

// New creates an index over values. keys returns the keys of a value. Keys
// are compared byte-wise so callers fold them before indexing and
// searching.
func New[V any](values []V, keys func(V) []string) *Index[V] {
	var entries []entry
	for i, v := range values {
		for _, k := range keys(v) {
			entries = append(entries, entry{key: k, pos: i})
		}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})

	return &Index[V]{
		entries: entries,
		values:  values,
	}
}

// Len returns the number of keys in the index.
func (idx *Index[V]) Len() int {
	return len(idx.entries)
}

// Search performs a binary search over the index and returns the values
// with the given key in their original order.
func (idx *Index[V]) Search(key string) []V {
	i := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].key >= key
	})

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.entries) && idx.entries[j].key == key; j++ {
	}
	return idx.collect(i, j)
}

// SearchPrefix returns the values with a key starting with prefix in their
// original order.
func (idx *Index[V]) SearchPrefix(prefix string) []V {
	i := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].key >= prefix
	})

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.entries) && strings.HasPrefix(idx.entries[j].key, prefix); j++ {
	}
	return idx.collect(i, j)
}

// collect returns the values of entries[i:j] without duplicates.
func (idx *Index[V]) collect(i, j int) []V {
	if i == j {
		return nil
	}

	var positions []int
	for _, e := range idx.entries[i:j] {
		positions = append(positions, e.pos)
	}
	slices.Sort(positions)
	positions = slices.Compact(positions)

	result := make([]V, 0, len(positions))
	for _, p := range positions {
		result = append(result, idx.values[p])
	}
	return result
}
