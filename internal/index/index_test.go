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
	"testing"

	"github.com/google/go-cmp/cmp"
)

type word struct {
	headword string
	synonyms []string
}

func keys(w word) []string {
	return append([]string{w.headword}, w.synonyms...)
}

var words = []word{
	{headword: "ねこ", synonyms: []string{"猫"}},
	{headword: "にほん", synonyms: []string{"日本", "にっぽん"}},
	{headword: "にほんご", synonyms: []string{"日本語"}},
	{headword: "いぬ", synonyms: []string{"犬"}},
	{headword: "にほん"},
}

func headwords(ws []word) []string {
	var result []string
	for _, w := range ws {
		result = append(result, w.headword)
	}
	return result
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected []int
	}{
		{
			name:     "single result",
			query:    "ねこ",
			expected: []int{0},
		},
		{
			name:     "synonym",
			query:    "日本",
			expected: []int{1},
		},
		{
			name:     "multiple results",
			query:    "にほん",
			expected: []int{1, 4},
		},
		{
			name:     "no results",
			query:    "ほん",
			expected: nil,
		},
	}

	idx := New(words, keys)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var want []string
			for _, i := range test.expected {
				want = append(want, words[i].headword)
			}
			if diff := cmp.Diff(want, headwords(idx.Search(test.query))); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_SearchPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		prefix   string
		expected []int
	}{
		{
			name:     "prefix",
			prefix:   "にほ",
			expected: []int{1, 2, 4},
		},
		{
			name:     "deduplicated",
			prefix:   "に",
			expected: []int{1, 2, 4},
		},
		{
			name:     "synonym prefix",
			prefix:   "日本",
			expected: []int{1, 2},
		},
		{
			name:     "whole key",
			prefix:   "いぬ",
			expected: []int{3},
		},
		{
			name:     "no results",
			prefix:   "ほ",
			expected: nil,
		},
	}

	idx := New(words, keys)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var want []string
			for _, i := range test.expected {
				want = append(want, words[i].headword)
			}
			if diff := cmp.Diff(want, headwords(idx.SearchPrefix(test.prefix))); diff != "" {
				t.Fatalf("SearchPrefix (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Len(t *testing.T) {
	t.Parallel()

	if got, want := New(words, keys).Len(), 10; got != want {
		t.Fatalf("Len: got: %d, want: %d", got, want)
	}
}
