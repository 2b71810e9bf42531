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

package query

import (
	"fmt"
	"strings"

	"github.com/ianlewis/go-waei/internal/folding"
)

// Match reports whether the compiled tree matches r. If info is not nil
// every occurrence of every matching pattern is recorded in it.
//
// Match panics if the tree was not compiled.
func (n *Node) Match(r Record, info *MatchInfo) bool {
	switch {
	case n.Data != "" && len(n.Children) > 0:
		panic(fmt.Sprintf("query: node %q has both data and children", n.Data))
	case len(n.Children) > 0:
		return n.matchChildren(r, info)
	case n.regex == nil:
		panic(fmt.Sprintf("query: node %q: %v", n.Data, ErrNotCompiled))
	default:
		return n.matchValue(r, info)
	}
}

// matchChildren evaluates every child from left to right. Children are not
// short-circuited so that info records all matches.
func (n *Node) matchChildren(r Record, info *MatchInfo) bool {
	var result bool
	for i, c := range n.Children {
		m := c.Match(r, info)
		switch {
		case i == 0:
			result = m
		case c.Operation == OperationOr:
			result = result || m
		default:
			result = result && m
		}
	}
	return result
}

func (n *Node) matchValue(r Record, info *MatchInfo) bool {
	matched := false
	languages := r.SearchLanguages()
	for i := 0; i < r.NumColumns(); i++ {
		col := r.Column(i)
		if n.Key != "" {
			if !strings.EqualFold(col.Name, n.Key) {
				continue
			}
		} else if !searchable(col, languages) {
			continue
		}

		values := r.Values(i)
		for j := range values {
			if n.matchString(col, i, j, values, info) {
				if info == nil {
					return true
				}
				matched = true
			}
		}

		if n.Key != "" {
			break
		}
	}
	return matched
}

// matchString matches values[value] of the given column.
func (n *Node) matchString(col Column, column, value int, values []string, info *MatchInfo) bool {
	s := values[value]
	if n.flags&FlagFuriganaInsensitive != 0 {
		// Kana folding keeps byte offsets intact.
		s = folding.KanaString(s)
	}

	re := n.regex
	if col.Type == ColumnOrdinal {
		re = n.anchored
	}

	if info == nil {
		ok, err := re.MatchString(s)
		return err == nil && ok
	}

	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return false
	}
	offsets := runeOffsets(s)
	for m != nil {
		info.add(column, values, MatchMarker{
			Value:   value,
			Start:   offsets[m.Index],
			End:     offsets[m.Index+m.Length],
			Pattern: n.regex.String(),
		})
		m, err = re.FindNextMatch(m)
		if err != nil {
			break
		}
	}
	return true
}

// runeOffsets returns the byte offset of every rune in s followed by len(s).
// regexp2 reports positions in runes.
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
