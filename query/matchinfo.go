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
	"slices"
	"strings"
)

// MatchMarker marks one occurrence of a pattern in a column value.
type MatchMarker struct {
	// Value is the index of the value in the column.
	Value int

	// Start and End are the byte offsets of the occurrence in the value.
	Start, End int

	// Pattern is the pattern that matched.
	Pattern string
}

// Span is a matched substring of a column value.
type Span struct {
	// Value is the index of the value in the column.
	Value int

	// Text is the matched substring.
	Text string

	// Start and End are the byte offsets of Text in the value.
	Start, End int
}

// ColumnMatchInfo records where patterns matched in one column.
type ColumnMatchInfo struct {
	// Column is the index of the column in the record.
	Column int

	// Values are the column's values.
	Values []string

	// Markers holds one marker per pattern occurrence, in match order.
	Markers []MatchMarker
}

// Spans returns the matched substrings ordered by value and position.
func (c *ColumnMatchInfo) Spans() []Span {
	spans := make([]Span, 0, len(c.Markers))
	for _, m := range c.Markers {
		spans = append(spans, Span{
			Value: m.Value,
			Text:  c.Values[m.Value][m.Start:m.End],
			Start: m.Start,
			End:   m.End,
		})
	}
	slices.SortStableFunc(spans, func(a, b Span) int {
		if a.Value != b.Value {
			return a.Value - b.Value
		}
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
	return spans
}

// Highlight returns the given value with every matched region wrapped in
// open and close. Overlapping regions are merged.
func (c *ColumnMatchInfo) Highlight(value int, open, close string) string {
	s := c.Values[value]

	var regions [][2]int
	for _, sp := range c.Spans() {
		if sp.Value != value || sp.Start == sp.End {
			continue
		}
		if l := len(regions); l > 0 && sp.Start <= regions[l-1][1] {
			regions[l-1][1] = max(regions[l-1][1], sp.End)
			continue
		}
		regions = append(regions, [2]int{sp.Start, sp.End})
	}

	var b strings.Builder
	last := 0
	for _, r := range regions {
		b.WriteString(s[last:r[0]])
		b.WriteString(open)
		b.WriteString(s[r[0]:r[1]])
		b.WriteString(close)
		last = r[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// MatchInfo records where a query matched a record. A MatchInfo belongs to a
// single match and must not be shared between concurrent matches.
type MatchInfo struct {
	columns map[int]*ColumnMatchInfo
}

// NewMatchInfo returns an empty MatchInfo.
func NewMatchInfo() *MatchInfo {
	return &MatchInfo{
		columns: map[int]*ColumnMatchInfo{},
	}
}

// Column returns the match information for the i'th column or nil if
// nothing matched in the column.
func (m *MatchInfo) Column(i int) *ColumnMatchInfo {
	return m.columns[i]
}

// Columns returns the indexes of the columns with matches in ascending order.
func (m *MatchInfo) Columns() []int {
	var cols []int
	for i := range m.columns {
		cols = append(cols, i)
	}
	slices.Sort(cols)
	return cols
}

// Len returns the total number of markers.
func (m *MatchInfo) Len() int {
	n := 0
	for _, c := range m.columns {
		n += len(c.Markers)
	}
	return n
}

func (m *MatchInfo) add(column int, values []string, marker MatchMarker) {
	c, ok := m.columns[column]
	if !ok {
		c = &ColumnMatchInfo{
			Column: column,
			Values: values,
		}
		m.columns[column] = c
	}
	c.Markers = append(c.Markers, marker)
}
