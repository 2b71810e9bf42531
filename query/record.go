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
	"golang.org/x/text/language"
)

// ColumnType is the logical type of a record column.
type ColumnType int

const (
	// ColumnTextArray is a column holding several alternative strings, such
	// as a headword and its synonyms.
	ColumnTextArray ColumnType = iota

	// ColumnText is a column holding a single string.
	ColumnText

	// ColumnOrdinal is a column holding a number in its string form. Terms
	// must match the whole value.
	ColumnOrdinal
)

// String returns the name of the column type.
func (t ColumnType) String() string {
	switch t {
	case ColumnTextArray:
		return "text-array"
	case ColumnText:
		return "text"
	case ColumnOrdinal:
		return "ordinal"
	default:
		return "unknown"
	}
}

// Column describes a record column.
type Column struct {
	// Name is the column name used as a query key.
	Name string

	// Type is the column's logical type.
	Type ColumnType

	// Language is the language of the column's text. Columns with an
	// undetermined language are only searched by keyed terms.
	Language language.Tag
}

// Record is a dictionary record a query is matched against.
type Record interface {
	// NumColumns returns the number of columns in the record.
	NumColumns() int

	// Column returns the description of the i'th column.
	Column(i int) Column

	// Values returns the candidate strings of the i'th column.
	Values(i int) []string

	// SearchLanguages returns the languages of the columns that terms
	// without a key are matched against.
	SearchLanguages() []language.Tag
}

// searchable returns true if terms without a key are matched against col.
func searchable(col Column, languages []language.Tag) bool {
	if col.Language == language.Und {
		return false
	}
	base, _ := col.Language.Base()
	for _, l := range languages {
		if b, _ := l.Base(); b == base {
			return true
		}
	}
	return false
}
