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

package dictionary

import (
	"golang.org/x/text/language"

	"github.com/ianlewis/go-waei/query"
)

// Entry is a dictionary entry. Entry implements [query.Record].
type Entry struct {
	dict   *Dictionary
	id     int
	values [][]string
}

// Dictionary returns the dictionary the entry belongs to.
func (e *Entry) Dictionary() *Dictionary {
	return e.dict
}

// ID returns the position of the entry in its dictionary.
func (e *Entry) ID() int {
	return e.id
}

// Headword returns the first value of the first column.
func (e *Entry) Headword() string {
	if len(e.values) == 0 || len(e.values[0]) == 0 {
		return ""
	}
	return e.values[0][0]
}

// NumColumns implements [query.Record.NumColumns].
func (e *Entry) NumColumns() int {
	return len(e.dict.columns)
}

// Column implements [query.Record.Column].
func (e *Entry) Column(i int) query.Column {
	return e.dict.columns[i]
}

// Values implements [query.Record.Values].
func (e *Entry) Values(i int) []string {
	return e.values[i]
}

// SearchLanguages implements [query.Record.SearchLanguages].
func (e *Entry) SearchLanguages() []language.Tag {
	return e.dict.languages
}
