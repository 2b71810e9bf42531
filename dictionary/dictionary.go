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

// Package dictionary implements in-memory dictionaries of records that can
// be searched with queries.
package dictionary

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-waei/internal/folding"
	"github.com/ianlewis/go-waei/internal/index"
	"github.com/ianlewis/go-waei/query"
)

var (
	// ErrDictionary is the parent error for dictionary errors.
	ErrDictionary = errors.New("dictionary")

	// ErrColumnCount indicates an entry whose number of columns differs from
	// the dictionary's.
	ErrColumnCount = fmt.Errorf("%w: wrong number of columns", ErrDictionary)

	// ErrNoColumns indicates a dictionary without columns.
	ErrNoColumns = fmt.Errorf("%w: no columns", ErrDictionary)
)

// Info is descriptive information about a dictionary.
type Info struct {
	// Name is the dictionary's name.
	Name string

	// Author is the dictionary's author.
	Author string

	// Email is the author's contact email.
	Email string

	// Website is the dictionary's website url.
	Website string

	// Description is the dictionary's description.
	Description string

	// Version is the version of the dictionary's source format.
	Version string

	// Path is the file the dictionary was loaded from, if any.
	Path string
}

// Options are options for a Dictionary.
type Options struct {
	// Folder returns a [transform.Transformer] that folds headwords and
	// lookup keys (e.g. case folding, kana folding, etc.).
	Folder func() transform.Transformer

	// SearchLanguages are the languages of the columns searched by query
	// terms without a key. If empty the languages of all columns are used.
	SearchLanguages []language.Tag
}

// DefaultOptions is the default options for a Dictionary.
var DefaultOptions = &Options{
	Folder: folding.Headword,
}

// Dictionary is an in-memory list of entries sharing one column layout. It
// is safe for concurrent use.
type Dictionary struct {
	info      Info
	columns   []query.Column
	languages []language.Tag
	folder    func() transform.Transformer

	mu      sync.RWMutex
	entries []*Entry

	// index is built on the first lookup and dropped when entries are
	// added.
	index *index.Index[*Entry]
}

// New returns an empty dictionary with the given columns.
func New(info Info, columns []query.Column, options *Options) (*Dictionary, error) {
	if options == nil {
		options = DefaultOptions
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoColumns, info.Name)
	}

	folder := options.Folder
	if folder == nil {
		folder = DefaultOptions.Folder
	}

	languages := options.SearchLanguages
	if len(languages) == 0 {
		for _, c := range columns {
			if c.Language != language.Und {
				languages = append(languages, c.Language)
			}
		}
	}

	return &Dictionary{
		info:      info,
		columns:   append([]query.Column(nil), columns...),
		languages: languages,
		folder:    folder,
	}, nil
}

// Info returns the dictionary's descriptive information.
func (d *Dictionary) Info() Info {
	return d.info
}

// Name returns the dictionary's name.
func (d *Dictionary) Name() string {
	return d.info.Name
}

// Columns returns the dictionary's column layout.
func (d *Dictionary) Columns() []query.Column {
	return append([]query.Column(nil), d.columns...)
}

// SearchLanguages returns the languages searched by terms without a key.
func (d *Dictionary) SearchLanguages() []language.Tag {
	return d.languages
}

// Add adds an entry to the dictionary. values holds the candidate strings
// of each column.
func (d *Dictionary) Add(values ...[]string) (*Entry, error) {
	if len(values) != len(d.columns) {
		return nil, fmt.Errorf("%w: %q: got %d, want %d", ErrColumnCount, d.info.Name, len(values), len(d.columns))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	e := &Entry{
		dict:   d,
		id:     len(d.entries),
		values: values,
	}
	d.entries = append(d.entries, e)
	d.index = nil
	return e, nil
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Entries returns the dictionary's entries in the order they were added.
func (d *Dictionary) Entries() []*Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*Entry(nil), d.entries...)
}

// Lookup returns the entries with a headword equal to word after folding.
// Headwords are the values of the dictionary's text-array columns.
func (d *Dictionary) Lookup(word string) ([]*Entry, error) {
	key, err := d.fold(word)
	if err != nil {
		return nil, err
	}
	return d.getIndex().Search(key), nil
}

// LookupPrefix returns the entries with a headword starting with prefix
// after folding.
func (d *Dictionary) LookupPrefix(prefix string) ([]*Entry, error) {
	key, err := d.fold(prefix)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, nil
	}
	return d.getIndex().SearchPrefix(key), nil
}

func (d *Dictionary) getIndex() *index.Index[*Entry] {
	d.mu.RLock()
	idx := d.index
	d.mu.RUnlock()
	if idx != nil {
		return idx
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.index == nil {
		d.index = index.New(d.entries, d.headwords)
	}
	return d.index
}

// headwords returns the folded lookup keys of e.
func (d *Dictionary) headwords(e *Entry) []string {
	var keys []string
	for i, c := range d.columns {
		if c.Type != query.ColumnTextArray {
			continue
		}
		for _, v := range e.values[i] {
			k, err := d.fold(v)
			if err != nil || k == "" {
				continue
			}
			keys = append(keys, k)
		}
	}
	return keys
}

func (d *Dictionary) fold(s string) (string, error) {
	folded, _, err := transform.String(d.folder(), s)
	if err != nil {
		return "", fmt.Errorf("%w: folding %q: %w", ErrDictionary, s, err)
	}
	return folded, nil
}
