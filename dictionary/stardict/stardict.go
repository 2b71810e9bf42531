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

package stardict

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-waei/dictionary"
	"github.com/ianlewis/go-waei/query"
)

var (
	// ErrStarDict is the parent error for StarDict errors.
	ErrStarDict = errors.New("stardict")

	// ErrExtension indicates a path that is not an .ifo file.
	ErrExtension = fmt.Errorf("%w: bad extension", ErrStarDict)

	// ErrBadMagic indicates an .ifo file with the wrong magic data.
	ErrBadMagic = fmt.Errorf("%w: bad magic data", ErrStarDict)

	// ErrVersion indicates an unsupported dictionary version.
	ErrVersion = fmt.Errorf("%w: unsupported version", ErrStarDict)

	// ErrInvalidIfo indicates missing or malformed metadata.
	ErrInvalidIfo = fmt.Errorf("%w: invalid ifo", ErrStarDict)

	// ErrInvalidType indicates an unknown article data type.
	ErrInvalidType = fmt.Errorf("%w: invalid type", ErrStarDict)

	// ErrNotFound indicates a missing dictionary file.
	ErrNotFound = fmt.Errorf("%w: file not found", ErrStarDict)

	// ErrCorrupt indicates malformed index or article data.
	ErrCorrupt = fmt.Errorf("%w: corrupt data", ErrStarDict)
)

// Column names of StarDict entries.
const (
	WordColumn       = "word"
	ReadingColumn    = "reading"
	DefinitionColumn = "definition"
)

// Options are options for loading dictionaries.
type Options struct {
	// WordLanguage is the language of headwords and readings.
	WordLanguage language.Tag

	// DefinitionLanguage is the language of definitions.
	DefinitionLanguage language.Tag

	// Folder returns a [transform.Transformer] that folds headwords for
	// lookup. See [dictionary.Options].
	Folder func() transform.Transformer

	// Logger receives debug and warning messages. Defaults to
	// [slog.Default].
	Logger *slog.Logger
}

// DefaultOptions is the default options for loading dictionaries.
var DefaultOptions = &Options{
	WordLanguage:       language.Japanese,
	DefinitionLanguage: language.English,
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Columns returns the column layout of StarDict entries.
func Columns(options *Options) []query.Column {
	if options == nil {
		options = DefaultOptions
	}
	return []query.Column{
		{Name: WordColumn, Type: query.ColumnTextArray, Language: options.WordLanguage},
		{Name: ReadingColumn, Type: query.ColumnTextArray, Language: options.WordLanguage},
		{Name: DefinitionColumn, Type: query.ColumnText, Language: options.DefinitionLanguage},
	}
}

// OpenAll opens all dictionaries under a directory. This function will
// return all successfully opened dictionaries along with any errors that
// occurred.
func OpenAll(dir string, options *Options) ([]*dictionary.Dictionary, []error) {
	paths, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "*.{ifo,IFO}"))
	if err != nil {
		return nil, []error{fmt.Errorf("finding dictionaries in %q: %w", dir, err)}
	}

	var dicts []*dictionary.Dictionary
	var errs []error
	for _, path := range paths {
		d, err := Open(path, options)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		dicts = append(dicts, d)
	}
	return dicts, errs
}

// Open loads the dictionary described by the given .ifo file.
func Open(path string, options *Options) (*dictionary.Dictionary, error) {
	if options == nil {
		options = DefaultOptions
	}
	logger := options.logger().With("path", path)

	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".ifo") {
		return nil, fmt.Errorf("%w: %q", ErrExtension, path)
	}
	base := strings.TrimSuffix(path, ext)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	info, err := readIfo(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	words, err := openIdx(base, info.idxoffsetbits)
	if err != nil {
		return nil, err
	}
	if len(words) != info.wordcount {
		return nil, fmt.Errorf("%w: %q: wordcount is %d but index has %d words", ErrCorrupt, path, info.wordcount, len(words))
	}

	synonyms, err := openSyn(base, len(words))
	if err != nil {
		return nil, err
	}

	articles, closeDict, err := openDict(base)
	if err != nil {
		return nil, err
	}
	defer closeDict()

	d, err := dictionary.New(dictionary.Info{
		Name:        info.bookname,
		Author:      info.author,
		Email:       info.email,
		Website:     info.website,
		Description: info.description,
		Version:     info.version,
		Path:        path,
	}, Columns(options), &dictionary.Options{
		Folder: options.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("creating dictionary %q: %w", path, err)
	}

	for i, w := range words {
		article, err := readArticle(articles, w, info.sametypesequence)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		var readings, definitions []string
		for _, a := range article {
			text := a.text()
			switch {
			case text == "":
			case a.isReading():
				readings = append(readings, text)
			default:
				definitions = append(definitions, text)
			}
		}

		var definition []string
		if len(definitions) > 0 {
			definition = []string{strings.Join(definitions, "\n")}
		}

		if _, err := d.Add(append([]string{w.word}, synonyms[i]...), readings, definition); err != nil {
			return nil, fmt.Errorf("adding %q: %w", w.word, err)
		}
	}

	logger.Debug("opened dictionary",
		"name", info.bookname,
		"words", len(words),
		"synonyms", info.synwordcount,
	)
	return d, nil
}

// findFile returns the first existing file named base plus one of exts.
func findFile(base string, exts []string) string {
	for _, ext := range exts {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext
		}
	}
	return ""
}

// openCompressed opens path and decompresses it if it is gzipped.
func openCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		return f, nil
	}

	z, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return &gzipFile{Reader: z, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if fErr := g.f.Close(); err == nil {
		err = fErr
	}
	return err
}

func openIdx(base string, offsetBits int) ([]idxWord, error) {
	path := findFile(base, []string{".idx", ".idx.gz", ".IDX", ".IDX.gz", ".IDX.GZ"})
	if path == "" {
		return nil, fmt.Errorf("%w: no index for %q", ErrNotFound, base)
	}

	r, err := openCompressed(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	words, err := readIdx(r, offsetBits)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return words, nil
}

// openSyn returns the synonyms of every index word. The .syn file is
// optional.
func openSyn(base string, numWords int) ([][]string, error) {
	synonyms := make([][]string, numWords)

	path := findFile(base, []string{".syn", ".syn.gz", ".SYN", ".SYN.gz", ".SYN.GZ"})
	if path == "" {
		return synonyms, nil
	}

	r, err := openCompressed(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	words, err := readSyn(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	for _, w := range words {
		if int(w.index) >= numWords {
			return nil, fmt.Errorf("%w: %q: synonym %q refers to word %d", ErrCorrupt, path, w.word, w.index)
		}
		synonyms[w.index] = append(synonyms[w.index], w.word)
	}
	return synonyms, nil
}

// openDict opens the article data. The returned function closes it.
func openDict(base string) (io.ReaderAt, func(), error) {
	path := findFile(base, []string{".dict", ".dict.dz", ".DICT", ".DICT.dz", ".DICT.DZ"})
	if path == "" {
		return nil, nil, fmt.Errorf("%w: no dict for %q", ErrNotFound, base)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".dz") {
		return f, func() { f.Close() }, nil
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return z, func() {
		z.Close()
		f.Close()
	}, nil
}
