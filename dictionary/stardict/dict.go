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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/k3a/html2text"
)

// DataType is a type of data in an article. Lower case characters represent
// string-like data that is terminated by a null terminator ('\0'). Upper
// case characters represent file-like data that starts with a 32-bit size
// followed by file data.
type DataType byte

const (
	// UTFTextType is utf-8 text.
	UTFTextType = DataType('m')

	// LocaleTextType is text in a locale encoding.
	LocaleTextType = DataType('l')

	// PangoTextType is utf-8 text in the Pango text format.
	PangoTextType = DataType('g')

	// PhoneticType is utf-8 text representing an English phonetic string.
	PhoneticType = DataType('t')

	// XDXFType is utf-8 encoded xml in XDXF format.
	XDXFType = DataType('x')

	// YinBiaoOrKanaType is utf-8 encoded Yin Biao or Kana phonetic string.
	YinBiaoOrKanaType = DataType('y')

	// PowerWordType is a utf-8 encoded KingSoft PowerWord XML format.
	PowerWordType = DataType('p')

	// MediaWikiType is utf-8 encoded text in MediaWiki format.
	MediaWikiType = DataType('w')

	// HTMLType is utf-8 encoded HTML text.
	HTMLType = DataType('h')

	// WordNetType is WordNet data.
	WordNetType = DataType('n')

	// ResourceFileListType is a list of files in resource storage.
	ResourceFileListType = DataType('r')

	// WavType is .wav sound file data.
	WavType = DataType('W')

	// PictureType is image file data.
	PictureType = DataType('P')

	// ExperimentalType is reserved for experimental features.
	ExperimentalType = DataType('X')
)

// Valid returns true if t is a known data type.
func (t DataType) Valid() bool {
	switch t {
	case UTFTextType,
		LocaleTextType,
		PangoTextType,
		PhoneticType,
		XDXFType,
		YinBiaoOrKanaType,
		PowerWordType,
		MediaWikiType,
		HTMLType,
		WordNetType,
		ResourceFileListType,
		WavType,
		PictureType,
		ExperimentalType:
		return true
	default:
		return false
	}
}

// isText returns true for string-like data.
func (t DataType) isText() bool {
	return 'a' <= t && t <= 'z'
}

// data is one piece of an article.
type data struct {
	t    DataType
	data []byte
}

// readArticle reads and splits the article of w.
func readArticle(r io.ReaderAt, w idxWord, sametypesequence []DataType) ([]data, error) {
	if w.offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: word offset too large: %d", ErrCorrupt, w.offset)
	}
	b := make([]byte, w.size)
	//nolint:gosec // offset size is bounds checked above.
	n, err := r.ReadAt(b, int64(w.offset))
	// ReadAt may return io.EOF when reading up to the end of the file.
	if err != nil && (!errors.Is(err, io.EOF) || n < len(b)) {
		return nil, fmt.Errorf("reading article %q: %w", w.word, err)
	}

	var article []data
	if len(sametypesequence) > 0 {
		// The types are given by sametypesequence and the last piece has
		// no terminator or size.
		for i, t := range sametypesequence {
			last := i == len(sametypesequence)-1
			var d []byte
			d, b, err = splitData(b, t, last)
			if err != nil {
				return nil, fmt.Errorf("%w: article %q: %w", ErrCorrupt, w.word, err)
			}
			article = append(article, data{t: t, data: d})
		}
		return article, nil
	}

	for len(b) > 0 {
		t := DataType(b[0])
		if !t.Valid() {
			return nil, fmt.Errorf("%w: article %q: %q", ErrInvalidType, w.word, b[0])
		}
		var d []byte
		d, b, err = splitData(b[1:], t, false)
		if err != nil {
			return nil, fmt.Errorf("%w: article %q: %w", ErrCorrupt, w.word, err)
		}
		article = append(article, data{t: t, data: d})
	}
	return article, nil
}

// splitData splits the data of type t from the front of b.
func splitData(b []byte, t DataType, last bool) ([]byte, []byte, error) {
	if t.isText() {
		if i := bytes.IndexByte(b, 0); i >= 0 {
			return b[:i], b[i+1:], nil
		}
		// The terminator may be missing at the end of the article.
		return b, nil, nil
	}

	if last {
		return b, nil, nil
	}
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("missing size for %q data", byte(t))
	}
	size := binary.BigEndian.Uint32(b)
	if uint64(size) > uint64(len(b)-4) {
		return nil, nil, fmt.Errorf("%q data too large: %d", byte(t), size)
	}
	return b[4 : 4+size], b[4+size:], nil
}

// text returns the article data as plain text. Markup is rendered to text.
// File-like data has no text.
func (d data) text() string {
	switch d.t {
	case HTMLType, PangoTextType, XDXFType, PowerWordType:
		return strings.TrimSpace(html2text.HTML2Text(string(d.data)))
	case ResourceFileListType:
		return ""
	}
	if !d.t.isText() {
		return ""
	}
	return strings.TrimSpace(string(d.data))
}

// isReading returns true for phonetic data.
func (d data) isReading() bool {
	return d.t == PhoneticType || d.t == YinBiaoOrKanaType
}
