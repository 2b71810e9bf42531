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
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// idxWord is an .idx file entry.
type idxWord struct {
	word   string
	offset uint64
	size   uint32
}

// synWord is a .syn file entry.
type synWord struct {
	word string

	// index is the position of the original word in the .idx file.
	index uint32
}

// scanner scans .idx and .syn files. Both are lists of null terminated
// words each followed by a fixed size trailer.
type scanner struct {
	s       *bufio.Scanner
	trailer int
}

func newScanner(r io.Reader, trailer int) *scanner {
	s := &scanner{
		s:       bufio.NewScanner(bufio.NewReader(r)),
		trailer: trailer,
	}
	s.s.Split(s.split)
	return s
}

// split splits an entry in the file.
func (s *scanner) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte.
		tokenSize := i + 1 + s.trailer
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return 0, nil, fmt.Errorf("%w: truncated entry", ErrCorrupt)
	}

	// Request more data.
	return 0, nil, nil
}

// next returns the next word and its trailer.
func (s *scanner) next() (string, []byte, bool) {
	if !s.s.Scan() {
		return "", nil, false
	}
	b := s.s.Bytes()
	i := bytes.IndexByte(b, 0)
	return string(b[:i]), b[i+1:], true
}

func (s *scanner) err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// readIdx reads every entry of an .idx file.
func readIdx(r io.Reader, offsetBits int) ([]idxWord, error) {
	offsetSize := offsetBits / 8
	s := newScanner(r, offsetSize+4)

	var words []idxWord
	for {
		word, trailer, ok := s.next()
		if !ok {
			break
		}
		w := idxWord{
			word: word,
			size: binary.BigEndian.Uint32(trailer[offsetSize:]),
		}
		if offsetBits == 64 {
			w.offset = binary.BigEndian.Uint64(trailer)
		} else {
			w.offset = uint64(binary.BigEndian.Uint32(trailer))
		}
		words = append(words, w)
	}
	if err := s.err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}
	return words, nil
}

// readSyn reads every entry of a .syn file.
func readSyn(r io.Reader) ([]synWord, error) {
	s := newScanner(r, 4)

	var words []synWord
	for {
		word, trailer, ok := s.next()
		if !ok {
			break
		}
		words = append(words, synWord{
			word:  word,
			index: binary.BigEndian.Uint32(trailer),
		})
	}
	if err := s.err(); err != nil {
		return nil, fmt.Errorf("scanning synonyms: %w", err)
	}
	return words, nil
}
