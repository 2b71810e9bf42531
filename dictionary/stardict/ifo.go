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
	"fmt"
	"io"
	"strconv"
	"strings"
)

const ifoMagic = "StarDict's dict ifo file"

// ifo is the metadata of a dictionary.
type ifo struct {
	version          string
	bookname         string
	wordcount        int
	synwordcount     int
	idxfilesize      int64
	idxoffsetbits    int
	author           string
	email            string
	website          string
	description      string
	sametypesequence []DataType
}

// readIfo parses and validates .ifo data.
func readIfo(r io.Reader) (*ifo, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading magic: %w", err)
		}
		return nil, fmt.Errorf("%w: empty file", ErrBadMagic)
	}
	if magic := strings.TrimPrefix(strings.TrimSpace(s.Text()), "\ufeff"); magic != ifoMagic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	metadata := map[string]string{}
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: invalid line %q", ErrInvalidIfo, line)
		}
		metadata[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	i := &ifo{
		version:       metadata["version"],
		bookname:      metadata["bookname"],
		idxoffsetbits: 32,
		author:        metadata["author"],
		email:         metadata["email"],
		website:       metadata["website"],
		description:   metadata["description"],
	}

	switch i.version {
	case "2.4.2", "3.0.0":
	default:
		return nil, fmt.Errorf("%w: %q", ErrVersion, i.version)
	}

	if i.bookname == "" {
		return nil, fmt.Errorf("%w: missing bookname", ErrInvalidIfo)
	}

	var err error
	i.wordcount, err = strconv.Atoi(metadata["wordcount"])
	if err != nil {
		return nil, fmt.Errorf("%w: bad wordcount: %w", ErrInvalidIfo, err)
	}

	if v := metadata["synwordcount"]; v != "" {
		i.synwordcount, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: bad synwordcount: %w", ErrInvalidIfo, err)
		}
	}

	i.idxfilesize, err = strconv.ParseInt(metadata["idxfilesize"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad idxfilesize: %w", ErrInvalidIfo, err)
	}

	// idxoffsetbits is only valid for version 3.0.0.
	if v := metadata["idxoffsetbits"]; v != "" && i.version == "3.0.0" {
		i.idxoffsetbits, err = strconv.Atoi(v)
		if err != nil || (i.idxoffsetbits != 32 && i.idxoffsetbits != 64) {
			return nil, fmt.Errorf("%w: bad idxoffsetbits %q", ErrInvalidIfo, v)
		}
	}

	for _, r := range metadata["sametypesequence"] {
		t := DataType(r)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidType, r)
		}
		i.sametypesequence = append(i.sametypesequence, t)
	}

	return i, nil
}
