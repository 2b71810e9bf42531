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

package stardict_test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"

	"github.com/ianlewis/go-waei/dictionary"
	"github.com/ianlewis/go-waei/dictionary/stardict"
)

type testData struct {
	t    stardict.DataType
	data string
}

type testWord struct {
	word     string
	synonyms []string
	data     []testData
}

type makeOptions struct {
	// version defaults to 3.0.0.
	version          string
	bookname         string
	offsetBits       int
	sametypesequence string
	gzip             bool
	dictzip          bool
}

// makeDict writes a dictionary named "test" in dir and returns the path to
// its .ifo file.
func makeDict(t *testing.T, dir string, words []testWord, opts makeOptions) string {
	t.Helper()

	if opts.version == "" {
		opts.version = "3.0.0"
	}
	if opts.bookname == "" {
		opts.bookname = "Test Dictionary"
	}
	if opts.offsetBits == 0 {
		opts.offsetBits = 32
	}

	var dict, idx, syn []byte
	synCount := 0
	for i, w := range words {
		offset := len(dict)
		for j, d := range w.data {
			last := j == len(w.data)-1
			if opts.sametypesequence == "" {
				dict = append(dict, byte(d.t))
			}
			if 'a' <= d.t && d.t <= 'z' {
				dict = append(dict, d.data...)
				if opts.sametypesequence == "" || !last {
					dict = append(dict, 0)
				}
			} else {
				if opts.sametypesequence == "" || !last {
					dict = binary.BigEndian.AppendUint32(dict, uint32(len(d.data)))
				}
				dict = append(dict, d.data...)
			}
		}

		idx = append(idx, w.word...)
		idx = append(idx, 0)
		if opts.offsetBits == 64 {
			idx = binary.BigEndian.AppendUint64(idx, uint64(offset))
		} else {
			idx = binary.BigEndian.AppendUint32(idx, uint32(offset))
		}
		idx = binary.BigEndian.AppendUint32(idx, uint32(len(dict)-offset))

		for _, s := range w.synonyms {
			syn = append(syn, s...)
			syn = append(syn, 0)
			syn = binary.BigEndian.AppendUint32(syn, uint32(i))
			synCount++
		}
	}

	base := filepath.Join(dir, "test")

	var ifo strings.Builder
	fmt.Fprintln(&ifo, "StarDict's dict ifo file")
	fmt.Fprintf(&ifo, "version=%s\n", opts.version)
	if opts.bookname != "-" {
		fmt.Fprintf(&ifo, "bookname=%s\n", opts.bookname)
	}
	fmt.Fprintf(&ifo, "wordcount=%d\n", len(words))
	fmt.Fprintf(&ifo, "idxfilesize=%d\n", len(idx))
	fmt.Fprintf(&ifo, "idxoffsetbits=%d\n", opts.offsetBits)
	fmt.Fprintln(&ifo, "author=Ian Lewis")
	fmt.Fprintln(&ifo, "description=A test dictionary.")
	if synCount > 0 {
		fmt.Fprintf(&ifo, "synwordcount=%d\n", synCount)
	}
	if opts.sametypesequence != "" {
		fmt.Fprintf(&ifo, "sametypesequence=%s\n", opts.sametypesequence)
	}
	writeFile(t, base+".ifo", []byte(ifo.String()))

	if opts.gzip {
		writeFile(t, base+".idx.gz", gzipData(t, idx))
		if synCount > 0 {
			writeFile(t, base+".syn.gz", gzipData(t, syn))
		}
	} else {
		writeFile(t, base+".idx", idx)
		if synCount > 0 {
			writeFile(t, base+".syn", syn)
		}
	}

	if opts.dictzip {
		f, err := os.Create(base + ".dict.dz")
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(dict); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	} else {
		writeFile(t, base+".dict", dict)
	}

	return base + ".ifo"
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}

func gzipData(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf strings.Builder
	z := gzip.NewWriter(&buf)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return []byte(buf.String())
}

var testWords = []testWord{
	{
		word:     "日本",
		synonyms: []string{"にっぽん"},
		data: []testData{
			{t: stardict.YinBiaoOrKanaType, data: "にほん"},
			{t: stardict.UTFTextType, data: "Japan"},
		},
	},
	{
		word: "猫",
		data: []testData{
			{t: stardict.YinBiaoOrKanaType, data: "ねこ"},
			{t: stardict.UTFTextType, data: "cat"},
		},
	},
}

// entry is the content of a dictionary entry.
type entry struct {
	Word       []string
	Reading    []string
	Definition []string
}

func entries(d *dictionary.Dictionary) []entry {
	var result []entry
	for _, e := range d.Entries() {
		result = append(result, entry{
			Word:       e.Values(0),
			Reading:    e.Values(1),
			Definition: e.Values(2),
		})
	}
	return result
}

var testEntries = []entry{
	{
		Word:       []string{"日本", "にっぽん"},
		Reading:    []string{"にほん"},
		Definition: []string{"Japan"},
	},
	{
		Word:       []string{"猫"},
		Reading:    []string{"ねこ"},
		Definition: []string{"cat"},
	},
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts makeOptions
	}{
		{
			name: "plain",
		},
		{
			name: "version 2.4.2",
			opts: makeOptions{version: "2.4.2"},
		},
		{
			name: "64 bit offsets",
			opts: makeOptions{offsetBits: 64},
		},
		{
			name: "sametypesequence",
			opts: makeOptions{sametypesequence: "ym"},
		},
		{
			name: "gzip",
			opts: makeOptions{gzip: true},
		},
		{
			name: "dictzip",
			opts: makeOptions{dictzip: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := makeDict(t, t.TempDir(), testWords, test.opts)
			d, err := stardict.Open(path, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}

			if diff := cmp.Diff(testEntries, entries(d)); diff != "" {
				t.Fatalf("entries (-want, +got):\n%s", diff)
			}

			want := dictionary.Info{
				Name:        "Test Dictionary",
				Author:      "Ian Lewis",
				Description: "A test dictionary.",
				Version:     "3.0.0",
				Path:        path,
			}
			if test.opts.version != "" {
				want.Version = test.opts.version
			}
			if diff := cmp.Diff(want, d.Info()); diff != "" {
				t.Fatalf("Info (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestOpen_html(t *testing.T) {
	t.Parallel()

	words := []testWord{
		{
			word: "犬",
			data: []testData{
				{t: stardict.HTMLType, data: "<b>dog</b>"},
				{t: stardict.WavType, data: "RIFF"},
				{t: stardict.UTFTextType, data: "hound"},
			},
		},
	}
	path := makeDict(t, t.TempDir(), words, makeOptions{})
	d, err := stardict.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	want := []entry{
		{
			Word:       []string{"犬"},
			Definition: []string{"dog\nhound"},
		},
	}
	if diff := cmp.Diff(want, entries(d)); diff != "" {
		t.Fatalf("entries (-want, +got):\n%s", diff)
	}
}

func TestOpen_lookup(t *testing.T) {
	t.Parallel()

	path := makeDict(t, t.TempDir(), testWords, makeOptions{})
	d, err := stardict.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	got, err := d.Lookup("ニッポン")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(got) != 1 || got[0].Headword() != "日本" {
		t.Fatalf("Lookup: got: %v, want: [日本]", got)
	}
}

func TestOpen_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   makeOptions
		modify func(t *testing.T, ifoPath string) string
		err    error
	}{
		{
			name: "bad extension",
			modify: func(_ *testing.T, ifoPath string) string {
				return strings.TrimSuffix(ifoPath, ".ifo") + ".idx"
			},
			err: stardict.ErrExtension,
		},
		{
			name: "bad version",
			opts: makeOptions{version: "1.0.0"},
			err:  stardict.ErrVersion,
		},
		{
			name: "missing bookname",
			opts: makeOptions{bookname: "-"},
			err:  stardict.ErrInvalidIfo,
		},
		{
			name: "bad sametypesequence",
			opts: makeOptions{sametypesequence: "ym?"},
			err:  stardict.ErrInvalidType,
		},
		{
			name: "bad magic",
			modify: func(t *testing.T, ifoPath string) string {
				t.Helper()
				writeFile(t, ifoPath, []byte("not a dictionary\n"))
				return ifoPath
			},
			err: stardict.ErrBadMagic,
		},
		{
			name: "missing index",
			modify: func(t *testing.T, ifoPath string) string {
				t.Helper()
				if err := os.Remove(strings.TrimSuffix(ifoPath, ".ifo") + ".idx"); err != nil {
					t.Fatal(err)
				}
				return ifoPath
			},
			err: stardict.ErrNotFound,
		},
		{
			name: "missing dict",
			modify: func(t *testing.T, ifoPath string) string {
				t.Helper()
				if err := os.Remove(strings.TrimSuffix(ifoPath, ".ifo") + ".dict"); err != nil {
					t.Fatal(err)
				}
				return ifoPath
			},
			err: stardict.ErrNotFound,
		},
		{
			name: "truncated index",
			modify: func(t *testing.T, ifoPath string) string {
				t.Helper()
				idxPath := strings.TrimSuffix(ifoPath, ".ifo") + ".idx"
				b, err := os.ReadFile(idxPath)
				if err != nil {
					t.Fatal(err)
				}
				writeFile(t, idxPath, b[:len(b)-2])
				return ifoPath
			},
			err: stardict.ErrCorrupt,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := makeDict(t, t.TempDir(), testWords, test.opts)
			if test.modify != nil {
				path = test.modify(t, path)
			}

			_, err := stardict.Open(path, nil)
			if !errors.Is(err, test.err) {
				t.Fatalf("Open: unexpected error, got: %v, want: %v", err, test.err)
			}
			if !errors.Is(err, stardict.ErrStarDict) {
				t.Fatalf("Open: error %v does not wrap ErrStarDict", err)
			}
		})
	}
}

func TestOpenAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, sub := range []string{"a", filepath.Join("b", "c"), "broken"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o700); err != nil {
			t.Fatal(err)
		}
	}
	makeDict(t, filepath.Join(dir, "a"), testWords, makeOptions{bookname: "A"})
	makeDict(t, filepath.Join(dir, "b", "c"), testWords, makeOptions{bookname: "C"})
	makeDict(t, filepath.Join(dir, "broken"), testWords, makeOptions{version: "0"})

	dicts, errs := stardict.OpenAll(dir, nil)

	var names []string
	for _, d := range dicts {
		names = append(names, d.Name())
	}
	if diff := cmp.Diff([]string{"A", "C"}, names); diff != "" {
		t.Fatalf("OpenAll (-want, +got):\n%s", diff)
	}
	if got, want := len(errs), 1; got != want {
		t.Fatalf("OpenAll: got %d errors, want %d: %v", got, want, errs)
	}
	if !errors.Is(errs[0], stardict.ErrVersion) {
		t.Fatalf("OpenAll: unexpected error, got: %v, want: %v", errs[0], stardict.ErrVersion)
	}
}
