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


package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-waei/dictionary"
)

// ErrNoWord indicates that the lookup command was run without a word.
var ErrNoWord = fmt.Errorf("%w: no word given", ErrWaei)

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "look up a headword",
	ArgsUsage: "WORD",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:               "prefix",
			Usage:              "print entries with a headword starting with WORD",
			Aliases:            []string{"p"},
			DisableDefaultText: true,
		},
		&cli.StringSliceFlag{
			Name:  "dict",
			Usage: "only search the dictionary named `NAME`",
		},
	},
	Action: func(c *cli.Context) error {
		e := getEnv(c)

		word := strings.Join(c.Args().Slice(), " ")
		if word == "" {
			return ErrNoWord
		}

		dicts, err := e.openDictionaries(c)
		if err != nil {
			return err
		}
		dicts = filterDictionaries(dicts, c.StringSlice("dict"))

		_, err = lookup(c.App.Writer, dicts, word, c.Bool("prefix"))
		return err
	},
}

// lookup prints the entries matching word in every dictionary and returns
// the number of entries printed.
func lookup(w io.Writer, dicts []*dictionary.Dictionary, word string, prefix bool) (int, error) {
	p := &printer{w: w}
	count := 0
	for _, d := range dicts {
		var entries []*dictionary.Entry
		var err error
		if prefix {
			entries, err = d.LookupPrefix(word)
		} else {
			entries, err = d.Lookup(word)
		}
		if err != nil {
			return count, fmt.Errorf("looking up %q in %q: %w", word, d.Name(), err)
		}
		for _, entry := range entries {
			if err := p.print(entry, nil); err != nil {
				return count, err
			}
		}
		count += len(entries)
	}
	return count, nil
}
