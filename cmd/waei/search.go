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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-waei/dictionary"
	"github.com/ianlewis/go-waei/internal/folding"
	"github.com/ianlewis/go-waei/query"
	"github.com/ianlewis/go-waei/search"
)

const (
	highlightOpen  = "\x1b[1;31m"
	highlightClose = "\x1b[0m"
)

// ErrNoQuery indicates that the search command was run without a query.
var ErrNoQuery = fmt.Errorf("%w: no query given", ErrWaei)

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search dictionaries with a query",
	ArgsUsage: "QUERY",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:               "case-insensitive",
			Usage:              "ignore letter case",
			Aliases:            []string{"c"},
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:               "furigana-insensitive",
			Usage:              "treat hiragana and katakana as equal",
			Aliases:            []string{"f"},
			DisableDefaultText: true,
		},
		&cli.IntFlag{
			Name:    "limit",
			Usage:   "print at most `N` results",
			Aliases: []string{"n"},
		},
		&cli.StringSliceFlag{
			Name:  "dict",
			Usage: "only search the dictionary named `NAME`",
		},
		&cli.BoolFlag{
			Name:               "color",
			Usage:              "highlight matches",
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:               "debug",
			Usage:              "print the compiled query",
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:               "interactive",
			Usage:              "read queries from a prompt",
			Aliases:            []string{"i"},
			DisableDefaultText: true,
		},
	},
	Action: func(c *cli.Context) error {
		e := getEnv(c)

		text := strings.Join(c.Args().Slice(), " ")
		interactive := c.Bool("interactive")
		if text == "" && !interactive {
			return ErrNoQuery
		}

		dicts, err := e.openDictionaries(c)
		if err != nil {
			return err
		}
		dicts = filterDictionaries(dicts, c.StringSlice("dict"))

		flags := e.config.Flags()
		if c.Bool("case-insensitive") {
			flags |= query.FlagCaseInsensitive
		}
		if c.Bool("furigana-insensitive") {
			flags |= query.FlagFuriganaInsensitive
		}
		limit := e.config.Limit
		if c.IsSet("limit") {
			limit = c.Int("limit")
		}

		s := &searcher{
			dicts:  dicts,
			flags:  flags,
			limit:  limit,
			color:  c.Bool("color") || e.config.Color,
			debug:  c.Bool("debug"),
			logger: e.logger,
		}

		if interactive {
			return s.prompt(c.Context, c.App.Writer, c.App.ErrWriter)
		}
		_, err = s.search(c.Context, c.App.Writer, text)
		return err
	},
}

// filterDictionaries returns the dictionaries with one of the given names.
// All dictionaries are returned if names is empty.
func filterDictionaries(dicts []*dictionary.Dictionary, names []string) []*dictionary.Dictionary {
	if len(names) == 0 {
		return dicts
	}
	var result []*dictionary.Dictionary
	for _, d := range dicts {
		for _, name := range names {
			if strings.EqualFold(d.Name(), name) {
				result = append(result, d)
				break
			}
		}
	}
	return result
}

// searcher runs queries against a set of dictionaries and prints the
// results.
type searcher struct {
	dicts  []*dictionary.Dictionary
	flags  query.Flags
	limit  int
	color  bool
	debug  bool
	logger *slog.Logger
}

// search parses text, searches every dictionary and prints the results to
// w. It returns the number of results printed.
func (s *searcher) search(ctx context.Context, w io.Writer, text string) (int, error) {
	text, _, err := transform.String(folding.Query(), text)
	if err != nil {
		return 0, fmt.Errorf("normalizing query: %w", err)
	}

	tree, _, err := query.NewTree(text)
	if err != nil {
		return 0, err
	}
	q, err := tree.Compile(s.flags)
	if err != nil {
		return 0, err
	}
	if s.debug {
		if _, err := fmt.Fprintln(w, q.String()); err != nil {
			return 0, fmt.Errorf("printing query: %w", err)
		}
	}

	p := &printer{w: w, color: s.color}
	count := 0
	for _, d := range s.dicts {
		opts := &search.Options{
			ChunkSize: search.DefaultOptions.ChunkSize,
			MatchInfo: s.color,
			Logger:    s.logger,
		}
		if s.limit > 0 {
			opts.Limit = s.limit - count
		}

		results, err := search.Search(ctx, q, d.Entries(), opts)
		if err != nil {
			return count, fmt.Errorf("searching %q: %w", d.Name(), err)
		}
		for _, r := range results {
			if err := p.print(r.Record, r.Info); err != nil {
				return count, err
			}
		}
		count += len(results)

		if s.limit > 0 && count >= s.limit {
			break
		}
	}
	return count, nil
}

// prompt reads queries from the terminal until the user exits. Query
// errors are printed and the prompt continues.
func (s *searcher) prompt(ctx context.Context, w, errW io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	path := historyPath()
	if path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	for ctx.Err() == nil {
		text, err := line.Prompt("waei> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading query: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		if _, err := s.search(ctx, w, text); err != nil {
			if !errors.Is(err, query.ErrQuery) {
				return err
			}
			fmt.Fprintf(errW, "%v\n", err)
		}
	}

	if path != "" {
		if err := writeHistory(line, path); err != nil {
			s.logger.Warn("writing history", "path", path, "err", err)
		}
	}
	return nil
}

func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "waei", "history")
}

func writeHistory(line *liner.State, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating history file: %w", err)
	}
	if _, err := line.WriteHistory(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing history file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing history file: %w", err)
	}
	return nil
}

// printer prints dictionary entries.
type printer struct {
	w     io.Writer
	color bool
}

// print writes e to the printer's writer. The first column is printed on
// the first line followed by the remaining columns in brackets. If info is
// not nil and color is enabled matches are highlighted.
//
//	猫 [ねこ] (Dictionary)
//	    cat
func (p *printer) print(e *dictionary.Entry, info *query.MatchInfo) error {
	var b strings.Builder

	b.WriteString(strings.Join(p.values(e, info, 0), "; "))
	for i := 1; i < e.NumColumns(); i++ {
		if e.Column(i).Type != query.ColumnTextArray || len(e.Values(i)) == 0 {
			continue
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(p.values(e, info, i), "; "))
		b.WriteString("]")
	}
	fmt.Fprintf(&b, " (%s)\n", e.Dictionary().Name())

	for i := 1; i < e.NumColumns(); i++ {
		if e.Column(i).Type == query.ColumnTextArray {
			continue
		}
		for _, v := range p.values(e, info, i) {
			for _, l := range strings.Split(v, "\n") {
				b.WriteString("    ")
				b.WriteString(l)
				b.WriteString("\n")
			}
		}
	}

	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return fmt.Errorf("printing entry: %w", err)
	}
	return nil
}

func (p *printer) values(e *dictionary.Entry, info *query.MatchInfo, column int) []string {
	values := e.Values(column)
	if !p.color || info == nil {
		return values
	}
	c := info.Column(column)
	if c == nil {
		return values
	}
	result := make([]string, len(values))
	for i := range values {
		result[i] = c.Highlight(i, highlightOpen, highlightClose)
	}
	return result
}
