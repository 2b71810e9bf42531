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

// Package search runs compiled queries over lists of records in parallel.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ianlewis/go-waei/query"
)

// Result is a matching record.
type Result[R query.Record] struct {
	// Index is the position of the record in the searched list.
	Index int

	// Record is the matching record.
	Record R

	// Info holds the match positions. It is nil unless
	// [Options.MatchInfo] is set.
	Info *query.MatchInfo
}

// Options are options for a search.
type Options struct {
	// Workers is the number of records searched concurrently. Defaults to
	// GOMAXPROCS.
	Workers int

	// ChunkSize is the number of records searched by a worker at once.
	ChunkSize int

	// Limit is the maximum number of results. Zero means no limit.
	Limit int

	// MatchInfo records match positions for each result.
	MatchInfo bool

	// Logger receives debug messages. Defaults to [slog.Default].
	Logger *slog.Logger
}

// DefaultOptions is the default options for a search.
var DefaultOptions = &Options{
	ChunkSize: 256,
	MatchInfo: true,
}

// Search matches q against every record and returns the matching records
// in their original order. q must be compiled.
//
// Records are matched in chunks on a worker pool. Cancelling ctx stops the
// search between records and Search returns the context's error.
func Search[R query.Record](ctx context.Context, q *query.Node, records []R, options *Options) ([]Result[R], error) {
	if options == nil {
		options = DefaultOptions
	}
	if !q.Compiled() {
		return nil, fmt.Errorf("searching: %w", query.ErrNotCompiled)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunkSize := options.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultOptions.ChunkSize
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		logger.Error("search worker panic", "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	start := time.Now()
	numChunks := (len(records) + chunkSize - 1) / chunkSize
	chunks := make([][]Result[R], numChunks)

	var wg sync.WaitGroup
	for c := range numChunks {
		if ctx.Err() != nil {
			break
		}
		first := c * chunkSize
		last := min(first+chunkSize, len(records))

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			chunks[c] = searchChunk(ctx, q, records, first, last, options)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting search: %w", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	var results []Result[R]
	for _, c := range chunks {
		results = append(results, c...)
		if options.Limit > 0 && len(results) >= options.Limit {
			results = results[:options.Limit]
			break
		}
	}

	logger.Debug("search finished",
		"records", len(records),
		"results", len(results),
		"chunks", numChunks,
		"workers", workers,
		"elapsed", time.Since(start),
	)
	return results, nil
}

// searchChunk matches the records in [first, last). A chunk never needs
// more than the limit's worth of results.
func searchChunk[R query.Record](ctx context.Context, q *query.Node, records []R, first, last int, options *Options) []Result[R] {
	var results []Result[R]
	for i := first; i < last; i++ {
		if ctx.Err() != nil {
			return nil
		}

		var info *query.MatchInfo
		if options.MatchInfo {
			info = query.NewMatchInfo()
		}
		if !q.Match(records[i], info) {
			continue
		}

		results = append(results, Result[R]{
			Index:  i,
			Record: records[i],
			Info:   info,
		})
		if options.Limit > 0 && len(results) >= options.Limit {
			break
		}
	}
	return results
}
