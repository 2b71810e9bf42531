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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-waei/query"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error

		expected int
	}{
		{
			name:     "success",
			expected: ExitCodeSuccess,
		},
		{
			name:     "flag parse",
			err:      ErrFlagParse,
			expected: ExitCodeFlagParseError,
		},
		{
			name:     "query",
			err:      &query.SyntaxError{Err: query.ErrUnmatchedEndParenthesis, Text: "a)", Offset: 1},
			expected: ExitCodeQueryError,
		},
		{
			name:     "unknown",
			err:      errors.New("unknown"),
			expected: ExitCodeUnknownError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got, want := exitCode(test.err), test.expected; got != want {
				t.Fatalf("exitCode: got: %d, want: %d", got, want)
			}
		})
	}
}

func TestWaeiApp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string

		contains string
		err      error
	}{
		{
			name:     "version",
			args:     []string{"--version"},
			contains: "Copyright (c) 2025 Ian Lewis",
		},
		{
			name: "unknown flag",
			args: []string{"--unknown-flag"},
			err:  ErrFlagParse,
		},
		{
			name: "search without query",
			args: []string{"search"},
			err:  ErrNoQuery,
		},
		{
			name: "lookup without word",
			args: []string{"lookup"},
			err:  ErrNoWord,
		},
		{
			name: "no dictionaries",
			args: []string{"list"},
			err:  ErrNoDictionaries,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			config := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(config, nil, 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			var out, errOut strings.Builder
			app := newWaeiApp()
			app.Writer = &out
			app.ErrWriter = &errOut

			args := append([]string{"waei", "--config", config, "--data-dir", dir}, test.args...)
			err := app.RunContext(context.Background(), args)
			if !errors.Is(err, test.err) {
				t.Fatalf("Run: unexpected error, got: %v, want: %v", err, test.err)
			}
			if !strings.Contains(out.String(), test.contains) {
				t.Fatalf("Run: output %q does not contain %q", out.String(), test.contains)
			}
		})
	}
}
