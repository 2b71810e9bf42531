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

package folding

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Pattern folds the literal text of a regular expression with t. Escape
// sequences are copied verbatim so that folding "\D" or "\P{Lu}" cannot
// change their meaning.
func Pattern(pattern string, t transform.Transformer) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))

	literalStart := 0
	flush := func(end int) error {
		if literalStart >= end {
			return nil
		}
		t.Reset()
		folded, _, err := transform.String(t, pattern[literalStart:end])
		if err != nil {
			return fmt.Errorf("folding %q: %w", pattern[literalStart:end], err)
		}
		b.WriteString(folded)
		return nil
	}

	for i := 0; i < len(pattern); {
		if pattern[i] != '\\' {
			i++
			continue
		}
		if err := flush(i); err != nil {
			return "", err
		}

		end := escapeEnd(pattern, i)
		b.WriteString(pattern[i:end])
		i = end
		literalStart = end
	}
	if err := flush(len(pattern)); err != nil {
		return "", err
	}

	return b.String(), nil
}

// escapeEnd returns the end offset of the escape sequence starting at i.
func escapeEnd(pattern string, i int) int {
	if i+1 >= len(pattern) {
		return len(pattern)
	}
	_, size := utf8.DecodeRuneInString(pattern[i+1:])
	end := i + 1 + size

	// Unicode property classes carry their name in braces.
	if c := pattern[i+1]; (c == 'p' || c == 'P') && end < len(pattern) && pattern[end] == '{' {
		if j := strings.IndexByte(pattern[end:], '}'); j >= 0 {
			return end + j + 1
		}
	}
	return end
}
