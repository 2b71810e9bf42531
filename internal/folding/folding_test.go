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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
)

func TestWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    " \t\n ",
			expected: "",
		},
		{
			name:     "leading and trailing",
			input:    "  日本  ",
			expected: "日本",
		},
		{
			name:     "internal runs",
			input:    "日本 \t strokes:7",
			expected: "日本 strokes:7",
		},
		{
			name:     "ideographic space",
			input:    "日本　語",
			expected: "日本 語",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(&Whitespace{}, test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Whitespace (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	// "か" followed by a combining voiced sound mark composes to "が".
	got, _, err := transform.String(Query(), "  \u304b\u3099 ")
	if err != nil {
		t.Fatalf("transform.String: %v", err)
	}
	if diff := cmp.Diff("\u304c", got); diff != "" {
		t.Fatalf("Query (-want, +got):\n%s", diff)
	}
}

func TestKana(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "katakana",
			input:    "アイウエオ",
			expected: "あいうえお",
		},
		{
			name:     "small and voiced",
			input:    "ヴァッガ",
			expected: "ゔぁっが",
		},
		{
			name:     "iteration marks",
			input:    "ヽヾ",
			expected: "ゝゞ",
		},
		{
			name:     "mixed",
			input:    "abcABCあいうえおアイウエオ日本",
			expected: "abcABCあいうえおあいうえお日本",
		},
		{
			name:     "long vowel mark untouched",
			input:    "コーヒー",
			expected: "こーひー",
		},
		{
			name:     "half width untouched",
			input:    "ｱｲｳ",
			expected: "ｱｲｳ",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := KanaString(test.input)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("KanaString (-want, +got):\n%s", diff)
			}
			if len(got) != len(test.input) {
				t.Fatalf("len(KanaString(%q)) = %d, want %d", test.input, len(got), len(test.input))
			}
		})
	}
}

func TestPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		t        transform.Transformer
		expected string
	}{
		{
			name:     "case fold",
			pattern:  "abcABCあいうえおアイウエオ",
			t:        cases.Fold(),
			expected: "abcabcあいうえおアイウエオ",
		},
		{
			name:     "kana fold",
			pattern:  "abcABCあいうえおアイウエオ",
			t:        Kana{},
			expected: "abcABCあいうえおあいうえお",
		},
		{
			name:     "both",
			pattern:  "abcABCあいうえおアイウエオ",
			t:        transform.Chain(cases.Fold(), Kana{}),
			expected: "abcabcあいうえおあいうえお",
		},
		{
			name:     "escapes kept",
			pattern:  `A\DB\W\(C\)`,
			t:        cases.Fold(),
			expected: `a\Db\W\(c\)`,
		},
		{
			name:     "property class kept",
			pattern:  `X\p{Lu}Y\P{Lu}`,
			t:        cases.Fold(),
			expected: `x\p{Lu}y\P{Lu}`,
		},
		{
			name:     "trailing backslash",
			pattern:  `A\`,
			t:        cases.Fold(),
			expected: `a\`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := Pattern(test.pattern, test.t)
			if err != nil {
				t.Fatalf("Pattern: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Pattern (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestHeadword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "case",
			input:    "Tokyo",
			expected: "tokyo",
		},
		{
			name:     "full width",
			input:    "ＴＯＫＹＯ",
			expected: "tokyo",
		},
		{
			name:     "half width katakana",
			input:    "ﾆﾎﾝ",
			expected: "にほん",
		},
		{
			name:     "katakana",
			input:    "ニホン",
			expected: "にほん",
		},
		{
			name:     "whitespace",
			input:    " New　York ",
			expected: "new york",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(Headword(), test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Headword (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ascii",
			input:    "TOKYO",
			expected: "tokyo",
		},
		{
			name:     "sharp s",
			input:    "Straße",
			expected: "straße",
		},
		{
			name:     "ligature",
			input:    "ﬁLE",
			expected: "ﬁle",
		},
		{
			name:     "kana untouched",
			input:    "アイウ",
			expected: "アイウ",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(Lower(), test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Lower (-want, +got):\n%s", diff)
			}
		})
	}
}
