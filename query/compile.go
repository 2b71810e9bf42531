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

package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-waei/internal/folding"
)

// Flags select the text folding applied when matching.
type Flags uint

const (
	// FlagCaseInsensitive ignores letter case.
	FlagCaseInsensitive Flags = 1 << iota

	// FlagFuriganaInsensitive treats katakana and hiragana as equal.
	FlagFuriganaInsensitive
)

// MatchTimeout bounds the time one compiled pattern may spend on a single
// value. A pattern that runs out of time does not match the value.
var MatchTimeout = time.Second

// New parses and compiles text. A logical connector dangling at the end of
// text is ignored.
func New(text string, flags Flags) (*Node, error) {
	n, _, err := NewTree(text)
	if err != nil {
		return nil, err
	}
	return n.Compile(flags)
}

// Compile returns a compiled copy of the tree that can be matched against
// records. The receiver is not modified. Compiling a compiled tree returns
// the tree itself. A compiled tree is safe for concurrent use.
func (n *Node) Compile(flags Flags) (*Node, error) {
	if n.Compiled() {
		return n, nil
	}

	t := n.clone()
	applyImpliedJunctions(t)
	reduce(t)
	if err := resolveKeys(t); err != nil {
		return nil, err
	}
	reduce(t)

	if err := t.compile(flags, ""); err != nil {
		return nil, err
	}
	return t, nil
}

// compile compiles the patterns of the leaves under n. key is the nearest
// enclosing column key.
func (n *Node) compile(flags Flags, key string) error {
	if n.Key != "" {
		key = n.Key
	}

	if n.Data == "" {
		for _, c := range n.Children {
			if err := c.compile(flags, key); err != nil {
				return err
			}
		}
		return nil
	}

	if n.regex != nil {
		return nil
	}

	pattern, err := foldPattern(strings.TrimSpace(n.Data), flags)
	if err != nil {
		return err
	}

	opts := regexp2.None
	if flags&FlagCaseInsensitive != 0 {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}
	anchored, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, opts)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}
	re.MatchTimeout = MatchTimeout
	anchored.MatchTimeout = MatchTimeout

	n.Key = key
	n.regex = re
	n.anchored = anchored
	n.flags = flags
	return nil
}

// foldPattern folds the literal text of pattern according to flags.
func foldPattern(pattern string, flags Flags) (string, error) {
	var ts []transform.Transformer
	if flags&FlagCaseInsensitive != 0 {
		ts = append(ts, folding.Lower())
	}
	if flags&FlagFuriganaInsensitive != 0 {
		ts = append(ts, folding.Kana{})
	}
	if len(ts) == 0 {
		return pattern, nil
	}

	folded, err := folding.Pattern(pattern, transform.Chain(ts...))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return folded, nil
}
