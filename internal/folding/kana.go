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
	"unicode/utf8"

	"golang.org/x/text/transform"
)

const (
	katakanaFirst = 'ァ' // U+30A1
	katakanaLast  = 'ヶ' // U+30F6
	katakanaIter  = 'ヽ' // U+30FD
	katakanaVIter = 'ヾ' // U+30FE

	// kanaOffset is the distance between a katakana rune and its hiragana
	// counterpart.
	kanaOffset = 'ア' - 'あ'
)

// KanaRune maps a full-width katakana rune to hiragana. Other runes are
// returned unchanged. The UTF-8 length of the rune never changes.
func KanaRune(r rune) rune {
	switch {
	case katakanaFirst <= r && r <= katakanaLast:
		return r - kanaOffset
	case r == katakanaIter, r == katakanaVIter:
		return r - kanaOffset
	}
	return r
}

// Kana folds katakana to hiragana. Because every folded rune keeps its
// encoded length, byte offsets into folded text are valid offsets into the
// source text.
type Kana struct {
	transform.NopResetter
}

// Transform implements [transform.Transformer.Transform].
func (Kana) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if r == utf8.RuneError && size == 1 {
			// Pass invalid bytes through untouched.
			dst[nDst] = src[nSrc]
		} else {
			utf8.EncodeRune(dst[nDst:], KanaRune(r))
		}
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}

// KanaString folds s with [Kana].
func KanaString(s string) string {
	for _, r := range s {
		if KanaRune(r) != r {
			folded, _, err := transform.String(Kana{}, s)
			if err != nil {
				return s
			}
			return folded
		}
	}
	return s
}
