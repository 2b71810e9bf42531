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
	"strings"
	"unicode"
	"unicode/utf8"
)

const keyDelimiter = ':'

// span is a run of query text without nested groups that is split into
// leaf nodes.
type span struct {
	text        string
	open, close int

	// wrap is the opening token each leaf is wrapped in. Leaves of plain
	// text are not wrapped.
	wrap string

	// trimStart and trimEnd trim whitespace at the edges of the span.
	trimStart, trimEnd bool

	// grouped is true if the span is the content of a parenthesized group.
	// A connector may not leave a group.
	grouped bool

	// first is true if nothing precedes the span in its sibling list.
	first bool
}

// isEscaped returns true if the byte at i is preceded by an odd number of
// backslashes after start.
func isEscaped(text string, start, i int) bool {
	n := 0
	for j := i - 1; j >= start && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// connectorAt returns the operation of the connector at i in text[:end].
func connectorAt(text string, i, end int) Operation {
	if i+2 > end {
		return OperationNone
	}
	switch text[i : i+2] {
	case "&&":
		return OperationAnd
	case "||":
		return OperationOr
	default:
		return OperationNone
	}
}

// tokenize splits the span into leaf nodes. carry is the connector left
// pending by the previous sibling. The connector left pending at the end of
// the span is returned.
func tokenize(s span, carry Operation) ([]*Node, Operation, error) {
	var nodes []*Node
	op := carry
	opInside := false

	segStart := s.open
	for i := s.open; i < s.close; {
		conn := connectorAt(s.text, i, s.close)
		if conn == OperationNone || isEscaped(s.text, s.open, i) {
			i++
			continue
		}

		leaves, err := tokenizeColumns(s, segStart, i, segStart != s.open || s.trimStart, true, op)
		if err != nil {
			return nil, OperationNone, err
		}
		if len(leaves) == 0 {
			if op != OperationNone {
				// Two connectors without an operand between them.
				return nil, OperationNone, syntaxError(ErrHangingEndLogicalConnector, s.text, i)
			}
			if s.first && len(nodes) == 0 {
				return nil, OperationNone, syntaxError(ErrHangingStartLogicalConnector, s.text, i)
			}
		}
		nodes = append(nodes, leaves...)

		op = conn
		opInside = true
		i += 2
		segStart = i
	}

	leaves, err := tokenizeColumns(s, segStart, s.close, segStart != s.open || s.trimStart, s.trimEnd, op)
	if err != nil {
		return nil, OperationNone, err
	}
	if len(leaves) > 0 {
		op = OperationNone
	}
	nodes = append(nodes, leaves...)

	if s.grouped && opInside && op != OperationNone {
		return nil, OperationNone, syntaxError(ErrHangingEndLogicalConnector, s.text, s.close)
	}

	return nodes, op, nil
}

// tokenizeColumns splits text[start:end] into plain and keyed leaf nodes.
// The first node takes op. Nodes after it are ANDed.
func tokenizeColumns(s span, start, end int, trimLeft, trimRight bool, op Operation) ([]*Node, error) {
	if trimLeft {
		for start < end {
			r, size := utf8.DecodeRuneInString(s.text[start:end])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	if trimRight {
		for start < end {
			r, size := utf8.DecodeLastRuneInString(s.text[start:end])
			if !unicode.IsSpace(r) {
				break
			}
			end -= size
		}
	}
	seg := s.text[start:end]
	if strings.TrimSpace(seg) == "" {
		return nil, nil
	}

	var nodes []*Node
	emit := func(n *Node) {
		if len(nodes) == 0 {
			n.Operation = op
		} else {
			n.Operation = OperationAnd
		}
		nodes = append(nodes, n)
	}

	key := ""
	delimEnd := -1

	// wordStart is the offset just past the last whitespace rune.
	wordStart := 0
	for j := 0; j < len(seg); {
		r, size := utf8.DecodeRuneInString(seg[j:])
		if unicode.IsSpace(r) {
			j += size
			wordStart = j
			continue
		}
		if r != keyDelimiter || isEscaped(seg, 0, j) {
			j += size
			continue
		}

		if wordStart == j {
			// An empty key is a normal search token unless the delimiter
			// stands alone.
			next, _ := utf8.DecodeRuneInString(seg[j+size:])
			if j+size == len(seg) || unicode.IsSpace(next) {
				return nil, syntaxError(ErrMissingKeyAndValueForKeyedQueryNode, s.text, start+j)
			}
			j += size
			continue
		}

		if delimEnd >= 0 {
			if wordStart <= delimEnd {
				// The delimiter is part of the previous key's value.
				j += size
				continue
			}
			emit(s.keyed(key, seg[delimEnd:wordStart]))
		} else if before := strings.TrimSpace(seg[:wordStart]); before != "" {
			emit(s.leaf(before))
		}

		key = seg[wordStart:j]
		j += size
		delimEnd = j
	}

	switch {
	case delimEnd >= 0:
		emit(s.keyed(key, seg[delimEnd:]))
	default:
		emit(s.leaf(seg))
	}

	return nodes, nil
}

// leaf returns a plain leaf node for data.
func (s span) leaf(data string) *Node {
	return &Node{
		Data: s.wrapData(data),
	}
}

// keyed returns a keyed node. An empty value makes a dangling key that is
// resolved by the following sibling.
func (s span) keyed(key, value string) *Node {
	n := &Node{
		Key: key,
	}
	if value = strings.TrimSpace(value); value != "" {
		n.Data = s.wrapData(value)
	}
	return n
}

func (s span) wrapData(data string) string {
	if s.wrap == "" {
		return data
	}
	return s.wrap + data + ")"
}
