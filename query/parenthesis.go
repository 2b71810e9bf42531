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
)

// openers are the recognized opening tokens, longest first. Every token but
// the bare parenthesis opens a regular expression group that is kept
// verbatim in the query.
var openers = []string{
	"(?<=",
	"(?<!",
	"(?=",
	"(?!",
	"(?:",
	"(",
}

// ParenthesisNode is a span of query text. The root node spans the whole
// text. Every other node is a parenthesized group.
type ParenthesisNode struct {
	// Start and End delimit the node in the text including the opening and
	// closing tokens.
	Start, End int

	// Open and Close delimit the node's content in the text.
	Open, Close int

	// Opener is the opening token of a parenthesized group.
	Opener string

	// HasParenthesis is true for parenthesized groups.
	HasParenthesis bool

	// Children is the full decomposition of the node's content into plain
	// text pieces and parenthesized groups. It is empty when the content
	// has no nested groups.
	Children []*ParenthesisNode

	// ExplicitChildren holds only the parenthesized groups in Children.
	ExplicitChildren []*ParenthesisNode

	text string
}

// NewParenthesisTree splits text into a tree of parenthesized groups.
func NewParenthesisTree(text string) (*ParenthesisNode, error) {
	root := &ParenthesisNode{
		End:   len(text),
		Close: len(text),
		text:  text,
	}

	stack := []*ParenthesisNode{root}
	pieceStart := 0
	for i := 0; i < len(text); {
		cur := stack[len(stack)-1]
		switch text[i] {
		case '\\':
			// Skip the escaped byte. Multi-byte runes continue with
			// continuation bytes which are never special.
			i += 2
		case '(':
			opener := openerAt(text, i)
			cur.addPiece(pieceStart, i)
			n := &ParenthesisNode{
				Start:          i,
				Open:           i + len(opener),
				Opener:         opener,
				HasParenthesis: true,
				text:           text,
			}
			stack = append(stack, n)
			i = n.Open
			pieceStart = i
		case ')':
			if len(stack) == 1 {
				return nil, syntaxError(ErrUnmatchedEndParenthesis, text, i)
			}
			cur.addPiece(pieceStart, i)
			cur.Close = i
			cur.End = i + 1
			cur.finish()

			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, cur)
			parent.ExplicitChildren = append(parent.ExplicitChildren, cur)

			i = cur.End
			pieceStart = i
		default:
			i++
		}
	}

	if len(stack) > 1 {
		return nil, syntaxError(ErrUnmatchedStartParenthesis, text, stack[1].Start)
	}

	root.addPiece(pieceStart, len(text))
	root.finish()

	return root, nil
}

func openerAt(text string, i int) string {
	for _, o := range openers {
		if strings.HasPrefix(text[i:], o) {
			return o
		}
	}
	return "("
}

// addPiece adds the plain text in [start, end) as a child.
func (n *ParenthesisNode) addPiece(start, end int) {
	if start >= end {
		return
	}
	n.Children = append(n.Children, &ParenthesisNode{
		Start: start,
		End:   end,
		Open:  start,
		Close: end,
		text:  n.text,
	})
}

// finish drops the plain text pieces of a node without nested groups. The
// node's content is then a single leaf span.
func (n *ParenthesisNode) finish() {
	if len(n.ExplicitChildren) == 0 {
		n.Children = nil
	}
}

// Content returns the node's content without the opening and closing
// tokens.
func (n *ParenthesisNode) Content() string {
	return n.text[n.Open:n.Close]
}

// String returns the node's text including the opening and closing tokens.
func (n *ParenthesisNode) String() string {
	return n.text[n.Start:n.End]
}

// IsVerbatim returns true if the group is a regular expression construct
// that must be kept intact, such as a lookaround.
func (n *ParenthesisNode) IsVerbatim() bool {
	return n.HasParenthesis && n.Opener != "("
}

// Flatten rebuilds the node's text from its decomposition.
func (n *ParenthesisNode) Flatten() string {
	var b strings.Builder
	n.flatten(&b)
	return b.String()
}

func (n *ParenthesisNode) flatten(b *strings.Builder) {
	if n.HasParenthesis {
		b.WriteString(n.Opener)
	}
	if len(n.Children) == 0 {
		b.WriteString(n.Content())
	} else {
		for _, c := range n.Children {
			c.flatten(b)
		}
	}
	if n.HasParenthesis {
		b.WriteString(")")
	}
}
