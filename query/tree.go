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

// NewTree parses text into a query tree. The returned Operation is a logical
// connector left dangling at the end of text, which is not an error at the
// top level.
func NewTree(text string) (*Node, Operation, error) {
	pn, err := NewParenthesisTree(text)
	if err != nil {
		return nil, OperationNone, err
	}
	return NewTreeFromParenthesisNode(pn)
}

// NewTreeFromParenthesisNode builds a query tree from the root of a
// parenthesis tree.
func NewTreeFromParenthesisNode(pn *ParenthesisNode) (*Node, Operation, error) {
	var nodes []*Node
	var op Operation
	var err error
	if pn.HasParenthesis {
		nodes, op, err = fromGroup(pn, OperationNone)
	} else {
		nodes, op, err = fromContent(pn, OperationNone, true)
	}
	if err != nil {
		return nil, OperationNone, err
	}
	if len(nodes) == 0 {
		return nil, OperationNone, syntaxError(ErrEmptyQuery, pn.text, pn.Open)
	}
	return parentOf(nodes, OperationNone), op, nil
}

// fromContent converts the content of pn into a sibling list. first is true
// if nothing precedes the content in its sibling list.
func fromContent(pn *ParenthesisNode, carry Operation, first bool) ([]*Node, Operation, error) {
	root := !pn.HasParenthesis
	if len(pn.Children) == 0 {
		return tokenize(span{
			text:      pn.text,
			open:      pn.Open,
			close:     pn.Close,
			wrap:      wrapFor(pn),
			trimStart: true,
			trimEnd:   true,
			grouped:   !root,
			first:     first,
		}, carry)
	}

	var list []*Node
	op := carry
	for _, c := range pn.Children {
		var nodes []*Node
		var err error
		if c.HasParenthesis {
			nodes, op, err = fromGroup(c, op)
		} else {
			nodes, op, err = tokenize(span{
				text:      c.text,
				open:      c.Open,
				close:     c.Close,
				wrap:      wrapFor(pn),
				trimStart: c.Open == pn.Open,
				trimEnd:   c.Close == pn.Close,
				first:     first && len(list) == 0,
			}, op)
		}
		if err != nil {
			return nil, OperationNone, err
		}
		list = append(list, nodes...)
	}
	return list, op, nil
}

// fromGroup converts a parenthesized group. The group contributes at most
// one node to its sibling list.
func fromGroup(pn *ParenthesisNode, carry Operation) ([]*Node, Operation, error) {
	if pn.Open == pn.Close {
		// Empty groups are ignored.
		return nil, carry, nil
	}

	if pn.IsVerbatim() || !hasOperators(pn.text, pn.Open, pn.Close) {
		return []*Node{{
			Operation: carry,
			Data:      pn.String(),
		}}, OperationNone, nil
	}

	// The carry belongs to the group as a whole, not its first member.
	nodes, op, err := fromContent(pn, OperationNone, true)
	if err != nil {
		return nil, OperationNone, err
	}
	if op != OperationNone {
		return nil, OperationNone, syntaxError(ErrHangingEndLogicalConnector, pn.text, pn.Close)
	}
	if len(nodes) == 0 {
		return nil, carry, nil
	}
	return []*Node{parentOf(nodes, carry)}, OperationNone, nil
}

// parentOf returns the single node of a sibling list or a new parent node for
// the list. op is the parent's relation to its previous sibling.
func parentOf(nodes []*Node, op Operation) *Node {
	if len(nodes) == 1 {
		n := nodes[0]
		if op != OperationNone {
			n.Operation = op
		}
		return n
	}
	return &Node{
		Operation: op,
		Children:  nodes,
	}
}

// wrapFor returns the token that leaves from the content of pn are wrapped
// in.
func wrapFor(pn *ParenthesisNode) string {
	if !pn.HasParenthesis {
		return ""
	}
	return pn.Opener
}

// hasOperators returns true if text[open:close] contains an unescaped logical
// connector or key delimiter.
func hasOperators(text string, open, close int) bool {
	for i := open; i < close; i++ {
		if isEscaped(text, open, i) {
			continue
		}
		if text[i] == keyDelimiter || connectorAt(text, i, close) != OperationNone {
			return true
		}
	}
	return false
}
