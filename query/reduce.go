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
)

// The passes below rewrite a tree in place. They are only ever run on a
// private copy of a parsed tree.

// applyImpliedJunctions ANDs the members of a sibling list together when any
// member of the list has an explicit connector. A member following a
// dangling key is left alone since it becomes the key's value.
func applyImpliedJunctions(n *Node) {
	implied := n.Operation != OperationNone
	for _, c := range n.Children {
		if c.Operation != OperationNone {
			implied = true
		}
	}

	for i, c := range n.Children {
		if implied && i > 0 && c.Operation == OperationNone && !n.Children[i-1].isDanglingKey() {
			c.Operation = OperationAnd
		}
		applyImpliedJunctions(c)
	}
}

// reduce concatenates runs of plain leaves that have no connector between
// them and collapses nodes with a single child.
func reduce(n *Node) {
	var children []*Node
	for _, c := range n.Children {
		reduce(c)
		if l := len(children); l > 0 && c.Operation == OperationNone && c.isPlainLeaf() && children[l-1].isPlainLeaf() {
			children[l-1].Data += c.Data
			continue
		}
		children = append(children, c)
	}
	n.Children = children
	collapse(n)
}

// resolveKeys gives every dangling key the sibling that follows it as its
// value.
func resolveKeys(n *Node) error {
	if n.isDanglingKey() {
		return fmt.Errorf("%w: %q", ErrMissingValueForKeyedQueryNode, n.Key)
	}

	var children []*Node
	for i := 0; i < len(n.Children); i++ {
		c := n.Children[i]
		if c.isDanglingKey() {
			if i+1 >= len(n.Children) || n.Children[i+1].Operation != OperationNone {
				return fmt.Errorf("%w: %q", ErrMissingValueForKeyedQueryNode, c.Key)
			}
			c.Children = []*Node{n.Children[i+1]}
			i++
			collapse(c)
		}
		if err := resolveKeys(c); err != nil {
			return err
		}
		children = append(children, c)
	}
	n.Children = children
	collapse(n)

	return nil
}

// collapse replaces a node that has exactly one child with that child. The
// node's relation to its previous sibling is kept.
func collapse(n *Node) {
	if len(n.Children) != 1 {
		return
	}
	c := n.Children[0]
	if n.Key != "" && c.Key != "" && n.Key != c.Key {
		// Keys cannot be merged.
		return
	}

	key := n.Key
	if key == "" {
		key = c.Key
	}
	op := n.Operation

	*n = *c
	n.Key = key
	n.Operation = op
}
