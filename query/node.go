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

	"github.com/dlclark/regexp2"
)

// Operation is the logical relation of a node to its previous sibling.
type Operation int

const (
	// OperationNone means the node has no explicit relation to its previous
	// sibling. It is combined like OperationAnd.
	OperationNone Operation = iota

	// OperationAnd requires both the previous siblings and the node to match.
	OperationAnd

	// OperationOr requires either the previous siblings or the node to match.
	OperationOr
)

// String returns the connector text for the operation.
func (o Operation) String() string {
	switch o {
	case OperationAnd:
		return "&&"
	case OperationOr:
		return "||"
	default:
		return ""
	}
}

// Node is a node in a query tree. A leaf node has Data and no Children. An
// internal node has Children and no Data.
type Node struct {
	// Operation is the relation of the node to its previous sibling.
	Operation Operation

	// Key restricts the node to the column with the same name. Compiled
	// leaves carry the nearest enclosing key. Internal nodes keep the key
	// they were written with but never use it for matching.
	Key string

	// Data is the node's search pattern.
	Data string

	// Children are the node's child nodes.
	Children []*Node

	// regex is the compiled pattern. anchored matches only whole values.
	regex    *regexp2.Regexp
	anchored *regexp2.Regexp

	// flags are the folding flags the node was compiled with.
	flags Flags
}

// IsLeaf returns true if the node is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.Data != "" && len(n.Children) == 0
}

// isDanglingKey returns true if the node is a key still waiting for its
// value.
func (n *Node) isDanglingKey() bool {
	return n.Key != "" && n.Data == "" && len(n.Children) == 0
}

// isPlainLeaf returns true if n is a leaf without a key.
func (n *Node) isPlainLeaf() bool {
	return n.IsLeaf() && n.Key == ""
}

// Pattern returns the compiled regular expression of a leaf node. It returns
// an empty string if the node is not compiled or is not a leaf.
func (n *Node) Pattern() string {
	if n.regex == nil {
		return ""
	}
	return n.regex.String()
}

// Compiled returns true if the node has been compiled.
func (n *Node) Compiled() bool {
	if n.IsLeaf() {
		return n.regex != nil
	}
	for _, c := range n.Children {
		if !c.Compiled() {
			return false
		}
	}
	return len(n.Children) > 0
}

// clone returns a deep copy of the node.
func (n *Node) clone() *Node {
	c := *n
	c.Children = nil
	for _, child := range n.Children {
		c.Children = append(c.Children, child.clone())
	}
	return &c
}

// String returns an indented representation of the tree for debugging.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.Operation != OperationNone {
		b.WriteString(n.Operation.String())
		b.WriteString(" ")
	}
	if n.Key != "" {
		fmt.Fprintf(b, "%s:", n.Key)
	}
	switch {
	case n.regex != nil:
		fmt.Fprintf(b, "/%s/", n.regex.String())
	case n.Data != "":
		fmt.Fprintf(b, "%q", n.Data)
	default:
		b.WriteString("*")
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}
