package lang

import (
	"iter"
	"strings"
)

// Node is a single line of a compiled script.
//
// Keyword nodes open a block and own the lines nested inside it. Attribute
// nodes ([KeywordNone]) and close nodes ([KeywordEnd]) are always leaves.
type Node struct {
	parent   *Node
	children []*Node

	// Text is the rendered line including its trailing newline.
	Text string

	// Line is the 1-based source line the node was built from.
	// It is zero for the root and for close nodes.
	Line int

	Keyword Keyword
}

// NewRoot returns an empty tree.
func NewRoot() *Node {
	return &Node{Keyword: KeywordRoot}
}

func newLineNode(k Keyword, tokens []string, line int) *Node {
	return &Node{
		Keyword: k,
		Text:    strings.Join(tokens, " ") + "\n",
		Line:    line,
	}
}

func newCloseNode(text string) *Node {
	return &Node{Keyword: KeywordEnd, Text: text}
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in order.
// The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool { return n.parent == nil && n.Keyword == KeywordRoot }

// Depth returns the number of ancestors between n and the root.
// Children of the root have depth 0.
func (n *Node) Depth() int {
	d := -1
	for p := n.parent; p != nil; p = p.parent {
		d++
	}

	return max(d, 0)
}

// add appends child to n.
func (n *Node) add(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// All returns an iterator over n and its descendants in pre-order.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}

	for _, c := range n.children {
		if !c.walk(yield) {
			return false
		}
	}

	return true
}

// Ancestors returns an iterator over n's ancestors, nearest first.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// Skeleton is the keyword structure of a tree, ignoring attribute lines and
// the text of each node.
type Skeleton struct {
	Keyword  Keyword
	Children []Skeleton
}

// Shape returns the keyword structure of the tree rooted at n.
func (n *Node) Shape() Skeleton {
	s := Skeleton{Keyword: n.Keyword}

	for _, c := range n.children {
		if c.Keyword == KeywordNone {
			continue
		}

		s.Children = append(s.Children, c.Shape())
	}

	return s
}
