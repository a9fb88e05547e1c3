// Package notetree supplies the minimal containing structure spec.md
// places out of the core engine's scope (§1): a tree of notes, each
// holding its own piecetext.Text. No persistence format is implemented
// (spec.md's persistence-format Non-goal applies here too); the tree
// exists purely so a front-end has more than one note and a reason to
// exercise piecetext.Text.MakeCopy.
package notetree

import (
	"github.com/google/uuid"

	"github.com/wildp/treenote/piecetext"
)

// Note is a single titled, UUID-identified note in the tree.
type Note struct {
	ID    uuid.UUID
	Title string
	Text  *piecetext.Text
}

// Tree is a forest of notes: each node knows its parent (nil for a root)
// and its children, in insertion order.
type Tree struct {
	roots []*Node
	byID  map[uuid.UUID]*Node
}

// Node wraps a Note with its position in the tree.
type Node struct {
	Note     *Note
	Parent   *Node
	Children []*Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{byID: make(map[uuid.UUID]*Node)}
}

// AddRoot creates a new top-level note titled title and returns its node.
func (t *Tree) AddRoot(title string) *Node {
	n := &Node{Note: &Note{ID: uuid.New(), Title: title, Text: piecetext.New()}}
	t.roots = append(t.roots, n)
	t.byID[n.Note.ID] = n
	return n
}

// AddChild creates a new note titled title as a child of parent.
func (t *Tree) AddChild(parent *Node, title string) *Node {
	n := &Node{Note: &Note{ID: uuid.New(), Title: title, Text: piecetext.New()}, Parent: parent}
	parent.Children = append(parent.Children, n)
	t.byID[n.Note.ID] = n
	return n
}

// Duplicate adds a sibling of node whose Text is a deep copy of node's
// (piecetext.Text.MakeCopy — the new note has its own empty undo
// history, per piecetext's documented copy semantics).
func (t *Tree) Duplicate(node *Node, title string) *Node {
	dup := &Node{
		Note:   &Note{ID: uuid.New(), Title: title, Text: node.Note.Text.MakeCopy()},
		Parent: node.Parent,
	}
	if node.Parent == nil {
		t.roots = append(t.roots, dup)
	} else {
		node.Parent.Children = append(node.Parent.Children, dup)
	}
	t.byID[dup.Note.ID] = dup
	return dup
}

// Find looks up a node by its note's ID.
func (t *Tree) Find(id uuid.UUID) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Walk visits every node depth-first, roots in insertion order, a
// node's children visited before its next sibling.
func (t *Tree) Walk(visit func(*Node, int)) {
	var walk func(*Node, int)
	walk = func(n *Node, depth int) {
		visit(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range t.roots {
		walk(r, 0)
	}
}

// Roots returns the tree's top-level nodes.
func (t *Tree) Roots() []*Node {
	return t.roots
}
