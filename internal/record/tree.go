// Package record implements the resolution record: a tree of resolution
// events plus a "current" insertion pointer, shared across one top-level
// Resolve call. The tree is deliberately domain-agnostic - a Node carries
// an opaque Payload, and equality/formatting/"which kind of node is this"
// are all questions the root package answers by type-asserting the
// Payload it put there itself.
package record

import "errors"

// ErrUnbalanced is returned by Restore when the stash is empty.
var ErrUnbalanced = errors.New("record: restore called with empty stash")

// Node is one step recorded during a resolution.
type Node struct {
	Payload  any
	Parent   *Node
	Children []*Node
}

// Tree is a mutable resolution record: a tree of Nodes rooted at Root,
// with a movable Current insertion point.
type Tree struct {
	root    *Node
	current *Node
	stash   []*Node
}

// New creates a Tree whose root node carries rootPayload.
func New(rootPayload any) *Tree {
	root := &Node{Payload: rootPayload}
	return &Tree{root: root, current: root}
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// Current returns the tree's current insertion node.
func (t *Tree) Current() *Node { return t.current }

// AddNode appends a new child under Current, moves Current to it, and
// returns it.
func (t *Tree) AddNode(payload any) *Node {
	n := &Node{Payload: payload, Parent: t.current}
	t.current.Children = append(t.current.Children, n)
	t.current = n
	return n
}

// Stash pushes Current onto an internal stack without moving it.
func (t *Tree) Stash() {
	t.stash = append(t.stash, t.current)
}

// Restore pops the top of the stash and makes it Current. It returns
// ErrUnbalanced if the stash is empty - Stash and Restore must be
// strictly paired within one resolve frame, and an empty stash here means
// a caller broke that pairing.
func (t *Tree) Restore() error {
	if len(t.stash) == 0 {
		return ErrUnbalanced
	}

	top := len(t.stash) - 1
	t.current = t.stash[top]
	t.stash = t.stash[:top]
	return nil
}

// SetCurrent forcibly repositions Current. Callers that use this outside
// a Stash/Restore pair (e.g. to give each element of a Multiple resolution
// its own sibling frame) are responsible for restoring Current themselves
// afterwards.
func (t *Tree) SetCurrent(n *Node) {
	t.current = n
}

// Ancestors returns the chain of nodes from Current's parent up to (but
// excluding) the root, nearest ancestor first.
func (t *Tree) Ancestors() []*Node {
	var out []*Node
	for n := t.current.Parent; n != nil && n != t.root; n = n.Parent {
		out = append(out, n)
	}
	return out
}

// Paths returns the chain of nodes from Current up to (but excluding) the
// root, Current first - the sequence rendered by the error formatter.
func (t *Tree) Paths() []*Node {
	var out []*Node
	for n := t.current; n != nil && n != t.root; n = n.Parent {
		out = append(out, n)
	}
	return out
}

// FindEqualAncestor walks from Current's parent up to (but excluding) the
// root and returns the first ancestor node for which equal(ancestor,
// current) is true, or nil if there is none. The equality rule itself is
// supplied by the caller since only the root package knows what a node's
// Payload means.
func (t *Tree) FindEqualAncestor(equal func(candidate, current any) bool) *Node {
	for n := t.current.Parent; n != nil && n != t.root; n = n.Parent {
		if equal(n.Payload, t.current.Payload) {
			return n
		}
	}
	return nil
}

// WalkUp calls visit on Current and then each ancestor up to and
// including the root, stopping early if visit returns false.
func (t *Tree) WalkUp(visit func(n *Node) bool) {
	for n := t.current; n != nil; n = n.Parent {
		if !visit(n) {
			return
		}
	}
}
