// Package shape models the drawable items of a selection as a tree.
package shape

import "github.com/wethinkt/go-swatchsheet/internal/color"

// Node is a drawable item. The concrete type is always *Leaf, *Group or
// *CompoundPath.
type Node interface {
	NodeID() string
	isNode()
}

// Leaf is a single painted item such as a path, rectangle or text.
type Leaf struct {
	ID     string
	Filled bool
	Fill   color.Color // nil when not filled
}

// Group is an ordered collection of nodes.
type Group struct {
	ID       string
	Children []Node
}

// CompoundPath is a set of paths painted as one item.
type CompoundPath struct {
	ID       string
	Children []Node
}

func (n *Leaf) NodeID() string         { return n.ID }
func (n *Group) NodeID() string        { return n.ID }
func (n *CompoundPath) NodeID() string { return n.ID }

func (*Leaf) isNode()         {}
func (*Group) isNode()        {}
func (*CompoundPath) isNode() {}

// Walk visits every leaf under roots depth first in pre-order. Groups and
// compound paths are expanded in child order. Walk stops early when fn
// returns false.
func Walk(roots []Node, fn func(*Leaf) bool) {
	walk(roots, fn)
}

func walk(nodes []Node, fn func(*Leaf) bool) bool {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Leaf:
			if !fn(v) {
				return false
			}
		case *Group:
			if !walk(v.Children, fn) {
				return false
			}
		case *CompoundPath:
			if !walk(v.Children, fn) {
				return false
			}
		}
	}
	return true
}

// Count returns the number of leaves under roots.
func Count(roots []Node) int {
	var n int
	Walk(roots, func(*Leaf) bool {
		n++
		return true
	})
	return n
}

// Find returns the first node under roots whose ID is id, in pre-order.
func Find(roots []Node, id string) Node {
	for _, n := range roots {
		if n.NodeID() == id {
			return n
		}
		var children []Node
		switch v := n.(type) {
		case *Group:
			children = v.Children
		case *CompoundPath:
			children = v.Children
		}
		if found := Find(children, id); found != nil {
			return found
		}
	}
	return nil
}
