package scenewire

import (
	"fmt"
)

// NodeID addresses a node inside a Hierarchy. IDs are dense indices into the
// hierarchy's arena and remain stable for the lifetime of the hierarchy.
type NodeID int

// NoNode is the parent of root nodes and the source of non-hierarchy
// injections.
const NoNode NodeID = -1

// node is one arena slot. Children and behaviors keep insertion order, which
// is what makes scans deterministic.
type node struct {
	name      string
	parent    NodeID
	children  []NodeID
	behaviors []any
}

// Hierarchy is an arena-backed scene tree. Nodes are created through AddNode
// and never removed; behaviors are attached through Attach. The hierarchy is
// not safe for concurrent mutation, and a resolution pass assumes the tree is
// not mutated while it runs.
type Hierarchy struct {
	nodes []node
}

// NewHierarchy creates an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{}
}

// AddNode appends a node under parent and returns its ID. Pass NoNode as the
// parent to create a root.
func (h *Hierarchy) AddNode(parent NodeID, name string) (NodeID, error) {
	if parent != NoNode && !h.valid(parent) {
		return NoNode, fmt.Errorf("%w: parent %d", ErrInvalidNode, parent)
	}

	id := NodeID(len(h.nodes))
	h.nodes = append(h.nodes, node{name: name, parent: parent})
	if parent != NoNode {
		h.nodes[parent].children = append(h.nodes[parent].children, id)
	}
	return id, nil
}

// Attach adds a behavior to a node. Behaviors on a node keep their attachment
// order; when several behaviors on the same ancestor satisfy a member, the
// first attached wins.
func (h *Hierarchy) Attach(id NodeID, behavior any) error {
	if !h.valid(id) {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	if behavior == nil {
		return ErrNilBehavior
	}
	h.nodes[id].behaviors = append(h.nodes[id].behaviors, behavior)
	return nil
}

// Parent returns the parent of id, or NoNode for roots and invalid IDs.
func (h *Hierarchy) Parent(id NodeID) NodeID {
	if !h.valid(id) {
		return NoNode
	}
	return h.nodes[id].parent
}

// Children returns the children of id in insertion order.
func (h *Hierarchy) Children(id NodeID) []NodeID {
	if !h.valid(id) {
		return nil
	}
	out := make([]NodeID, len(h.nodes[id].children))
	copy(out, h.nodes[id].children)
	return out
}

// Behaviors returns the behaviors attached to id in attachment order.
func (h *Hierarchy) Behaviors(id NodeID) []any {
	if !h.valid(id) {
		return nil
	}
	out := make([]any, len(h.nodes[id].behaviors))
	copy(out, h.nodes[id].behaviors)
	return out
}

// Name returns the diagnostic name of id.
func (h *Hierarchy) Name(id NodeID) string {
	if !h.valid(id) {
		return ""
	}
	return h.nodes[id].name
}

// Roots returns every node without a parent, in creation order.
func (h *Hierarchy) Roots() []NodeID {
	var roots []NodeID
	for i := range h.nodes {
		if h.nodes[i].parent == NoNode {
			roots = append(roots, NodeID(i))
		}
	}
	return roots
}

// Len returns the number of nodes in the hierarchy.
func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

func (h *Hierarchy) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(h.nodes)
}

// walk visits roots and their descendants pre-order, parent before children,
// children in insertion order. Invalid and duplicate roots are skipped.
func (h *Hierarchy) walk(roots []NodeID, visit func(NodeID)) {
	seen := make(map[NodeID]bool, len(roots))
	var walkNode func(NodeID)
	walkNode = func(id NodeID) {
		visit(id)
		for _, child := range h.nodes[id].children {
			walkNode(child)
		}
	}
	for _, root := range roots {
		if !h.valid(root) || seen[root] {
			continue
		}
		seen[root] = true
		walkNode(root)
	}
}
