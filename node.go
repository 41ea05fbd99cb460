package harmonia

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type (
	// NodeID identifies a ScaleNode within a project. IDs are opaque; new
	// nodes get random UUIDs, but any unique string works.
	NodeID string

	// ScaleNote is one entry of a local scale. Degree indexes the resolved
	// scale of the parent, modulo its length; degrees beyond the length (or
	// below zero) mean the same degree in a higher (or lower) octave. Offset
	// is added on top, in semitones, to express chromatic alterations.
	ScaleNote struct {
		Degree int
		Offset int `yaml:",omitempty"`
	}

	// ScaleNode is a Scale Track: a node in the scale hierarchy, defining its
	// scale relative to the resolved scale of its parent. A node without a
	// Parent is a root and its scale is relative to the chromatic scale
	// starting from middle C (MIDI note 60).
	//
	// The order of the notes in Scale is significant: it is not sorted by
	// pitch, as chordal rotations and descendant degree lookups depend on the
	// positions.
	ScaleNode struct {
		ID     NodeID
		Parent NodeID      `yaml:",omitempty"`
		Name   string      `yaml:",omitempty"`
		Scale  []ScaleNote `yaml:",flow"`
	}

	// Forest holds all the ScaleNodes of a project, keyed by their IDs. There
	// can be any number of roots. The methods of Forest never modify the
	// receiver; edits return a modified copy so that they can be replayed.
	Forest map[NodeID]ScaleNode
)

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("unknown node")
	ErrCycle         = errors.New("parent references form a cycle")
)

// NewNodeID returns a new random node ID.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// IsRoot returns true if the node has no parent.
func (n ScaleNode) IsRoot() bool {
	return n.Parent == ""
}

// Copy makes a deep copy of a ScaleNode.
func (n *ScaleNode) Copy() ScaleNode {
	scale := make([]ScaleNote, len(n.Scale))
	copy(scale, n.Scale)
	return ScaleNode{ID: n.ID, Parent: n.Parent, Name: n.Name, Scale: scale}
}

// Copy makes a deep copy of a Forest.
func (f Forest) Copy() Forest {
	ret := make(Forest, len(f))
	for id, n := range f {
		ret[id] = n.Copy()
	}
	return ret
}

// Get returns the node with the given id, and false if there is no such node.
func (f Forest) Get(id NodeID) (ScaleNode, bool) {
	n, ok := f[id]
	return n, ok
}

// Insert returns a copy of the forest with the node added. The node must have
// a non-empty, unused ID and its parent, if any, must already be in the forest.
func (f Forest) Insert(node ScaleNode) (Forest, error) {
	if node.ID == "" {
		return nil, errors.New("node id should not be empty")
	}
	if _, ok := f[node.ID]; ok {
		return nil, fmt.Errorf("cannot insert %v: %w", node.ID, ErrDuplicateNode)
	}
	if !node.IsRoot() {
		if _, ok := f[node.Parent]; !ok {
			return nil, fmt.Errorf("cannot insert %v under %v: %w", node.ID, node.Parent, ErrUnknownNode)
		}
	}
	ret := f.Copy()
	ret[node.ID] = node.Copy()
	return ret, nil
}

// Replace returns a copy of the forest where the node with the same ID is
// replaced with the given node. The parent is kept as it was; use Reparent to
// move nodes.
func (f Forest) Replace(node ScaleNode) (Forest, error) {
	old, ok := f[node.ID]
	if !ok {
		return nil, fmt.Errorf("cannot replace %v: %w", node.ID, ErrUnknownNode)
	}
	ret := f.Copy()
	n := node.Copy()
	n.Parent = old.Parent
	ret[node.ID] = n
	return ret, nil
}

// Delete returns a copy of the forest with the node and all its descendants
// removed. Deleting a node that does not exist returns an unmodified copy.
func (f Forest) Delete(id NodeID) Forest {
	ret := f.Copy()
	if _, ok := ret[id]; !ok {
		return ret
	}
	doomed := []NodeID{id}
	for len(doomed) > 0 {
		cur := doomed[len(doomed)-1]
		doomed = doomed[:len(doomed)-1]
		if _, ok := ret[cur]; !ok {
			continue // already removed; only possible with cyclic data
		}
		delete(ret, cur)
		doomed = append(doomed, ret.Children(cur)...)
	}
	return ret
}

// Reparent returns a copy of the forest where the node is moved under a new
// parent; an empty parent makes the node a root. Moves that would make a node
// its own ancestor are rejected.
func (f Forest) Reparent(id, parent NodeID) (Forest, error) {
	node, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("cannot move %v: %w", id, ErrUnknownNode)
	}
	if parent != "" {
		if _, ok := f[parent]; !ok {
			return nil, fmt.Errorf("cannot move %v under %v: %w", id, parent, ErrUnknownNode)
		}
		for cur, steps := parent, 0; cur != ""; cur, steps = f[cur].Parent, steps+1 {
			if cur == id || steps > len(f) {
				return nil, fmt.Errorf("cannot move %v under %v: %w", id, parent, ErrCycle)
			}
		}
	}
	ret := f.Copy()
	node = node.Copy()
	node.Parent = parent
	ret[id] = node
	return ret, nil
}

// Ancestors returns the ancestors of the node, root first, not including the
// node itself. The walk is bounded by the size of the forest, so malformed
// forests with cycles return ErrCycle instead of looping forever.
func (f Forest) Ancestors(id NodeID) ([]NodeID, error) {
	node, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("ancestors of %v: %w", id, ErrUnknownNode)
	}
	var ret []NodeID
	seen := map[NodeID]bool{id: true}
	for cur := node.Parent; cur != ""; {
		if seen[cur] {
			return nil, fmt.Errorf("ancestors of %v: %w", id, ErrCycle)
		}
		seen[cur] = true
		parent, ok := f[cur]
		if !ok {
			return nil, fmt.Errorf("ancestors of %v: parent %v: %w", id, cur, ErrUnknownNode)
		}
		ret = append(ret, cur)
		cur = parent.Parent
	}
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret, nil
}

// Children returns the IDs of the immediate children of the node, sorted.
func (f Forest) Children(id NodeID) []NodeID {
	var ret []NodeID
	for cid, n := range f {
		if n.Parent == id && cid != id {
			ret = append(ret, cid)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Roots returns the IDs of all root nodes, sorted.
func (f Forest) Roots() []NodeID {
	return f.Children("")
}

// Validate checks that every parent reference points to an existing node and
// that there are no cycles.
func (f Forest) Validate() error {
	for id, n := range f {
		if n.ID != id {
			return fmt.Errorf("node stored under %v has id %v", id, n.ID)
		}
		if _, err := f.Ancestors(id); err != nil {
			return err
		}
	}
	return nil
}
