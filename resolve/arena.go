package resolve

import (
	"fmt"
	"sort"

	"github.com/vsariola/harmonia"
)

const (
	noParent      = -1
	missingParent = -2
)

// arena is a flattened Forest: nodes are addressed by integer indices and
// the parent links are indices too, so resolution needs no hashing.
type arena struct {
	ids       []harmonia.NodeID
	parentIDs []harmonia.NodeID
	parents   []int
	scales    [][]harmonia.ScaleNote
	index     map[harmonia.NodeID]int
}

func newArena(forest harmonia.Forest) *arena {
	ids := make([]harmonia.NodeID, 0, len(forest))
	for id := range forest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	a := &arena{
		ids:       ids,
		parentIDs: make([]harmonia.NodeID, len(ids)),
		parents:   make([]int, len(ids)),
		scales:    make([][]harmonia.ScaleNote, len(ids)),
		index:     make(map[harmonia.NodeID]int, len(ids)),
	}
	for i, id := range ids {
		a.index[id] = i
	}
	for i, id := range ids {
		n := forest[id]
		a.scales[i] = n.Scale
		a.parentIDs[i] = n.Parent
		if n.Parent == "" {
			a.parents[i] = noParent
		} else if p, ok := a.index[n.Parent]; ok {
			a.parents[i] = p
		} else {
			a.parents[i] = missingParent
		}
	}
	return a
}

// pass holds the state of one top-level resolution call. It is never shared
// between calls, so concurrent calls need no locking.
type pass struct {
	a      *arena
	memo   [][]int
	done   []bool
	onPath []bool
	// shift[i] is the scalar offset added to the degrees of the nodes that
	// resolve against node i
	shift []int
}

func newPass(a *arena) *pass {
	return &pass{
		a:      a,
		memo:   make([][]int, len(a.ids)),
		done:   make([]bool, len(a.ids)),
		onPath: make([]bool, len(a.ids)),
		shift:  make([]int, len(a.ids)),
	}
}

// walk returns the nodes that still need resolving for the target, starting
// from the target and going towards the root. The walk stops at the root or
// at the first node already resolved in this pass. Every node is visited at
// most once, so a cycle is found in at most len(ids) steps.
func (p *pass) walk(target int) ([]int, error) {
	var chain []int
	defer func() {
		for _, i := range chain {
			p.onPath[i] = false
		}
	}()
	cur := target
	for cur >= 0 && !p.done[cur] {
		if p.onPath[cur] {
			return nil, fmt.Errorf("%v is its own ancestor: %w", p.a.ids[cur], ErrCycleDetected)
		}
		p.onPath[cur] = true
		chain = append(chain, cur)
		cur = p.a.parents[cur]
	}
	if cur == missingParent {
		last := chain[len(chain)-1]
		return nil, fmt.Errorf("parent %v of %v: %w", p.a.parentIDs[last], p.a.ids[last], ErrNodeNotFound)
	}
	return chain, nil
}

// resolve returns the resolved notes of the target, resolving and memoizing
// all its unresolved ancestors first.
func (p *pass) resolve(target int) ([]int, error) {
	chain, err := p.walk(target)
	if err != nil {
		return nil, err
	}
	for k := len(chain) - 1; k >= 0; k-- {
		i := chain[k]
		frame, shift := chromatic(), 0
		if parent := p.a.parents[i]; parent >= 0 {
			frame, shift = p.memo[parent], p.shift[parent]
		}
		p.memo[i] = resolveLocal(p.a.scales[i], frame, shift)
		p.done[i] = true
	}
	return p.memo[target], nil
}

// Origin is the MIDI note of degree 0 of the chromatic scale that the roots
// are resolved against: middle C.
const Origin = 60

func chromatic() []int {
	ret := make([]int, harmonia.OctaveSize)
	for i := range ret {
		ret[i] = Origin + i
	}
	return ret
}

// resolveLocal maps a local scale through the resolved frame of its parent.
// Degrees wrap around the frame, every wrap adding an octave. An empty frame
// resolves to no notes.
func resolveLocal(scale []harmonia.ScaleNote, frame []int, shift int) []int {
	ret := make([]int, 0, len(scale))
	if len(frame) == 0 {
		return ret
	}
	for _, n := range scale {
		index, carry := harmonia.WrapDegree(n.Degree+shift, len(frame))
		ret = append(ret, frame[index]+n.Offset+carry*harmonia.OctaveSize)
	}
	return ret
}
