// Package resolve turns Scale Tracks and Poses into concrete MIDI notes.
//
// Resolution is a pure function of its arguments: the forest, the pose
// sources and the tick. Nothing is cached between calls, so the functions can
// be called repeatedly and concurrently, and callers just call them again
// when the project changes.
package resolve

import (
	"go.uber.org/zap"

	"github.com/vsariola/harmonia"
)

// Resolver resolves scales and poses. The zero value is ready to use and
// logs nothing; Logger, if set, receives diagnostics such as pose keys that
// name nodes which are not ancestors of the resolved node.
type Resolver struct {
	Logger *zap.Logger
}

// New returns a Resolver logging to the given logger; nil means no logging.
func New(logger *zap.Logger) *Resolver {
	return &Resolver{Logger: logger}
}

func (r *Resolver) logger() *zap.Logger {
	if r == nil || r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// ResolveScale returns the notes of the scale of the node, without any poses
// applied, in the order of its local scale. Roots resolve against the
// chromatic scale starting from Origin. On failure, the returned notes are
// empty and the error is a *ResolutionError.
func (r *Resolver) ResolveScale(id harmonia.NodeID, forest harmonia.Forest) ([]int, error) {
	a := newArena(forest)
	target, ok := a.index[id]
	if !ok {
		return r.fail(id, ErrNodeNotFound)
	}
	notes, err := newPass(a).resolve(target)
	if err != nil {
		return r.fail(id, err)
	}
	return notes, nil
}

// ResolveForest resolves the scales of all nodes in one pass, sharing the
// resolved ancestors between siblings. Nodes that could not be resolved are
// missing from the notes and present in the errors.
func (r *Resolver) ResolveForest(forest harmonia.Forest) (map[harmonia.NodeID][]int, map[harmonia.NodeID]error) {
	a := newArena(forest)
	p := newPass(a)
	notes := make(map[harmonia.NodeID][]int, len(a.ids))
	errs := map[harmonia.NodeID]error{}
	for i, id := range a.ids {
		n, err := p.resolve(i)
		if err != nil {
			errs[id] = &ResolutionError{Node: id, Err: err}
			continue
		}
		notes[id] = n
	}
	return notes, errs
}

// Compose resolves the node with the poses applied. The poses are summed
// first, so the same key in several poses stacks. The steps are then, in this
// order: scalar offsets during the resolution of the ancestors, chromatic and
// octave offsets, chordal rotation and finally the pitch class voicing.
//
// On failure, the returned notes are empty and the error is a
// *ResolutionError; callers should play silence for the node.
func (r *Resolver) Compose(id harmonia.NodeID, forest harmonia.Forest, poses ...harmonia.PoseVector) ([]int, error) {
	a := newArena(forest)
	target, ok := a.index[id]
	if !ok {
		return r.fail(id, ErrNodeNotFound)
	}
	p := newPass(a)
	chain, err := p.walk(target)
	if err != nil {
		return r.fail(id, err)
	}
	return r.compose(p, chain, harmonia.SumPoses(poses...))
}

// ResolveNodeAtTick resolves the node at a tick of the timeline. The poses
// active at the tick on the node and on all its ancestors are summed and
// applied as in Compose.
func (r *Resolver) ResolveNodeAtTick(id harmonia.NodeID, forest harmonia.Forest, sources map[harmonia.NodeID][]harmonia.PoseSource, tick int) ([]int, error) {
	a := newArena(forest)
	target, ok := a.index[id]
	if !ok {
		return r.fail(id, ErrNodeNotFound)
	}
	p := newPass(a)
	chain, err := p.walk(target)
	if err != nil {
		return r.fail(id, err)
	}
	return r.compose(p, chain, activePose(a, chain, sources, tick))
}

// ActivePose returns the sum of the poses active at the tick on the node and
// its ancestors.
func (r *Resolver) ActivePose(id harmonia.NodeID, forest harmonia.Forest, sources map[harmonia.NodeID][]harmonia.PoseSource, tick int) (harmonia.PoseVector, error) {
	a := newArena(forest)
	target, ok := a.index[id]
	if !ok {
		return harmonia.PoseVector{}, &ResolutionError{Node: id, Err: ErrNodeNotFound}
	}
	chain, err := newPass(a).walk(target)
	if err != nil {
		return harmonia.PoseVector{}, &ResolutionError{Node: id, Err: err}
	}
	return activePose(a, chain, sources, tick), nil
}

// compose applies the pose to the target, chain[0], whose unresolved
// ancestors are the rest of the chain. The pass must be fresh: scalar shifts
// only take effect for nodes not yet resolved.
func (r *Resolver) compose(p *pass, chain []int, pose harmonia.PoseVector) ([]int, error) {
	target := chain[0]
	ancestors := make(map[int]bool, len(chain)-1)
	for _, i := range chain[1:] {
		ancestors[i] = true
	}
	for key, offset := range pose.Scalar {
		i, ok := p.a.index[key]
		if !ok || !ancestors[i] {
			r.logger().Debug("ignoring scalar offset for a node that is not an ancestor",
				zap.String("node", string(p.a.ids[target])),
				zap.String("key", string(key)),
				zap.Int("offset", offset))
			continue
		}
		p.shift[i] = offset
	}
	notes, err := p.resolve(target)
	if err != nil {
		return r.fail(p.a.ids[target], err)
	}
	return applyPose(notes, pose), nil
}

func (r *Resolver) fail(id harmonia.NodeID, err error) ([]int, error) {
	r.logger().Debug("resolution failed", zap.String("node", string(id)), zap.Error(err))
	return []int{}, &ResolutionError{Node: id, Err: err}
}

func activePose(a *arena, chain []int, sources map[harmonia.NodeID][]harmonia.PoseSource, tick int) harmonia.PoseVector {
	var pose harmonia.PoseVector
	for _, i := range chain {
		for _, s := range sources[a.ids[i]] {
			pose = pose.Add(s.ActiveVector(tick))
		}
	}
	return pose
}

var defaultResolver Resolver

// ResolveScale resolves the scale of a node without logging; see
// Resolver.ResolveScale.
func ResolveScale(id harmonia.NodeID, forest harmonia.Forest) ([]int, error) {
	return defaultResolver.ResolveScale(id, forest)
}

// ResolveNodeAtTick resolves a node at a tick without logging; see
// Resolver.ResolveNodeAtTick.
func ResolveNodeAtTick(id harmonia.NodeID, forest harmonia.Forest, sources map[harmonia.NodeID][]harmonia.PoseSource, tick int) ([]int, error) {
	return defaultResolver.ResolveNodeAtTick(id, forest, sources, tick)
}
