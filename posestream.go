package harmonia

import "sort"

type (
	// PoseSource is anything that can tell which pose is active at a given
	// tick of the timeline.
	PoseSource interface {
		ActiveVector(tick int) PoseVector
	}

	// PoseSegment is a pose held for Duration ticks.
	PoseSegment struct {
		Pose     PoseVector
		Duration int
	}

	// PoseStream is a sequence of poses, each following the previous one
	// immediately. The stream starts at offset 0.
	PoseStream []PoseSegment

	// PoseClip places a PoseStream on the timeline of a node, starting from
	// tick Start. Duration is the length of the clip in ticks; 0 means the
	// length of the stream. If the clip is longer than the stream, the stream
	// loops.
	PoseClip struct {
		Node     NodeID
		Start    int
		Duration int `yaml:",omitempty"`
		Stream   PoseStream
	}
)

// Length returns the total duration of the stream in ticks. Segments with
// negative durations count as zero.
func (s PoseStream) Length() int {
	ret := 0
	for _, seg := range s {
		ret += max(seg.Duration, 0)
	}
	return ret
}

// ActiveVector returns the pose active at the offset, or the zero pose if the
// offset is outside the stream. Segments with zero duration are never active.
func (s PoseStream) ActiveVector(offset int) PoseVector {
	if offset < 0 {
		return PoseVector{}
	}
	ends := make([]int, len(s))
	total := 0
	for i, seg := range s {
		total += max(seg.Duration, 0)
		ends[i] = total
	}
	// first segment that ends after the offset
	i := sort.Search(len(ends), func(i int) bool { return ends[i] > offset })
	if i >= len(s) {
		return PoseVector{}
	}
	return s[i].Pose
}

// Copy makes a deep copy of a PoseStream.
func (s PoseStream) Copy() PoseStream {
	ret := make(PoseStream, len(s))
	for i, seg := range s {
		ret[i] = PoseSegment{Pose: seg.Pose.Copy(), Duration: seg.Duration}
	}
	return ret
}

// Length returns the duration of the clip on the timeline.
func (c *PoseClip) Length() int {
	if c.Duration > 0 {
		return c.Duration
	}
	return c.Stream.Length()
}

// End returns the first tick after the clip.
func (c *PoseClip) End() int {
	return c.Start + c.Length()
}

// ActiveVector returns the pose of the clip at the tick of the timeline, the
// zero pose if the tick is outside the clip.
func (c *PoseClip) ActiveVector(tick int) PoseVector {
	if tick < c.Start || tick >= c.End() {
		return PoseVector{}
	}
	offset := tick - c.Start
	if l := c.Stream.Length(); l > 0 {
		offset %= l
	}
	return c.Stream.ActiveVector(offset)
}

// Copy makes a deep copy of a PoseClip.
func (c *PoseClip) Copy() PoseClip {
	return PoseClip{Node: c.Node, Start: c.Start, Duration: c.Duration, Stream: c.Stream.Copy()}
}
