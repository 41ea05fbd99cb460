package resolve

import "github.com/vsariola/harmonia"

// applyPose applies the post-resolution steps of a pose, in order: chromatic,
// octave, chordal, voicing. The input is not modified; empty input gives
// empty output.
func applyPose(notes []int, pose harmonia.PoseVector) []int {
	ret := make([]int, len(notes))
	for i, n := range notes {
		ret[i] = n + pose.Chromatic + pose.Octave*harmonia.OctaveSize
	}
	ret = harmonia.RotateWithCarry(ret, pose.Chordal)
	for i, n := range ret {
		ret[i] = n + pose.Voicing[harmonia.PitchClassOf(n)]
	}
	return ret
}
