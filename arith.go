package harmonia

import "golang.org/x/exp/constraints"

// OctaveSize is the number of semitones in an octave.
const OctaveSize = 12

// mod is the floor modulo: the result always has the sign of b.
func mod[T constraints.Integer](a, b T) T {
	return (a%b + b) % b
}

// floorDiv is the division rounding towards negative infinity, the companion
// of mod: a == floorDiv(a, b)*b + mod(a, b).
func floorDiv[T constraints.Integer](a, b T) T {
	return (a - mod(a, b)) / b
}

// WrapDegree splits a scale degree into an index within a scale of the given
// length and the number of octaves the degree is above (or below) the scale.
// For example, degree 8 in a 7 note scale is index 1, octaveCarry 1 and
// degree -1 is index 6, octaveCarry -1. Lengths <= 0 return zeros.
func WrapDegree(degree, length int) (index, octaveCarry int) {
	if length <= 0 {
		return 0, 0
	}
	return mod(degree, length), floorDiv(degree, length)
}

// RotateWithCarry rotates the notes left by amount positions (right if
// negative). Notes that wrap around the end are moved up by an octave per
// wrap, and notes wrapping around the start down, so [60 64 67] rotated by 1
// is [64 67 72]: the first inversion. Rotating back by -amount restores the
// original notes. The input is not modified.
func RotateWithCarry(notes []int, amount int) []int {
	ret := make([]int, len(notes))
	for i := range ret {
		index, carry := WrapDegree(i+amount, len(notes))
		ret[i] = notes[index] + carry*OctaveSize
	}
	return ret
}

// PitchClassOf returns the pitch class (0 = C, 1 = C#, ... 11 = B) of a MIDI
// note. Works for negative values too, which can appear before clamping.
func PitchClassOf(note int) PitchClass {
	return PitchClass(mod(note, OctaveSize))
}
