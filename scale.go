package harmonia

import "sort"

// scalePresets are the degrees of common scales against the chromatic scale,
// i.e. the local scale of a root node.
var scalePresets = map[string][]int{
	"chromatic":        {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"locrian":          {0, 1, 3, 5, 6, 8, 10},
	"harmonic-minor":   {0, 2, 3, 5, 7, 8, 11},
	"melodic-minor":    {0, 2, 3, 5, 7, 9, 11},
	"major-pentatonic": {0, 2, 4, 7, 9},
	"minor-pentatonic": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},
	"whole-tone":       {0, 2, 4, 6, 8, 10},
}

// PresetScale returns the local scale of a named preset, with the degrees
// relative to the chromatic scale. The second return value is false for
// unknown names.
func PresetScale(name string) ([]ScaleNote, bool) {
	degrees, ok := scalePresets[name]
	if !ok {
		return nil, false
	}
	return DegreeScale(degrees...), true
}

// PresetNames returns the names of all scale presets, sorted.
func PresetNames() []string {
	ret := make([]string, 0, len(scalePresets))
	for k := range scalePresets {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// DegreeScale is a convenience for building local scales without offsets.
func DegreeScale(degrees ...int) []ScaleNote {
	ret := make([]ScaleNote, len(degrees))
	for i, d := range degrees {
		ret[i] = ScaleNote{Degree: d}
	}
	return ret
}

// AddNote returns a copy of the node with the note appended to its scale.
func (n *ScaleNode) AddNote(note ScaleNote) ScaleNode {
	ret := n.Copy()
	ret.Scale = append(ret.Scale, note)
	return ret
}

// RemoveNote returns a copy of the node with the note at index removed.
// Indices out of range return an unmodified copy.
func (n *ScaleNode) RemoveNote(index int) ScaleNode {
	ret := n.Copy()
	if index < 0 || index >= len(ret.Scale) {
		return ret
	}
	ret.Scale = append(ret.Scale[:index], ret.Scale[index+1:]...)
	return ret
}

// TransposeNote returns a copy of the node where the note at index is moved
// by the given number of parent scale degrees and semitones. Indices out of
// range return an unmodified copy.
func (n *ScaleNode) TransposeNote(index, degrees, semitones int) ScaleNode {
	ret := n.Copy()
	if index < 0 || index >= len(ret.Scale) {
		return ret
	}
	ret.Scale[index].Degree += degrees
	ret.Scale[index].Offset += semitones
	return ret
}

// Rotate returns a copy of the node with its scale rotated by amount
// positions: the inversion of the scale, in terms of the parent scale. Notes
// wrapping around get their degree moved by parentLen, so the rotated scale
// keeps ascending the same way RotateWithCarry does for resolved notes.
func (n *ScaleNode) Rotate(amount, parentLen int) ScaleNode {
	ret := n.Copy()
	for i := range ret.Scale {
		index, carry := WrapDegree(i+amount, len(n.Scale))
		ret.Scale[i] = n.Scale[index]
		ret.Scale[i].Degree += carry * parentLen
	}
	return ret
}
