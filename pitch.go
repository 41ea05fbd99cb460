package harmonia

import "fmt"

// PitchClass is a note without its octave: 0 = C, 1 = C#, ..., 11 = B.
type PitchClass int

var pitchClassNames = []string{
	"C",
	"C#",
	"D",
	"D#",
	"E",
	"F",
	"F#",
	"G",
	"G#",
	"A",
	"A#",
	"B",
}

var letterPitchClass = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// String returns the sharp spelling of the pitch class, e.g. "F#".
func (p PitchClass) String() string {
	return pitchClassNames[mod(p, OctaveSize)]
}

// ParsePitchClass parses a pitch class name: an upper case letter A-G
// followed by any number of sharps (#) or flats (b). "Cb" is pitch class 11
// and "B#" pitch class 0. Lower case names such as "d" or "bb" are not pitch
// classes, so they remain free for node IDs.
func ParsePitchClass(s string) (PitchClass, bool) {
	if len(s) == 0 {
		return 0, false
	}
	base, ok := letterPitchClass[s[0]]
	if !ok {
		return 0, false
	}
	for _, c := range s[1:] {
		switch c {
		case '#':
			base++
		case 'b':
			base--
		default:
			return 0, false
		}
	}
	return mod(PitchClass(base), OctaveSize), true
}

func (p PitchClass) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PitchClass) UnmarshalText(text []byte) error {
	v, ok := ParsePitchClass(string(text))
	if !ok {
		return fmt.Errorf("invalid pitch class %q", string(text))
	}
	*p = v
	return nil
}

// NoteName returns the textual representation of a MIDI note, using the
// convention where middle C (60) is C4.
func NoteName(note int) string {
	return fmt.Sprintf("%v%d", PitchClassOf(note), floorDiv(note, OctaveSize)-1)
}
