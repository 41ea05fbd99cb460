package harmonia

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// PoseVector is the set of offsets a Pose applies at one instant. The zero
// value is the identity pose.
//
// Chromatic moves every resolved note by semitones, Octave by octaves and
// Chordal rotates the resolved notes with octave carry (inversions). Scalar
// holds degree offsets keyed by ancestor node: the notes are transposed along
// the scale of that ancestor. Voicing holds semitone offsets keyed by pitch
// class, applied only to the resolved notes of that pitch class.
//
// Pose vectors compose additively: when several are active at once, the
// offsets of the same key are summed.
type PoseVector struct {
	Chromatic int
	Chordal   int
	Octave    int
	Scalar    map[NodeID]int
	Voicing   map[PitchClass]int
}

const (
	chromaticKey = "chromatic"
	chordalKey   = "chordal"
	octaveKey    = "octave"
)

// IsZero returns true if the pose does not change anything.
func (p PoseVector) IsZero() bool {
	if p.Chromatic != 0 || p.Chordal != 0 || p.Octave != 0 {
		return false
	}
	for _, v := range p.Scalar {
		if v != 0 {
			return false
		}
	}
	for _, v := range p.Voicing {
		if v != 0 {
			return false
		}
	}
	return true
}

// Copy makes a deep copy of a PoseVector.
func (p PoseVector) Copy() PoseVector {
	return p.Add(PoseVector{})
}

// Add returns the key-by-key sum of the two poses. Keys whose offsets sum to
// zero are left out; neither operand is modified.
func (p PoseVector) Add(other PoseVector) PoseVector {
	ret := PoseVector{
		Chromatic: p.Chromatic + other.Chromatic,
		Chordal:   p.Chordal + other.Chordal,
		Octave:    p.Octave + other.Octave,
	}
	ret.Scalar = sumMaps(p.Scalar, other.Scalar)
	ret.Voicing = sumMaps(p.Voicing, other.Voicing)
	return ret
}

// Equal reports whether the poses have the same effect. Missing keys and keys
// with zero offsets are considered equal.
func (p PoseVector) Equal(other PoseVector) bool {
	return p.Add(negate(other)).IsZero()
}

// SumPoses sums any number of poses. Summing is commutative and the same key
// appearing in multiple poses stacks; the last pose does not win.
func SumPoses(poses ...PoseVector) PoseVector {
	var ret PoseVector
	for _, p := range poses {
		ret = ret.Add(p)
	}
	return ret
}

func negate(p PoseVector) PoseVector {
	ret := PoseVector{Chromatic: -p.Chromatic, Chordal: -p.Chordal, Octave: -p.Octave}
	for k, v := range p.Scalar {
		if ret.Scalar == nil {
			ret.Scalar = map[NodeID]int{}
		}
		ret.Scalar[k] = -v
	}
	for k, v := range p.Voicing {
		if ret.Voicing == nil {
			ret.Voicing = map[PitchClass]int{}
		}
		ret.Voicing[k] = -v
	}
	return ret
}

func sumMaps[K comparable](a, b map[K]int) map[K]int {
	var ret map[K]int
	add := func(m map[K]int) {
		for k, v := range m {
			if ret == nil {
				ret = make(map[K]int, len(a)+len(b))
			}
			ret[k] += v
			if ret[k] == 0 {
				delete(ret, k)
			}
		}
	}
	add(a)
	add(b)
	if len(ret) == 0 {
		return nil
	}
	return ret
}

// Entries returns the pose as a flat map from key to offset, the form the
// pose is saved in: "chromatic", "chordal" and "octave" for the respective
// offsets, pitch class names for the voicing and node IDs for the scalar
// offsets. Zero offsets are left out.
func (p PoseVector) Entries() map[string]int {
	ret := map[string]int{}
	for k, v := range p.Scalar {
		if v != 0 {
			ret[string(k)] = v
		}
	}
	for k, v := range p.Voicing {
		if v != 0 {
			ret[k.String()] = v
		}
	}
	if p.Chromatic != 0 {
		ret[chromaticKey] = p.Chromatic
	}
	if p.Chordal != 0 {
		ret[chordalKey] = p.Chordal
	}
	if p.Octave != 0 {
		ret[octaveKey] = p.Octave
	}
	return ret
}

// PoseFromEntries is the inverse of Entries. A key that parses as a pitch
// class is treated as a voicing offset even if a node happens to have the
// same ID; all other unknown keys are scalar offsets. Keys that are spelled
// differently but mean the same pitch class (e.g. "C#" and "Db") are summed.
func PoseFromEntries(entries map[string]int) PoseVector {
	var ret PoseVector
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := entries[k]
		switch k {
		case chromaticKey:
			ret.Chromatic += v
		case chordalKey:
			ret.Chordal += v
		case octaveKey:
			ret.Octave += v
		default:
			if pc, ok := ParsePitchClass(k); ok {
				ret = ret.Add(PoseVector{Voicing: map[PitchClass]int{pc: v}})
			} else {
				ret = ret.Add(PoseVector{Scalar: map[NodeID]int{NodeID(k): v}})
			}
		}
	}
	return ret
}

func (p PoseVector) String() string {
	entries := p.Entries()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ret := "{"
	for i, k := range keys {
		if i > 0 {
			ret += " "
		}
		ret += fmt.Sprintf("%v:%d", k, entries[k])
	}
	return ret + "}"
}

func (p PoseVector) MarshalYAML() (interface{}, error) {
	return p.Entries(), nil
}

func (p *PoseVector) UnmarshalYAML(value *yaml.Node) error {
	var entries map[string]int
	if err := value.Decode(&entries); err != nil {
		return fmt.Errorf("could not decode pose: %w", err)
	}
	*p = PoseFromEntries(entries)
	return nil
}

func (p PoseVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Entries())
}

func (p *PoseVector) UnmarshalJSON(data []byte) error {
	var entries map[string]int
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("could not decode pose: %w", err)
	}
	*p = PoseFromEntries(entries)
	return nil
}
