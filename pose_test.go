package harmonia_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/harmonia"
)

func TestPoseSumStacksSameKeys(t *testing.T) {
	a := harmonia.PoseVector{Chromatic: 2, Scalar: map[harmonia.NodeID]int{"x": 1}}
	b := harmonia.PoseVector{Chromatic: 3, Scalar: map[harmonia.NodeID]int{"x": 2, "y": -1}, Voicing: map[harmonia.PitchClass]int{4: -1}}
	got := harmonia.SumPoses(a, b)
	expected := harmonia.PoseVector{Chromatic: 5, Scalar: map[harmonia.NodeID]int{"x": 3, "y": -1}, Voicing: map[harmonia.PitchClass]int{4: -1}}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("got %v, expected %v", got, expected)
	}
	if !reflect.DeepEqual(harmonia.SumPoses(b, a), got) {
		t.Fatalf("summing should be commutative")
	}
	if a.Chromatic != 2 || a.Scalar["x"] != 1 {
		t.Fatalf("Add modified its operand: %v", a)
	}
}

func TestPoseCancellingKeysDisappear(t *testing.T) {
	a := harmonia.PoseVector{Octave: 1, Scalar: map[harmonia.NodeID]int{"x": 1}}
	b := harmonia.PoseVector{Octave: -1, Scalar: map[harmonia.NodeID]int{"x": -1}}
	got := a.Add(b)
	if !got.IsZero() || got.Scalar != nil {
		t.Fatalf("expected the zero pose, got %#v", got)
	}
	if !a.Equal(harmonia.PoseVector{Octave: 1, Scalar: map[harmonia.NodeID]int{"x": 1, "z": 0}}) {
		t.Fatalf("zero offsets should not matter for equality")
	}
	if a.Equal(b) {
		t.Fatalf("different poses reported equal")
	}
}

func TestPoseEntries(t *testing.T) {
	p := harmonia.PoseVector{
		Chromatic: 1,
		Chordal:   -2,
		Octave:    3,
		Scalar:    map[harmonia.NodeID]int{"4f1c": 1},
		Voicing:   map[harmonia.PitchClass]int{6: -1},
	}
	entries := p.Entries()
	expected := map[string]int{"chromatic": 1, "chordal": -2, "octave": 3, "4f1c": 1, "F#": -1}
	if !reflect.DeepEqual(entries, expected) {
		t.Fatalf("got entries %v, expected %v", entries, expected)
	}
	if back := harmonia.PoseFromEntries(entries); !reflect.DeepEqual(back, p) {
		t.Fatalf("got %#v back, expected %#v", back, p)
	}
	merged := harmonia.PoseFromEntries(map[string]int{"C#": 1, "Db": 2})
	if merged.Voicing[1] != 3 {
		t.Fatalf("enharmonic keys should sum, got %v", merged)
	}
	if s := p.String(); s != "{4f1c:1 F#:-1 chordal:-2 chromatic:1 octave:3}" {
		t.Fatalf("unexpected string %v", s)
	}
}

func TestPoseYAML(t *testing.T) {
	var p harmonia.PoseVector
	if err := yaml.Unmarshal([]byte("{chromatic: 2, Bb: -1, my-scale: 3}"), &p); err != nil {
		t.Fatalf("could not unmarshal pose: %v", err)
	}
	expected := harmonia.PoseVector{Chromatic: 2, Scalar: map[harmonia.NodeID]int{"my-scale": 3}, Voicing: map[harmonia.PitchClass]int{10: -1}}
	if !reflect.DeepEqual(p, expected) {
		t.Fatalf("got %#v, expected %#v", p, expected)
	}
	out, err := yaml.Marshal(p)
	if err != nil {
		t.Fatalf("could not marshal pose: %v", err)
	}
	var back harmonia.PoseVector
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("could not unmarshal marshaled pose: %v", err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Fatalf("yaml round trip changed the pose: %v -> %v", p, back)
	}
	if err := yaml.Unmarshal([]byte("[1, 2]"), &p); err == nil {
		t.Fatalf("a list should not unmarshal as a pose")
	}
}

func TestPoseJSON(t *testing.T) {
	p := harmonia.PoseVector{Chordal: 1, Voicing: map[harmonia.PitchClass]int{0: 12}}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("could not marshal pose: %v", err)
	}
	if string(out) != `{"C":12,"chordal":1}` {
		t.Fatalf("unexpected json %s", out)
	}
	var back harmonia.PoseVector
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("could not unmarshal pose: %v", err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Fatalf("json round trip changed the pose: %v -> %v", p, back)
	}
}

func TestPoseLowerCaseKeysAreNodes(t *testing.T) {
	pose := harmonia.PoseFromEntries(map[string]int{"d": 1, "bb": 2, "e": 3, "F#": 4})
	expected := harmonia.PoseVector{
		Scalar:  map[harmonia.NodeID]int{"d": 1, "bb": 2, "e": 3},
		Voicing: map[harmonia.PitchClass]int{6: 4},
	}
	if !reflect.DeepEqual(pose, expected) {
		t.Fatalf("got pose %#v, expected %#v", pose, expected)
	}
}
