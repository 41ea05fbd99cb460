package harmonia_test

import (
	"reflect"
	"testing"

	"github.com/vsariola/harmonia"
)

func TestPresetScale(t *testing.T) {
	major, ok := harmonia.PresetScale("major")
	if !ok || !reflect.DeepEqual(major, harmonia.DegreeScale(0, 2, 4, 5, 7, 9, 11)) {
		t.Fatalf("unexpected major scale %v", major)
	}
	if _, ok := harmonia.PresetScale("nope"); ok {
		t.Fatalf("unknown preset should not be found")
	}
	names := harmonia.PresetNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("preset names not sorted: %v", names)
		}
	}
}

func TestScaleEditing(t *testing.T) {
	n := harmonia.ScaleNode{ID: "n", Scale: harmonia.DegreeScale(0, 2, 4)}
	added := n.AddNote(harmonia.ScaleNote{Degree: 6})
	if !reflect.DeepEqual(added.Scale, harmonia.DegreeScale(0, 2, 4, 6)) || len(n.Scale) != 3 {
		t.Fatalf("AddNote: got %v, original %v", added.Scale, n.Scale)
	}
	removed := n.RemoveNote(1)
	if !reflect.DeepEqual(removed.Scale, harmonia.DegreeScale(0, 4)) || !reflect.DeepEqual(n.Scale, harmonia.DegreeScale(0, 2, 4)) {
		t.Fatalf("RemoveNote: got %v, original %v", removed.Scale, n.Scale)
	}
	if same := n.RemoveNote(5); !reflect.DeepEqual(same.Scale, n.Scale) {
		t.Fatalf("RemoveNote out of range changed the scale: %v", same.Scale)
	}
	moved := n.TransposeNote(2, 1, -1)
	if moved.Scale[2] != (harmonia.ScaleNote{Degree: 5, Offset: -1}) || n.Scale[2].Degree != 4 {
		t.Fatalf("TransposeNote: got %v, original %v", moved.Scale, n.Scale)
	}
}

func TestScaleRotate(t *testing.T) {
	n := harmonia.ScaleNode{ID: "n", Scale: harmonia.DegreeScale(0, 2, 4)}
	cases := []struct {
		amount   int
		expected []harmonia.ScaleNote
	}{
		{1, harmonia.DegreeScale(2, 4, 7)},
		{-1, harmonia.DegreeScale(-3, 0, 2)},
		{3, harmonia.DegreeScale(7, 9, 11)},
	}
	for _, c := range cases {
		got := n.Rotate(c.amount, 7)
		if !reflect.DeepEqual(got.Scale, c.expected) {
			t.Fatalf("Rotate(%v): got %v, expected %v", c.amount, got.Scale, c.expected)
		}
		back := got.Rotate(-c.amount, 7)
		if !reflect.DeepEqual(back.Scale, n.Scale) {
			t.Fatalf("Rotate(%v) and back gave %v", c.amount, back.Scale)
		}
	}
}
