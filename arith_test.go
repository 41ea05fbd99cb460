package harmonia_test

import (
	"reflect"
	"testing"

	"github.com/vsariola/harmonia"
)

func TestWrapDegree(t *testing.T) {
	cases := []struct {
		degree, length, index, carry int
	}{
		{0, 7, 0, 0},
		{6, 7, 6, 0},
		{7, 7, 0, 1},
		{8, 7, 1, 1},
		{15, 7, 1, 2},
		{-1, 7, 6, -1},
		{-7, 7, 0, -1},
		{-8, 7, 6, -2},
		{5, 0, 0, 0},
	}
	for _, c := range cases {
		index, carry := harmonia.WrapDegree(c.degree, c.length)
		if index != c.index || carry != c.carry {
			t.Fatalf("WrapDegree(%v, %v) = (%v, %v), expected (%v, %v)", c.degree, c.length, index, carry, c.index, c.carry)
		}
	}
}

func TestRotateWithCarry(t *testing.T) {
	cmaj7 := []int{60, 64, 67, 71}
	cases := []struct {
		amount   int
		expected []int
	}{
		{0, []int{60, 64, 67, 71}},
		{1, []int{64, 67, 71, 72}},
		{2, []int{67, 71, 72, 76}},
		{4, []int{72, 76, 79, 83}},
		{5, []int{76, 79, 83, 84}},
		{-1, []int{59, 60, 64, 67}},
		{-4, []int{48, 52, 55, 59}},
	}
	for _, c := range cases {
		got := harmonia.RotateWithCarry(cmaj7, c.amount)
		if !reflect.DeepEqual(got, c.expected) {
			t.Fatalf("RotateWithCarry(%v, %v) = %v, expected %v", cmaj7, c.amount, got, c.expected)
		}
	}
	if !reflect.DeepEqual(cmaj7, []int{60, 64, 67, 71}) {
		t.Fatalf("RotateWithCarry modified its input: %v", cmaj7)
	}
}

func TestRotateWithCarryRoundTrip(t *testing.T) {
	inputs := [][]int{
		{60},
		{60, 64, 67},
		{67, 60, 52, 71, 59},
		{-5, 0, 130},
	}
	for _, a := range inputs {
		for n := -13; n <= 13; n++ {
			got := harmonia.RotateWithCarry(harmonia.RotateWithCarry(a, n), -n)
			if !reflect.DeepEqual(got, a) {
				t.Fatalf("rotating %v by %v and back gave %v", a, n, got)
			}
		}
	}
}

func TestRotateEmpty(t *testing.T) {
	got := harmonia.RotateWithCarry(nil, 3)
	if got == nil || len(got) != 0 {
		t.Fatalf("rotating nothing should give an empty slice, got %#v", got)
	}
}

func TestPitchClassOf(t *testing.T) {
	cases := map[int]harmonia.PitchClass{0: 0, 60: 0, 61: 1, 71: 11, 72: 0, -1: 11, -12: 0, -13: 11}
	for note, expected := range cases {
		if got := harmonia.PitchClassOf(note); got != expected {
			t.Fatalf("PitchClassOf(%v) = %v, expected %v", note, got, expected)
		}
	}
}
