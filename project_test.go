package harmonia_test

import (
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/vsariola/harmonia"
)

func loadTestProject(t *testing.T) *harmonia.Project {
	t.Helper()
	data, err := os.ReadFile("testdata/progression.yml")
	if err != nil {
		t.Fatalf("cannot read the test project: %v", err)
	}
	p, err := harmonia.LoadProject(data)
	if err != nil {
		t.Fatalf("could not load the test project: %v", err)
	}
	return p
}

func TestLoadProjectYAML(t *testing.T) {
	p := loadTestProject(t)
	if err := p.Validate(); err != nil {
		t.Fatalf("test project does not validate: %v", err)
	}
	if p.Name != "ii-V-I in C" || p.TicksPerBeat != 96 || len(p.Tracks) != 4 || len(p.Clips) != 2 {
		t.Fatalf("unexpected project %+v", p)
	}
	if bass := p.Tracks[3]; bass.Parent != "seventh" || bass.Scale[0] != (harmonia.ScaleNote{Degree: 0, Offset: -24}) {
		t.Fatalf("unexpected bass track %+v", bass)
	}
	pose := p.Clips[0].Stream[1].Pose
	expected := harmonia.PoseVector{Chordal: -2, Scalar: map[harmonia.NodeID]int{"major": 4}}
	if !reflect.DeepEqual(pose, expected) {
		t.Fatalf("got pose %#v, expected %#v", pose, expected)
	}
	if l := p.Clips[1].Length(); l != 1536 {
		t.Fatalf("expected bass clip length 1536, got %v", l)
	}
}

func TestLoadProjectJSON(t *testing.T) {
	p := loadTestProject(t)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("could not marshal project: %v", err)
	}
	back, err := harmonia.LoadProject(data)
	if err != nil {
		t.Fatalf("could not load json project: %v", err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Fatalf("json round trip changed the project:\n%+v\n%+v", p, back)
	}
}

func TestLoadProjectGarbage(t *testing.T) {
	if _, err := harmonia.LoadProject([]byte("tracks: [")); err == nil {
		t.Fatalf("loading garbage should fail")
	}
	p, err := harmonia.LoadProject([]byte("tracks: []"))
	if err != nil || p.TicksPerBeat != harmonia.DefaultTicksPerBeat {
		t.Fatalf("empty project should get the default resolution: %+v, %v", p, err)
	}
}

func TestProjectValidate(t *testing.T) {
	p := loadTestProject(t)
	dup := p.Copy()
	dup.Tracks = append(dup.Tracks, dup.Tracks[0])
	if err := dup.Validate(); !errors.Is(err, harmonia.ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
	lost := p.Copy()
	lost.Clips[0].Node = "gone"
	if err := lost.Validate(); !errors.Is(err, harmonia.ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
	if p.Clips[0].Node != "seventh" {
		t.Fatalf("Copy shares the clips")
	}
}

func TestProjectSources(t *testing.T) {
	p := loadTestProject(t)
	sources := p.Sources()
	if len(sources["seventh"]) != 1 || len(sources["bass"]) != 1 {
		t.Fatalf("unexpected sources %v", sources)
	}
	if got := sources["bass"][0].ActiveVector(200).Octave; got != 1 {
		t.Fatalf("expected the bass up an octave at tick 200, got %v", got)
	}
	if got := sources["bass"][0].ActiveVector(400).Octave; got != 0 {
		t.Fatalf("expected the bass stream to loop, got octave %v at tick 400", got)
	}
}

func TestProjectLength(t *testing.T) {
	p := loadTestProject(t)
	if l := p.Length(); l != 1536 {
		t.Fatalf("expected length 1536, got %v", l)
	}
	p.Clips[1].Start = 100
	if l := p.Length(); l != 1636 {
		t.Fatalf("expected length 1636, got %v", l)
	}
	if l := (&harmonia.Project{}).Length(); l != 0 {
		t.Fatalf("expected empty project to have length 0, got %v", l)
	}
}

func TestMarshalProject(t *testing.T) {
	p := loadTestProject(t)
	for _, ext := range []string{".yml", ".json"} {
		data, err := harmonia.MarshalProject(p, ext)
		if err != nil {
			t.Fatalf("could not marshal project as %v: %v", ext, err)
		}
		back, err := harmonia.LoadProject(data)
		if err != nil {
			t.Fatalf("could not load %v project: %v", ext, err)
		}
		if !reflect.DeepEqual(back, p) {
			t.Fatalf("%v round trip changed the project:\n%+v\n%+v", ext, p, back)
		}
	}
}

func TestNewProject(t *testing.T) {
	p, err := harmonia.NewProject("sketch", "minor", []int{0, 2, 4})
	if err != nil {
		t.Fatalf("could not create project: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("new project is not valid: %v", err)
	}
	if len(p.Tracks) != 3 || p.Tracks[2].Parent != p.Tracks[1].ID || p.Tracks[1].Parent != p.Tracks[0].ID {
		t.Fatalf("unexpected tracks %+v", p.Tracks)
	}
	if _, err := harmonia.NewProject("sketch", "nope", nil); err == nil {
		t.Fatalf("unknown preset should fail")
	}
}
