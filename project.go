package harmonia

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultTicksPerBeat is used for projects that do not define their
// resolution.
const DefaultTicksPerBeat = 96

// Project is the logical content of a project file: the scale tracks and the
// pose clips placed on them. Tracks are stored as a list, in the order they
// were created, and converted to a Forest for resolution.
type Project struct {
	Name         string `yaml:",omitempty"`
	TicksPerBeat int    `yaml:",omitempty"`
	Tracks       []ScaleNode
	Clips        []PoseClip `yaml:",omitempty"`
}

// LoadProject parses a project from .json or .yml data, trying json first.
func LoadProject(data []byte) (*Project, error) {
	var p Project
	if errJSON := json.Unmarshal(data, &p); errJSON != nil {
		p = Project{}
		if errYaml := yaml.Unmarshal(data, &p); errYaml != nil {
			return nil, fmt.Errorf("project could not be unmarshaled as a .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if p.TicksPerBeat == 0 {
		p.TicksPerBeat = DefaultTicksPerBeat
	}
	return &p, nil
}

// MarshalProject encodes the project as .json if the extension is ".json",
// and as .yml otherwise.
func MarshalProject(p *Project, extension string) ([]byte, error) {
	var contents []byte
	var err error
	if extension == ".json" {
		contents, err = json.MarshalIndent(p, "", "  ")
	} else {
		contents, err = yaml.Marshal(p)
	}
	if err != nil {
		return nil, fmt.Errorf("could not marshal project: %w", err)
	}
	return contents, nil
}

// NewProject returns a project with a chromatic key, a scale track and a
// chord track built from the chord degrees of the scale. The tracks get
// random IDs.
func NewProject(name, scale string, chord []int) (*Project, error) {
	notes, ok := PresetScale(scale)
	if !ok {
		return nil, fmt.Errorf("unknown scale preset %q", scale)
	}
	key := ScaleNode{ID: NewNodeID(), Name: "Key"}
	key.Scale, _ = PresetScale("chromatic")
	scaleNode := ScaleNode{ID: NewNodeID(), Parent: key.ID, Name: scale, Scale: notes}
	chordNode := ScaleNode{ID: NewNodeID(), Parent: scaleNode.ID, Name: "Chord", Scale: DegreeScale(chord...)}
	return &Project{
		Name:         name,
		TicksPerBeat: DefaultTicksPerBeat,
		Tracks:       []ScaleNode{key, scaleNode, chordNode},
	}, nil
}

// Forest returns the tracks of the project keyed by their IDs. Later tracks
// with an already used ID overwrite earlier ones; Validate reports those.
func (p *Project) Forest() Forest {
	ret := make(Forest, len(p.Tracks))
	for _, t := range p.Tracks {
		ret[t.ID] = t.Copy()
	}
	return ret
}

// Sources returns the pose clips of the project grouped by the node they are
// placed on.
func (p *Project) Sources() map[NodeID][]PoseSource {
	ret := make(map[NodeID][]PoseSource)
	for i := range p.Clips {
		c := p.Clips[i].Copy()
		ret[c.Node] = append(ret[c.Node], &c)
	}
	return ret
}

// Length returns the tick where the last clip of the project ends.
func (p *Project) Length() int {
	ret := 0
	for _, c := range p.Clips {
		if e := c.End(); e > ret {
			ret = e
		}
	}
	return ret
}

// Copy makes a deep copy of a Project.
func (p *Project) Copy() Project {
	tracks := make([]ScaleNode, len(p.Tracks))
	for i, t := range p.Tracks {
		tracks[i] = t.Copy()
	}
	clips := make([]PoseClip, len(p.Clips))
	for i, c := range p.Clips {
		clips[i] = c.Copy()
	}
	return Project{Name: p.Name, TicksPerBeat: p.TicksPerBeat, Tracks: tracks, Clips: clips}
}

// Validate checks that track IDs are unique, the tracks form a forest and
// that every clip is placed on an existing track.
func (p *Project) Validate() error {
	if p.TicksPerBeat < 1 {
		return errors.New("TicksPerBeat should be > 0")
	}
	seen := map[NodeID]bool{}
	for _, t := range p.Tracks {
		if seen[t.ID] {
			return fmt.Errorf("track %v: %w", t.ID, ErrDuplicateNode)
		}
		seen[t.ID] = true
	}
	if err := p.Forest().Validate(); err != nil {
		return err
	}
	for i, c := range p.Clips {
		if !seen[c.Node] {
			return fmt.Errorf("clip %d is placed on %v: %w", i, c.Node, ErrUnknownNode)
		}
		for _, seg := range c.Stream {
			if seg.Duration < 0 {
				return fmt.Errorf("clip %d has a segment with negative duration", i)
			}
		}
	}
	return nil
}
