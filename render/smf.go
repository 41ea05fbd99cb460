// Package render writes the notes of a scale node over time into Standard
// MIDI Files.
package render

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/resolve"
)

// Options of rendering. The zero value renders on channel 0 with velocity
// 100 at 120 BPM. Channels above 15 and velocities above 127 are clamped.
type Options struct {
	Channel  uint8
	Velocity uint8
	BPM      float64
	Logger   *zap.Logger
}

// Chord is a set of notes sounding from Start until End, in project ticks.
type Chord struct {
	Start, End int
	Notes      []uint8
}

// Chords samples the node every step ticks in [from, to) and returns the
// resulting chords. Consecutive identical samples are merged into one
// chord; empty samples, including failed resolutions, are left out. The
// second return value is the number of samples that failed to resolve.
func Chords(p *harmonia.Project, node harmonia.NodeID, from, to, step int, logger *zap.Logger) ([]Chord, int, error) {
	if step < 1 {
		return nil, 0, fmt.Errorf("step should be > 0, got %d", step)
	}
	if to < from {
		return nil, 0, fmt.Errorf("end tick %d is before start tick %d", to, from)
	}
	forest := p.Forest()
	if _, ok := forest[node]; !ok {
		return nil, 0, fmt.Errorf("could not render %v: %w", node, harmonia.ErrUnknownNode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := resolve.New(logger)
	sources := p.Sources()
	var ret []Chord
	var cur []uint8
	failed := 0
	for t := from; t < to; t += step {
		notes, err := r.ResolveNodeAtTick(node, forest, sources, t)
		if err != nil {
			failed++
		}
		next := clampNotes(notes)
		end := min(t+step, to)
		if len(ret) > 0 && ret[len(ret)-1].End == t && equalNotes(cur, next) {
			ret[len(ret)-1].End = end
			continue
		}
		cur = next
		if len(next) > 0 {
			ret = append(ret, Chord{Start: t, End: end, Notes: next})
		}
	}
	return ret, failed, nil
}

// SMF renders the node between the ticks into a single track SMF. The
// track starts at tick from; the time resolution is the ticks per beat of
// the project.
func SMF(p *harmonia.Project, node harmonia.NodeID, from, to, step int, opts Options) (*smf.SMF, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	chords, failed, err := Chords(p, node, from, to, step, logger)
	if err != nil {
		return nil, err
	}
	velocity := opts.Velocity
	if velocity == 0 {
		velocity = 100
	}
	velocity = clamp(velocity, 1, 127)
	channel := clamp(opts.Channel, 0, 15)
	bpm := opts.BPM
	if bpm <= 0 {
		bpm = 120
	}
	ticksPerBeat := p.TicksPerBeat
	if ticksPerBeat < 1 {
		ticksPerBeat = harmonia.DefaultTicksPerBeat
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)
	var tr smf.Track
	name := string(node)
	if n, ok := p.Forest()[node]; ok && n.Name != "" {
		name = n.Name
	}
	tr.Add(0, smf.MetaTrackSequenceName(name))
	tr.Add(0, smf.MetaTempo(bpm))
	last := from
	for _, c := range chords {
		delta := uint32(c.Start - last)
		for _, n := range c.Notes {
			tr.Add(delta, midi.NoteOn(channel, n, velocity))
			delta = 0
		}
		delta = uint32(c.End - c.Start)
		for _, n := range c.Notes {
			tr.Add(delta, midi.NoteOff(channel, n))
			delta = 0
		}
		last = c.End
	}
	tr.Close(uint32(to - last))
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	logger.Info("rendered node",
		zap.String("node", string(node)),
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("chords", len(chords)),
		zap.Int("failed", failed))
	return s, nil
}

// Write renders the node as SMF into w.
func Write(w io.Writer, p *harmonia.Project, node harmonia.NodeID, from, to, step int, opts Options) error {
	s, err := SMF(p, node, from, to, step, opts)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("could not write midi file: %w", err)
	}
	return nil
}

// clampNotes returns the notes sorted, without duplicates and clamped to the
// MIDI range.
func clampNotes(notes []int) []uint8 {
	seen := map[uint8]bool{}
	ret := make([]uint8, 0, len(notes))
	for _, n := range notes {
		v := uint8(clamp(n, 0, 127))
		if !seen[v] {
			seen[v] = true
			ret = append(ret, v)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func clamp[T constraints.Integer](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func equalNotes(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
