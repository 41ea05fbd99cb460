package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output   string
		from, to int
		step     int
		channel  uint8
		velocity uint8
		bpm      float64
		safe     bool
	)
	cmd := &cobra.Command{
		Use:   "render <project> <node>",
		Short: "Render the notes of a node into a MIDI file",
		Long:  `Render the notes of a node into a standard MIDI file. The node is sampled every step ticks, from the start tick until the end tick; the end defaults to the end of the last clip.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject(args[0])
			if err != nil {
				return err
			}
			id := harmonia.NodeID(args[1])
			opts := render.Options{
				Channel:  a.cfg.Render.Channel,
				Velocity: a.cfg.Render.Velocity,
				BPM:      a.cfg.Render.BPM,
				Logger:   a.logger,
			}
			flags := cmd.Flags()
			if flags.Changed("channel") {
				opts.Channel = channel
			}
			if flags.Changed("velocity") {
				opts.Velocity = velocity
			}
			if flags.Changed("bpm") {
				opts.BPM = bpm
			}
			if !flags.Changed("step") {
				step = a.cfg.Render.Step
			}
			if step <= 0 {
				step = p.TicksPerBeat
			}
			if !flags.Changed("to") {
				to = p.Length()
				if to <= from {
					to = from + 4*p.TicksPerBeat
				}
			}
			if output == "" {
				output = string(id) + ".mid"
			}
			if safe {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("file %v exists and -n was set", output)
				}
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("could not create %v: %w", output, err)
			}
			defer f.Close()
			if err := render.Write(f, p, id, from, to, step, opts); err != nil {
				return fmt.Errorf("could not render %v: %w", id, err)
			}
			return f.Close()
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (default is <node>.mid)")
	flags.IntVar(&from, "from", 0, "start tick")
	flags.IntVar(&to, "to", 0, "end tick (default is the end of the last clip)")
	flags.IntVar(&step, "step", 0, "sampling interval in ticks (default is one beat)")
	flags.Uint8Var(&channel, "channel", 0, "MIDI channel, 0-15")
	flags.Uint8Var(&velocity, "velocity", 100, "note velocity")
	flags.Float64Var(&bpm, "bpm", 120, "tempo in beats per minute")
	flags.BoolVarP(&safe, "safe", "n", false, "never overwrite files")
	return cmd
}
