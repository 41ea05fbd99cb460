package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/resolve"
)

func newNotesCmd(a *app) *cobra.Command {
	var tick int
	var extra []string
	cmd := &cobra.Command{
		Use:   "notes <project> <node>",
		Short: "Print the notes of a node at a tick",
		Long:  `Print the notes of a node at a tick, with the poses of the clips active at the tick applied. Additional poses can be given as JSON objects, e.g. --pose '{"chordal": 1}'.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject(args[0])
			if err != nil {
				return err
			}
			poses := make([]harmonia.PoseVector, 0, len(extra)+1)
			for _, e := range extra {
				var pose harmonia.PoseVector
				if err := json.Unmarshal([]byte(e), &pose); err != nil {
					return fmt.Errorf("invalid pose %q: %w", e, err)
				}
				poses = append(poses, pose)
			}
			id := harmonia.NodeID(args[1])
			r := resolve.New(a.logger)
			forest := p.Forest()
			active, err := r.ActivePose(id, forest, p.Sources(), tick)
			if err != nil {
				return err
			}
			notes, err := r.Compose(id, forest, append(poses, active)...)
			if err != nil {
				return err
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		},
	}
	cmd.Flags().IntVarP(&tick, "tick", "t", 0, "tick of the timeline")
	cmd.Flags().StringArrayVarP(&extra, "pose", "p", nil, "additional pose as a JSON object; can be repeated")
	return cmd
}
