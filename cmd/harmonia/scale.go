package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/resolve"
)

func newScaleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scale <project> <node>",
		Short: "Print the resolved scale of a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject(args[0])
			if err != nil {
				return err
			}
			notes, err := resolve.New(a.logger).ResolveScale(harmonia.NodeID(args[1]), p.Forest())
			if err != nil {
				return err
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		},
	}
}

func printNotes(w io.Writer, notes []int) {
	nums := make([]string, len(notes))
	names := make([]string, len(notes))
	for i, n := range notes {
		nums[i] = fmt.Sprint(n)
		names[i] = harmonia.NoteName(n)
	}
	fmt.Fprintf(w, "%v\t%v\n", strings.Join(nums, " "), strings.Join(names, " "))
}
