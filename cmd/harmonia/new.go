package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsariola/harmonia"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		name  string
		scale string
		chord []int
		force bool
	)
	cmd := &cobra.Command{
		Use:   "new <project>",
		Short: "Create a project with a key, a scale and a chord track",
		Long:  `Create a project with a key, a scale and a chord track. The project is written as .json if the file has the .json extension, and as .yml otherwise. Available scales: ` + strings.Join(harmonia.PresetNames(), ", ") + `.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("file %v exists, use --force to overwrite", path)
				}
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			p, err := harmonia.NewProject(name, scale, chord)
			if err != nil {
				return err
			}
			data, err := harmonia.MarshalProject(p, filepath.Ext(path))
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("could not write project: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "project name (default is the file name)")
	flags.StringVar(&scale, "scale", "major", "scale preset")
	flags.IntSliceVar(&chord, "chord", []int{0, 2, 4}, "degrees of the chord in the scale")
	flags.BoolVarP(&force, "force", "f", false, "overwrite existing files")
	return cmd
}
