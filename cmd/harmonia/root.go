package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/config"
)

// app is the state shared by the subcommands, set up before any of them runs.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "harmonia",
		Short:         "Resolve scale trees and poses into MIDI notes",
		Long:          `harmonia resolves the scale tracks and pose clips of a project into concrete MIDI notes, renders them into MIDI files and serves them over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/harmonia/config.yml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.AddCommand(
		newNewCmd(a),
		newScaleCmd(a),
		newNotesCmd(a),
		newTreeCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return fmt.Errorf("could not locate config: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// loadProject reads a project file. Invalid projects are only warned about:
// the nodes that cannot be resolved will resolve to silence.
func (a *app) loadProject(path string) (*harmonia.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read project: %w", err)
	}
	p, err := harmonia.LoadProject(data)
	if err != nil {
		return nil, fmt.Errorf("could not load project %v: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		a.logger.Warn("project is not valid", zap.String("path", path), zap.Error(err))
	}
	return p, nil
}
