package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/live"
	"github.com/vsariola/harmonia/server"
)

func newServeCmd(a *app) *cobra.Command {
	var listen, input string
	cmd := &cobra.Command{
		Use:   "serve <project>",
		Short: "Serve the resolution of a project over HTTP",
		Long:  `Serve the resolution of a project over HTTP. If a MIDI input is given, the keys bound in the config hold poses applied to every node.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("listen") {
				listen = a.cfg.Server.Listen
			}
			if !cmd.Flags().Changed("midi-in") {
				input = a.cfg.Live.Input
			}
			kb := live.NewKeyboard(
				live.WithLogger(a.logger.Named("live")),
				live.OnChange(a.cfg.Live.Debounce, func(pose harmonia.PoseVector) {
					a.logger.Debug("live pose changed", zap.Stringer("pose", pose))
				}),
			)
			for key, pose := range a.cfg.Live.Bindings {
				kb.Bind(key, pose)
			}
			if input != "" {
				stop, err := kb.Listen(input)
				if err != nil {
					return err
				}
				defer stop()
			}
			srv := &http.Server{
				Addr:    listen,
				Handler: server.New(p, a.logger.Named("server"), kb).Handler(a.cfg.Server.CORSOrigins),
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			errc := make(chan error, 1)
			go func() {
				a.logger.Info("serving", zap.String("listen", listen), zap.String("project", args[0]))
				errc <- srv.ListenAndServe()
			}()
			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("could not serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}
			shutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			return srv.Shutdown(shutdown)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (default from config)")
	cmd.Flags().StringVar(&input, "midi-in", "", "name prefix of the MIDI input holding poses")
	return cmd
}
