package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/httpapi"
	"github.com/hay-kot/setlist/internal/printer"
)

type ServeCmd struct {
	flags *Flags

	// Command-specific flags
	addr string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the playlist over HTTP",
		UsageText: "setlist serve [--addr host:port]",
		Description: `Starts a JSON API over the playlist and profile.

Routes:
  GET    /songs[?match=glob]   list songs
  POST   /songs                add a song
  DELETE /songs/{id}           remove a song
  DELETE /songs                clear the playlist
  POST   /undo, /redo          step through history
  GET    /profile              show the profile
  PUT    /profile              save a draft
  POST   /profile/submit       validate and submit

The server stops on SIGINT or SIGTERM after in-flight requests finish.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to server.addr from config)",
				Sources:     cli.EnvVars("SETLIST_ADDR"),
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	addr := cmd.addr
	if addr == "" {
		addr = cmd.flags.Config.Server.Addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.With().Str("component", "httpapi").Logger()
	srv := httpapi.New(cmd.flags.Playlist, cmd.flags.Profiles, logger)

	printer.Ctx(ctx).Infof("Serving playlist on http://%s", addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
