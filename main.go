package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/setlist/internal/commands"
	"github.com/hay-kot/setlist/internal/printer"
	"github.com/hay-kot/setlist/internal/setlist"
	"github.com/hay-kot/setlist/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

// shutdownTimeout bounds how long pending saves may take on exit.
const shutdownTimeout = 5 * time.Second

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("info", "", nil); err != nil {
		panic(err)
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
	)

	var deferredLogs *utils.DeferredWriter

	app := &cli.Command{
		Name:      "setlist",
		Usage:     "Edit a playlist with unlimited undo and redo",
		UsageText: "setlist [global options] command [command options]",
		Description: `setlist keeps an ordered playlist and records every change so it can be
undone and redone. Changes are saved in the background and restored on the
next start.

Run 'setlist' with no arguments on a terminal to open the interactive editor.
Run 'setlist doc guide' for an overview of the undo model.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SETLIST_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("SETLIST_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SETLIST_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SETLIST_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// No subcommand on a terminal means TUI (default action)
			isTUI := c.Args().Len() == 0 && term.IsTerminal(int(os.Stdout.Fd()))

			// In TUI mode, buffer logs to display after exit
			var deferred io.Writer
			if isTUI || c.Args().First() == "tui" {
				deferredLogs = &utils.DeferredWriter{}
				deferred = deferredLogs
			}

			if err := setupLogger(flags.LogLevel, flags.LogFile, deferred); err != nil {
				return ctx, err
			}

			cfg, valid, err := commands.LoadConfig(flags.ConfigPath, flags.DataDir, c.Args().First())
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg
			if !valid {
				log.Warn().Msg("config is invalid, storage not opened")
				return ctx, nil
			}

			store, err := commands.OpenStore(cfg)
			if err != nil {
				return ctx, fmt.Errorf("open storage: %w", err)
			}
			flags.Store = store

			flags.Playlist = setlist.Open(ctx, store, log.Logger, setlist.Options{MaxDepth: cfg.History.MaxDepth})
			flags.Profiles = setlist.OpenProfileService(ctx, store, log.Logger)
			return ctx, nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)
	lsCmd := commands.NewLsCmd(flags)

	app = commands.NewAddCmd(flags).Register(app)
	app = commands.NewRmCmd(flags).Register(app)
	app = commands.NewClearCmd(flags).Register(app)
	app = commands.NewUndoCmd(flags).Register(app)
	app = lsCmd.Register(app)
	app = commands.NewHistoryCmd(flags).Register(app)
	app = commands.NewImportCmd(flags).Register(app)
	app = commands.NewProfileCmd(flags).Register(app)
	app = commands.NewServeCmd(flags).Register(app)
	app = tuiCmd.Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewDocCmd(flags).Register(app)

	// TUI on a terminal, ls otherwise
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'setlist --help' for usage", c.Args().First())
		}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return tuiCmd.Run(ctx, c)
		}
		return lsCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	if err := shutdown(flags); err != nil {
		log.Error().Err(err).Msg("shutdown")
		exitCode = 1
	}

	// Flush deferred logs to console after TUI exits
	if deferredLogs != nil {
		if err := deferredLogs.Flush(zerolog.ConsoleWriter{Out: os.Stderr}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
		}
	}

	os.Exit(exitCode)
}

// shutdown writes pending saves and closes storage. The services are closed
// before the store they write to.
func shutdown(flags *commands.Flags) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if flags.Playlist != nil {
		errs = append(errs, flags.Playlist.Close(ctx))
	}
	if flags.Profiles != nil {
		errs = append(errs, flags.Profiles.Close(ctx))
	}
	if flags.Store != nil {
		errs = append(errs, flags.Store.Close())
	}
	return errors.Join(errs...)
}

func setupLogger(level string, logFile string, deferred io.Writer) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		// Create log directory if it doesn't exist
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		// Open log file
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		if deferred != nil {
			// TUI mode with explicit log file - write to both file and deferred buffer
			output = io.MultiWriter(file, deferred)
		} else {
			// Write to both console and file
			output = io.MultiWriter(
				zerolog.ConsoleWriter{Out: os.Stderr},
				file,
			)
		}
	} else if deferred != nil {
		// TUI mode without log file - buffer for display after exit
		output = deferred
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
