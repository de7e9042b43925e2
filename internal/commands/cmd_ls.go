package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/printer"
	"github.com/hay-kot/setlist/pkg/tmpl"
)

type LsCmd struct {
	flags *Flags

	// Command-specific flags
	json   bool
	match  string
	format string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List songs in the playlist",
		UsageText: "setlist ls [options]",
		Description: `Displays the playlist in order with the undo/redo state.

--match filters by a case-insensitive glob against title or artist.
--format renders each song with a Go template, for example:

  setlist ls --format '{{ .Title | pad 30 }} {{ .Artist }}'`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "glob pattern matched against title and artist",
				Destination: &cmd.match,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Go template applied to each song",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

// Run executes ls. Exported for use as the non-interactive default command.
func (cmd *LsCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	out := c.Root().Writer

	state := cmd.flags.Playlist.State()

	songs, err := playlist.Filter(state.Items, cmd.match)
	if err != nil {
		return fmt.Errorf("invalid match pattern: %w", err)
	}

	switch {
	case cmd.json:
		return writeJSONList(out, songs, state)
	case cmd.format != "":
		return writeTemplated(out, cmd.format, songs)
	}

	if len(songs) == 0 {
		if cmd.match != "" {
			p.Infof("No songs match %q", cmd.match)
		} else {
			p.Infof("Playlist is empty")
		}
		p.History(state.UndoDepth(), state.RedoDepth())
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tID\tTITLE\tARTIST\tDURATION")
	for i, s := range songs {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, s.ID, s.Title, s.Artist, s.Duration)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	p.History(state.UndoDepth(), state.RedoDepth())
	return nil
}

func writeJSONList(out io.Writer, songs []playlist.Song, state playlist.State) error {
	v := struct {
		Items   []playlist.Song `json:"items"`
		CanUndo bool            `json:"canUndo"`
		CanRedo bool            `json:"canRedo"`
	}{
		Items:   songs,
		CanUndo: state.CanUndo(),
		CanRedo: state.CanRedo(),
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTemplated(out io.Writer, format string, songs []playlist.Song) error {
	t, err := tmpl.Parse(format)
	if err != nil {
		return err
	}

	for _, s := range songs {
		line, err := t.Execute(s)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, line)
	}
	return nil
}
