package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/printer"
	"github.com/hay-kot/setlist/pkg/randid"
)

type AddCmd struct {
	flags *Flags

	// Command-specific flags
	id       string
	title    string
	artist   string
	duration string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a song to the end of the playlist",
		UsageText: "setlist add [options] [\"Title - Artist[ - m:ss]\"]",
		Description: `Appends a song to the playlist and records an undo step.

The song can be given as a single "Title - Artist" argument or with the
--title and --artist flags. An ID is generated when --id is not set.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "id",
				Usage:       "song ID (generated when empty)",
				Destination: &cmd.id,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "song title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "artist",
				Aliases:     []string{"a"},
				Usage:       "song artist",
				Destination: &cmd.artist,
			},
			&cli.StringFlag{
				Name:        "duration",
				Aliases:     []string{"d"},
				Usage:       "song duration as m:ss or h:mm:ss",
				Destination: &cmd.duration,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	song, err := cmd.song(c.Args().Slice())
	if err != nil {
		return err
	}

	state := cmd.flags.Playlist.Add(song)

	p.Successf("Added %s by %s (%s)", song.Title, song.Artist, song.ID)
	p.History(state.UndoDepth(), state.RedoDepth())
	return nil
}

// song builds the song from the positional entry and flags. Flags override
// fields parsed from the entry.
func (cmd *AddCmd) song(args []string) (playlist.Song, error) {
	var song playlist.Song

	if len(args) > 0 {
		parsed, err := playlist.ParseEntry(strings.Join(args, " "))
		if err != nil {
			return playlist.Song{}, fmt.Errorf("parse song: %w", err)
		}
		song = parsed
	}

	if cmd.title != "" {
		song.Title = cmd.title
	}
	if cmd.artist != "" {
		song.Artist = cmd.artist
	}
	if cmd.duration != "" {
		song.Duration = cmd.duration
	}

	song.ID = cmd.id
	song = song.Normalize()
	if song.ID == "" {
		song.ID = randid.New()
	}

	if err := song.Validate(); err != nil {
		return playlist.Song{}, fmt.Errorf("invalid song: %w", err)
	}
	return song, nil
}
