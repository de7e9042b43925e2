package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/printer"
)

type RmCmd struct {
	flags *Flags
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Remove a song by ID",
		UsageText: "setlist rm <id>",
		Description: `Removes every song with the given ID and records an undo step.

Removing an ID that is not in the playlist still records a step.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one song ID")
	}
	id := c.Args().First()

	before := len(cmd.flags.Playlist.Songs())
	state := cmd.flags.Playlist.Remove(id)

	if removed := before - len(state.Items); removed > 0 {
		p.Successf("Removed %d song(s) with ID %s", removed, id)
	} else {
		p.Warnf("No song with ID %s", id)
	}
	p.History(state.UndoDepth(), state.RedoDepth())
	return nil
}
