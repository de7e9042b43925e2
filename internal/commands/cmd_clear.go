package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/printer"
)

type ClearCmd struct {
	flags *Flags
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags) *ClearCmd {
	return &ClearCmd{flags: flags}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "clear",
		Usage:       "Remove every song from the playlist",
		UsageText:   "setlist clear",
		Description: "Empties the playlist. The previous list can be restored with 'setlist undo'.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	state := cmd.flags.Playlist.Clear()

	p.Successf("Playlist cleared")
	p.History(state.UndoDepth(), state.RedoDepth())
	return nil
}
