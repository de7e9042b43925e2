package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/printer"
)

type UndoCmd struct {
	flags *Flags
}

// NewUndoCmd creates the undo and redo commands
func NewUndoCmd(flags *Flags) *UndoCmd {
	return &UndoCmd{flags: flags}
}

// Register adds the undo and redo commands to the application
func (cmd *UndoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:        "undo",
			Usage:       "Restore the playlist to before the last change",
			UsageText:   "setlist undo",
			Description: "Steps back one change. Does nothing when there is nothing to undo.",
			Action:      cmd.runUndo,
		},
		&cli.Command{
			Name:        "redo",
			Usage:       "Re-apply the last undone change",
			UsageText:   "setlist redo",
			Description: "Steps forward one change. Any new change after an undo discards the redo steps.",
			Action:      cmd.runRedo,
		},
	)

	return app
}

func (cmd *UndoCmd) runUndo(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if !cmd.flags.Playlist.CanUndo() {
		p.Infof("Nothing to undo")
		return nil
	}

	cmd.report(p, "Undone", cmd.flags.Playlist.Undo())
	return nil
}

func (cmd *UndoCmd) runRedo(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if !cmd.flags.Playlist.CanRedo() {
		p.Infof("Nothing to redo")
		return nil
	}

	cmd.report(p, "Redone", cmd.flags.Playlist.Redo())
	return nil
}

func (cmd *UndoCmd) report(p *printer.Printer, verb string, state playlist.State) {
	p.Successf("%s, %d song(s) in playlist", verb, len(state.Items))
	p.History(state.UndoDepth(), state.RedoDepth())
}
