package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/printer"
)

type HistoryCmd struct {
	flags *Flags
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "Show the undo and redo snapshots",
		UsageText: "setlist history",
		Description: `Lists every recorded snapshot from oldest to newest.

Rows above the current marker are reached with 'setlist undo', rows below it
with 'setlist redo'.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	state := cmd.flags.Playlist.State()

	if !state.CanUndo() && !state.CanRedo() {
		printer.Ctx(ctx).Infof("No history recorded")
		return nil
	}

	out := c.Root().Writer
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STEP\tSONGS\tTITLES")

	past := state.History.Past
	for i, snap := range past {
		_, _ = fmt.Fprintf(w, "-%d\t%d\t%s\n", len(past)-i, len(snap), summarize(snap))
	}
	_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", "now", len(state.Items), summarize(state.Items))
	for i, snap := range state.History.Future {
		_, _ = fmt.Fprintf(w, "+%d\t%d\t%s\n", i+1, len(snap), summarize(snap))
	}

	return w.Flush()
}

// summarize joins up to three titles for a one line preview.
func summarize(songs []playlist.Song) string {
	const limit = 3

	titles := make([]string, 0, limit)
	for i, s := range songs {
		if i == limit {
			titles = append(titles, fmt.Sprintf("+%d more", len(songs)-limit))
			break
		}
		titles = append(titles, s.Title)
	}
	if len(titles) == 0 {
		return printer.Gray("(empty)")
	}
	return strings.Join(titles, ", ")
}
