package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// docWrapWidth is used when the terminal width cannot be determined.
const docWrapWidth = 80

type DocCmd struct {
	flags *Flags
	plain bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Documentation for setlist",
		Description: `Prints reference documentation. Output is rendered as styled markdown on a
terminal and as plain markdown when piped.

Use 'setlist doc guide' for the undo model and command overview.
Use 'setlist doc api' for the HTTP API reference.`,
		Commands: []*cli.Command{
			{
				Name:   "guide",
				Usage:  "Show the usage guide",
				Flags:  cmd.docFlags(),
				Action: cmd.render(guideDoc),
			},
			{
				Name:   "api",
				Usage:  "Show the HTTP API reference",
				Flags:  cmd.docFlags(),
				Action: cmd.render(apiDoc),
			},
		},
	})
	return app
}

func (cmd *DocCmd) docFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "plain",
			Usage:       "print raw markdown even on a terminal",
			Destination: &cmd.plain,
		},
	}
}

func (cmd *DocCmd) render(doc string) cli.ActionFunc {
	return func(_ context.Context, c *cli.Command) error {
		return writeMarkdown(c.Root().Writer, doc, cmd.plain)
	}
}

// writeMarkdown renders md with glamour when w is a terminal.
func writeMarkdown(w io.Writer, md string, plain bool) error {
	f, ok := w.(*os.File)
	if plain || !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := fmt.Fprint(w, md)
		return err
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = docWrapWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(min(width, 120)),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render doc: %w", err)
	}

	_, err = fmt.Fprint(w, out)
	return err
}

const guideDoc = `# setlist

setlist keeps an ordered playlist with unlimited undo and redo. Every change
is saved in the background so the playlist survives restarts.

## Undo model

Each change records a snapshot of the list before it was made.

- **add**, **rm** and **clear** push the previous list onto the undo stack
  and discard every redo step.
- **undo** restores the most recent snapshot and moves the current list onto
  the redo stack.
- **redo** reverses the last undo.
- Undo or redo with nothing to step to does nothing.

Removing an ID that is not in the playlist, or clearing an empty playlist,
still records a step. ` + "`rm`" + ` removes every song that shares the ID.

Set ` + "`history.max_depth`" + ` to keep only the most recent steps.

## Commands

| Command | Description |
|---------|-------------|
| ` + "`setlist add \"Title - Artist\"`" + ` | Append a song |
| ` + "`setlist rm ID`" + ` | Remove songs by ID |
| ` + "`setlist clear`" + ` | Empty the playlist |
| ` + "`setlist undo`" + ` / ` + "`redo`" + ` | Step through history |
| ` + "`setlist ls`" + ` | List songs (` + "`--json`, `--match`, `--format`" + `) |
| ` + "`setlist history`" + ` | Show every recorded snapshot |
| ` + "`setlist profile edit`" + ` | Edit and submit the listener profile |
| ` + "`setlist serve`" + ` | Start the HTTP API |
| ` + "`setlist doctor`" + ` | Check config and saved state |

Run ` + "`setlist`" + ` with no arguments on a terminal to open the editor.

## Storage

| Driver | Location |
|--------|----------|
| ` + "`json`" + ` (default) | ` + "`$XDG_DATA_HOME/setlist/setlist.json`" + ` |
| ` + "`sqlite`" + ` | ` + "`$XDG_DATA_HOME/setlist/setlist.db`" + ` |
| ` + "`memory`" + ` | nothing is kept between runs |

The playlist is stored under the key ` + "`@playlist`" + ` as:

` + "```json" + `
{"items": [...], "history": {"past": [[...]], "future": [[...]]}}
` + "```" + `

Data that cannot be decoded is ignored on start and the playlist begins
empty. ` + "`setlist doctor --fix`" + ` removes it.
`

const apiDoc = `# HTTP API

Start the server with ` + "`setlist serve`" + `. Every response carries an
` + "`X-Request-ID`" + ` header.

## Playlist

Playlist routes respond with the current view:

` + "```json" + `
{"items": [{"id": "a1b2c3d4", "title": "Yesterday", "artist": "The Beatles"}], "canUndo": true, "canRedo": false}
` + "```" + `

| Method | Path | Description |
|--------|------|-------------|
| GET | ` + "`/songs?match=glob`" + ` | List songs, optionally filtered |
| POST | ` + "`/songs`" + ` | Add a song. An ID is generated when empty |
| DELETE | ` + "`/songs/{id}`" + ` | Remove every song with the ID |
| DELETE | ` + "`/songs`" + ` | Clear the playlist |
| POST | ` + "`/undo`" + ` | Undo the last change |
| POST | ` + "`/redo`" + ` | Redo the last undone change |

Invalid songs are rejected with 422 and a ` + "`fields`" + ` map.

## Profile

| Method | Path | Description |
|--------|------|-------------|
| GET | ` + "`/profile`" + ` | Current profile |
| PUT | ` + "`/profile`" + ` | Save a draft without validation |
| POST | ` + "`/profile/submit`" + ` | Validate and save as valid |
`
