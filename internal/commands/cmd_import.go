package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/pkg/randid"
)

const (
	// StatusAdded indicates the song was appended to the playlist.
	StatusAdded = "added"
	// StatusSkipped indicates the song ID was already in the playlist.
	StatusSkipped = "skipped"
)

// ImportInput is the JSON input schema for bulk adds.
type ImportInput struct {
	Songs []playlist.Song `json:"songs"`
}

// Prepare normalizes every song and assigns IDs to songs without one.
func (in ImportInput) Prepare() ImportInput {
	out := ImportInput{Songs: make([]playlist.Song, len(in.Songs))}
	for i, s := range in.Songs {
		s = s.Normalize()
		if s.ID == "" {
			s.ID = randid.New()
		}
		out.Songs[i] = s
	}
	return out
}

// Validate checks the input for errors using criterio. Field names are
// prefixed with the song index, e.g. songs[2].title.
func (in ImportInput) Validate() error {
	if len(in.Songs) == 0 {
		return criterio.NewFieldErrors("songs", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	seenIDs := make(map[string]bool)

	for i, song := range in.Songs {
		field := fmt.Sprintf("songs[%d]", i)

		if err := song.Validate(); err != nil {
			var fieldErrs criterio.FieldErrors
			if !errors.As(err, &fieldErrs) {
				errs = errs.Append(field, err)
				continue
			}
			for _, fe := range fieldErrs {
				errs = errs.Append(field+"."+fe.Field, fe.Err)
			}
			continue
		}

		if seenIDs[song.ID] {
			errs = errs.Append(field+".id", fmt.Errorf("duplicate id %q", song.ID))
			continue
		}
		seenIDs[song.ID] = true
	}

	return errs.ToError()
}

// ImportResult is the output for a single song.
type ImportResult struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// ImportOutput is the JSON output schema.
type ImportOutput struct {
	Results []ImportResult `json:"results"`
	CanUndo bool           `json:"canUndo"`
}

type ImportCmd struct {
	flags *Flags
	file  string
}

func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags}
}

func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "import",
		Usage: "Add multiple songs from JSON input",
		UsageText: `setlist import [options]

Read from stdin:
  echo '{"songs":[{"title":"Yesterday","artist":"The Beatles"}]}' | setlist import

Read from file:
  setlist import -f songs.json`,
		Description: `Appends songs from a JSON document in order.

Each song is added as its own change, so 'setlist undo' steps back one song
at a time. The whole input is validated before anything is added. Songs whose
ID is already in the playlist are skipped.

Input JSON schema:
  {
    "songs": [
      {
        "id": "optional-id",
        "title": "Song title",
        "artist": "Artist",
        "duration": "optional m:ss"
      }
    ]
  }

Output is JSON with a status for each song.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to JSON file (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	logger := log.With().Str("component", "import").Logger()

	input, err := cmd.readInput()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	input = input.Prepare()
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	output := cmd.importSongs(input)

	logger.Info().
		Int("total", len(input.Songs)).
		Int("added", countByStatus(output.Results, StatusAdded)).
		Int("skipped", countByStatus(output.Results, StatusSkipped)).
		Msg("import complete")

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func (cmd *ImportCmd) importSongs(input ImportInput) ImportOutput {
	existing := make(map[string]bool)
	for _, s := range cmd.flags.Playlist.Songs() {
		existing[s.ID] = true
	}

	output := ImportOutput{Results: make([]ImportResult, 0, len(input.Songs))}
	for _, song := range input.Songs {
		result := ImportResult{ID: song.ID, Title: song.Title, Status: StatusAdded}
		if existing[song.ID] {
			result.Status = StatusSkipped
		} else {
			cmd.flags.Playlist.Add(song)
		}
		output.Results = append(output.Results, result)
	}

	output.CanUndo = cmd.flags.Playlist.CanUndo()
	return output
}

func (cmd *ImportCmd) readInput() (ImportInput, error) {
	var reader io.Reader

	if cmd.file != "" {
		f, err := os.Open(cmd.file)
		if err != nil {
			return ImportInput{}, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return ImportInput{}, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = os.Stdin
	}

	return decodeImport(reader)
}

func decodeImport(r io.Reader) (ImportInput, error) {
	var input ImportInput
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return ImportInput{}, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

func countByStatus(results []ImportResult, status string) int {
	count := 0
	for _, r := range results {
		if r.Status == status {
			count++
		}
	}
	return count
}
