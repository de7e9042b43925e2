// Package playlist defines the song type stored in the undoable playlist.
package playlist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"golang.org/x/text/unicode/norm"

	"github.com/hay-kot/setlist/internal/core/history"
)

// StorageKey is the key the playlist state is persisted under.
const StorageKey = "@playlist"

// State is the undoable playlist state.
type State = history.State[Song]

var durationRe = regexp.MustCompile(`^(\d+:)?[0-5]?\d:[0-5]\d$`)

// Song is a single playlist entry.
type Song struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration string `json:"duration,omitempty"`
}

// ItemID implements history.Item.
func (s Song) ItemID() string {
	return s.ID
}

// Normalize trims surrounding whitespace and converts text fields to NFC so
// visually identical titles compare equal.
func (s Song) Normalize() Song {
	return Song{
		ID:       strings.TrimSpace(s.ID),
		Title:    norm.NFC.String(strings.TrimSpace(s.Title)),
		Artist:   norm.NFC.String(strings.TrimSpace(s.Artist)),
		Duration: strings.TrimSpace(s.Duration),
	}
}

// Validate checks required fields and the duration format.
func (s Song) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if s.ID == "" {
		errs = errs.Append("id", fmt.Errorf("is required"))
	}
	if s.Title == "" {
		errs = errs.Append("title", fmt.Errorf("is required"))
	}
	if s.Artist == "" {
		errs = errs.Append("artist", fmt.Errorf("is required"))
	}
	if s.Duration != "" && !durationRe.MatchString(s.Duration) {
		errs = errs.Append("duration", fmt.Errorf("%q must look like m:ss or h:mm:ss", s.Duration))
	}

	return errs.ToError()
}

// Match reports whether the title or artist matches the glob pattern,
// ignoring case. An empty pattern matches everything.
func (s Song) Match(pattern string) (bool, error) {
	if pattern == "" {
		return true, nil
	}

	pattern = strings.ToLower(pattern)
	for _, field := range []string{s.Title, s.Artist} {
		ok, err := doublestar.Match(pattern, strings.ToLower(field))
		if err != nil {
			return false, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

// Filter returns the songs matching pattern, preserving order.
func Filter(songs []Song, pattern string) ([]Song, error) {
	if pattern == "" {
		return append([]Song{}, songs...), nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	out := make([]Song, 0, len(songs))
	for _, s := range songs {
		ok, err := s.Match(pattern)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// ParseEntry parses "Title - Artist" or "Title - Artist - 3:45" into a song
// without an ID.
func ParseEntry(entry string) (Song, error) {
	parts := strings.Split(entry, " - ")
	switch len(parts) {
	case 2:
		return Song{Title: parts[0], Artist: parts[1]}.Normalize(), nil
	case 3:
		return Song{Title: parts[0], Artist: parts[1], Duration: parts[2]}.Normalize(), nil
	default:
		return Song{}, fmt.Errorf("expected \"Title - Artist[ - m:ss]\", got %q", entry)
	}
}
