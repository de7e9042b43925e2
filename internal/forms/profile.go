// Package forms builds the interactive profile form and applies
// non-interactive field assignments.
package forms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/setlist/internal/core/profile"
	"github.com/hay-kot/setlist/internal/styles"
)

// Field names accepted by ParseSetValues and Apply. They match the JSON
// field names of profile.Profile.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldGenre    = "favoriteGenre"
	FieldImage    = "profileImageUri"
)

var fieldNames = []string{FieldUsername, FieldEmail, FieldGenre, FieldImage}

// NewProfileForm returns a form bound to p. Fields are prefilled from p and
// each input validates inline with the same rules as profile.Validate.
func NewProfileForm(p *profile.Profile) *huh.Form {
	options := make([]huh.Option[string], len(profile.Genres))
	for i, g := range profile.Genres {
		options[i] = huh.NewOption(g, g)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username *").
				Description("3-20 letters, numbers or underscores").
				Placeholder("jane_doe").
				Value(&p.Username).
				Validate(profile.ValidateUsername),
			huh.NewInput().
				Title("Email *").
				Placeholder("jane@example.com").
				Value(&p.Email).
				Validate(profile.ValidateEmail),
			huh.NewSelect[string]().
				Title("Favorite genre *").
				Options(options...).
				Value(&p.FavoriteGenre),
			huh.NewInput().
				Title("Profile image").
				Placeholder("file:///path/to/image.jpg").
				Value(&p.ImageURI),
		),
	).WithTheme(styles.FormTheme())
}

// RunProfileForm runs the form on the terminal and returns the edited copy of
// current.
func RunProfileForm(current profile.Profile) (profile.Profile, error) {
	edited := current
	if edited.FavoriteGenre == "" {
		edited.FavoriteGenre = profile.Genres[0]
	}

	if err := NewProfileForm(&edited).Run(); err != nil {
		return current, err
	}
	return edited, nil
}

// ParseSetValues parses --set flag values into a map.
// Format: "name=value". Later assignments override earlier ones.
func ParseSetValues(sets []string) (map[string]string, error) {
	result := make(map[string]string, len(sets))

	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set format %q: expected name=value", s)
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --set format %q: empty name", s)
		}
		if !slices.Contains(fieldNames, name) {
			return nil, fmt.Errorf("unknown profile field %q (expected one of %s)", name, strings.Join(fieldNames, ", "))
		}

		result[name] = strings.TrimSpace(value)
	}

	return result, nil
}

// Apply returns p with values assigned by field name.
func Apply(p profile.Profile, values map[string]string) profile.Profile {
	for name, v := range values {
		switch name {
		case FieldUsername:
			p.Username = v
		case FieldEmail:
			p.Email = v
		case FieldGenre:
			p.FavoriteGenre = v
		case FieldImage:
			p.ImageURI = v
		}
	}
	return p
}
