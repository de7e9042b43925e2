// Package profile defines the listener profile and its validation rules.
package profile

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/hay-kot/criterio"
)

// StorageKey is the key the profile is persisted under.
const StorageKey = "@profile"

// Genres lists the accepted favorite genres.
var Genres = []string{"Pop", "Rock", "Jazz", "Classical", "Hip-Hop"}

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Profile is the persisted listener profile. Valid is true only after a
// successful submit; drafts are stored with Valid=false.
type Profile struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	FavoriteGenre string `json:"favoriteGenre"`
	ImageURI      string `json:"profileImageUri,omitempty"`
	Valid         bool   `json:"isValid"`
}

// IsZero reports whether no user-editable field is set.
func (p Profile) IsZero() bool {
	return p.Username == "" && p.Email == "" && p.FavoriteGenre == "" && p.ImageURI == ""
}

// Validate checks every field. Empty fields are reported as required.
func (p Profile) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := ValidateUsername(p.Username); err != nil {
		errs = errs.Append("username", err)
	}
	if err := ValidateEmail(p.Email); err != nil {
		errs = errs.Append("email", err)
	}
	if err := ValidateGenre(p.FavoriteGenre); err != nil {
		errs = errs.Append("favoriteGenre", err)
	}

	return errs.ToError()
}

// ValidateUsername requires 3-20 letters, digits or underscores.
func ValidateUsername(v string) error {
	switch {
	case v == "":
		return fmt.Errorf("is required")
	case len(v) < 3 || len(v) > 20:
		return fmt.Errorf("must be 3-20 characters")
	case !usernameRe.MatchString(v):
		return fmt.Errorf("can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail requires a plausible email address.
func ValidateEmail(v string) error {
	switch {
	case v == "":
		return fmt.Errorf("is required")
	case !emailRe.MatchString(v):
		return fmt.Errorf("must be a valid email address")
	}
	return nil
}

// ValidateGenre requires one of Genres.
func ValidateGenre(v string) error {
	switch {
	case v == "":
		return fmt.Errorf("is required")
	case !slices.Contains(Genres, v):
		return fmt.Errorf("must be one of %v", Genres)
	}
	return nil
}
