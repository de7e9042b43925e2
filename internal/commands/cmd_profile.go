package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/setlist/internal/core/profile"
	"github.com/hay-kot/setlist/internal/forms"
	"github.com/hay-kot/setlist/internal/printer"
)

type ProfileCmd struct {
	flags *Flags

	// Command-specific flags
	json   bool
	sets   []string
	submit bool
}

// NewProfileCmd creates a new profile command
func NewProfileCmd(flags *Flags) *ProfileCmd {
	return &ProfileCmd{flags: flags}
}

// Register adds the profile command to the application
func (cmd *ProfileCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "profile",
		Usage: "View and edit the listener profile",
		Description: `Manages the listener profile.

Edits are saved as drafts even when they do not validate. A profile is only
marked valid after it is submitted with all fields passing validation.`,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show the saved profile",
				UsageText: "setlist profile show [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.json,
					},
				},
				Action: cmd.runShow,
			},
			{
				Name:      "set",
				Usage:     "Set profile fields without prompting",
				UsageText: "setlist profile set --set name=value [--set name=value]... [--submit]",
				Description: `Assigns fields by name and saves the result as a draft.

Field names: username, email, favoriteGenre, profileImageUri.
Use --submit to validate and mark the profile valid.`,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:        "set",
						Aliases:     []string{"s"},
						Usage:       "field assignment as name=value",
						Destination: &cmd.sets,
					},
					&cli.BoolFlag{
						Name:        "submit",
						Usage:       "validate and submit after setting fields",
						Destination: &cmd.submit,
					},
				},
				Action: cmd.runSet,
			},
			{
				Name:        "edit",
				Usage:       "Edit the profile interactively",
				UsageText:   "setlist profile edit",
				Description: "Opens a form prefilled with the saved profile and submits it on completion.",
				Action:      cmd.runEdit,
			},
		},
	})

	return app
}

func (cmd *ProfileCmd) runShow(ctx context.Context, c *cli.Command) error {
	current := cmd.flags.Profiles.Current()
	out := c.Root().Writer

	if cmd.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(current)
	}

	if current.IsZero() {
		printer.Ctx(ctx).Infof("No profile saved. Run 'setlist profile edit' to create one.")
		return nil
	}

	writeProfile(out, current)
	return nil
}

func (cmd *ProfileCmd) runSet(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if len(cmd.sets) == 0 && !cmd.submit {
		return fmt.Errorf("nothing to set. Use --set name=value")
	}

	values, err := forms.ParseSetValues(cmd.sets)
	if err != nil {
		return err
	}

	next := forms.Apply(cmd.flags.Profiles.Current(), values)

	if cmd.submit {
		return cmd.submitProfile(p, next)
	}

	cmd.flags.Profiles.Update(next)
	p.Successf("Draft saved")
	return nil
}

func (cmd *ProfileCmd) runEdit(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	edited, err := forms.RunProfileForm(cmd.flags.Profiles.Current())
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			p.Infof("Edit cancelled")
			return nil
		}
		return fmt.Errorf("profile form: %w", err)
	}

	return cmd.submitProfile(p, edited)
}

func (cmd *ProfileCmd) submitProfile(p *printer.Printer, next profile.Profile) error {
	saved, err := cmd.flags.Profiles.Submit(next)
	if err != nil {
		p.Warnf("Profile saved as draft")
		return fmt.Errorf("profile is not valid: %w", err)
	}

	p.Successf("Profile saved for %s", saved.Username)
	return nil
}

func writeProfile(out io.Writer, pr profile.Profile) {
	status := printer.StatusOK("valid")
	if !pr.Valid {
		status = printer.StatusWarn("draft")
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Username\t%s\n", pr.Username)
	_, _ = fmt.Fprintf(w, "Email\t%s\n", pr.Email)
	_, _ = fmt.Fprintf(w, "Favorite genre\t%s\n", pr.FavoriteGenre)
	if pr.ImageURI != "" {
		_, _ = fmt.Fprintf(w, "Image\t%s\n", pr.ImageURI)
	}
	_, _ = fmt.Fprintf(w, "Status\t%s\n", status)
	_ = w.Flush()
}
