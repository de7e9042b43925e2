// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorRed    = lipgloss.Color("#f7768e")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// Banner ASCII art for the header.
const Banner = `
 ╔═╗╔═╗╔╦╗╦  ╦╔═╗╔╦╗
 ╚═╗║╣  ║ ║  ║╚═╗ ║
 ╚═╝╚═╝ ╩ ╩═╝╩╚═╝ ╩ `

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// TitleStyle styles song titles.
var TitleStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// ArtistStyle styles artist names and other secondary text.
var ArtistStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// SelectedStyle styles the selected row.
var SelectedStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// EnabledStyle and DisabledStyle style the undo/redo indicators.
var (
	EnabledStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	DisabledStyle = lipgloss.NewStyle().Foreground(ColorGray).Faint(true)
)

// ErrorStyle styles inline errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// ConfirmStyle styles confirmation prompts.
var ConfirmStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Bold(true)

// DividerStyle styles horizontal dividers.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FormTheme returns the huh theme used by interactive forms.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorBlue)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorGreen)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorRed)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
