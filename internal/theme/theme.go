package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title                 *lipgloss.Style
	Header                *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Disabled              *lipgloss.Style
	Enabled               *lipgloss.Style
	Error                 *lipgloss.Style
	Success               *lipgloss.Style
	Info                  *lipgloss.Style
	Footer                *lipgloss.Style
	Section               *lipgloss.Style
	FieldLabel            *lipgloss.Style
	FieldValue            *lipgloss.Style
	FieldEditing          *lipgloss.Style
	Required              *lipgloss.Style
	Cursor                *lipgloss.Style
	Spinner               *lipgloss.Style
	Loading               *lipgloss.Style
	Logo                  *lipgloss.Style

	// ProgressStart and ProgressEnd bound the loading bar gradient.
	ProgressStart string
	ProgressEnd   string
}

// Default builds the standard style set. Every call returns a fresh set, so
// callers own what they are handed.
func Default() *Styles {
	return &Styles{
		Title: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		),
		Header: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		),
		Item: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		),
		ItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		),
		SelectedItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
		),
		Disabled: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true),
		),
		Enabled: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
		Success: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		),
		Info: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		),
		Section: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Underline(true),
		),
		FieldLabel: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		),
		FieldValue: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		),
		FieldEditing: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		),
		Required: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
		),
		Spinner: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		),
		Loading: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
		),
		Logo: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		),
		ProgressStart: "#005F87",
		ProgressEnd:   "#00AFFF",
	}
}

// Paint renders text with style, leaving it untouched when style is nil.
// Every styled span goes through here so attributes are always reset at the
// end of the span.
func Paint(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// InitPalette fixes the colour profile used by every style. An empty TERM or
// NO_COLOR falls back to plain ASCII output.
func InitPalette() termenv.Profile {
	profile := termenv.EnvColorProfile()
	lipgloss.SetColorProfile(profile)
	return profile
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
