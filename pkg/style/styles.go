package style

import (
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// Code and path styles
	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// Diff line styles
var (
	AddedStyle = lipgloss.NewStyle().
			Foreground(AddedColor)

	RemovedStyle = lipgloss.NewStyle().
			Foreground(RemovedColor)
)

// VerbStyle returns the style used to announce an action with verb
func VerbStyle(verb types.Verb) lipgloss.Style {
	switch verb {
	case types.VerbLive:
		return SuccessStyle
	case types.VerbWould:
		return WarningStyle
	case types.VerbSkipped:
		return InfoStyle.Bold(true)
	default:
		return MutedStyle.Bold(true)
	}
}
