package main

import (
	"os"

	"github.com/arthur-debert/tablecheck/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleError     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	styleWarning   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	styleSuspicion = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "61", Dark: "111"})
	styleMuted     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "244", Dark: "245"})
	styleHeading   = lipgloss.NewStyle().Bold(true)
)

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// render applies a style only when writing to a terminal, so piped
// output stays plain.
func render(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return style.Render(s)
}

func severityStyle(sev types.Severity) lipgloss.Style {
	switch sev {
	case types.SeverityError:
		return styleError
	case types.SeverityWarning:
		return styleWarning
	default:
		return styleSuspicion
	}
}
