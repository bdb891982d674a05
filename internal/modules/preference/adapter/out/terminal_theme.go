package out

import (
	"github.com/charmbracelet/lipgloss"

	preferenceout "studyplanner/internal/modules/preference/port/out"
)

// TerminalTheme asks the terminal for its background colour.
type TerminalTheme struct{}

func NewTerminalTheme() preferenceout.SystemTheme {
	return TerminalTheme{}
}

func (TerminalTheme) Dark() bool {
	return lipgloss.HasDarkBackground()
}
