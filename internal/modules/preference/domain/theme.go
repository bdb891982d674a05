package domain

import (
	"fmt"
	"strings"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("unknown theme %q", value)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Resolve picks the saved theme, falling back to the terminal's background.
// Only "dark" counts as a saved choice; anything else defers to the system.
func Resolve(saved string, systemDark bool) Theme {
	if Theme(saved) == ThemeDark {
		return ThemeDark
	}
	if saved == "" && systemDark {
		return ThemeDark
	}
	return ThemeLight
}
