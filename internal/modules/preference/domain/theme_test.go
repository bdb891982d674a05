package domain_test

import (
	"testing"

	"studyplanner/internal/modules/preference/domain"
)

func TestParseTheme(t *testing.T) {
	t.Parallel()
	if got, err := domain.ParseTheme(" Dark "); err != nil || got != domain.ThemeDark {
		t.Fatalf("expected dark, got %q %v", got, err)
	}
	if _, err := domain.ParseTheme("solarized"); err == nil {
		t.Fatalf("unknown theme should fail")
	}
	if domain.ThemeDark.Toggle() != domain.ThemeLight || domain.ThemeLight.Toggle() != domain.ThemeDark {
		t.Fatalf("toggle should flip the theme")
	}
}

func TestResolvePrefersSavedThenSystem(t *testing.T) {
	t.Parallel()
	cases := []struct {
		saved      string
		systemDark bool
		want       domain.Theme
	}{
		{"dark", false, domain.ThemeDark},
		{"light", true, domain.ThemeLight},
		{"", true, domain.ThemeDark},
		{"", false, domain.ThemeLight},
	}
	for _, tc := range cases {
		if got := domain.Resolve(tc.saved, tc.systemDark); got != tc.want {
			t.Fatalf("saved=%q system=%v: expected %s, got %s", tc.saved, tc.systemDark, tc.want, got)
		}
	}
}
