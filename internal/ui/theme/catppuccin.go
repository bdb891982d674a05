package theme

import "github.com/charmbracelet/lipgloss"

// Flavour is one Catppuccin palette.
type Flavour struct {
	Base, Mantle, Surface0, Surface1, Text, Subtext0 lipgloss.Color
	Lavender, Sapphire, Green, Peach, Red, Yellow    lipgloss.Color
}

var (
	Mocha = Flavour{
		Base:     "#1e1e2e",
		Mantle:   "#181825",
		Surface0: "#313244",
		Surface1: "#45475a",
		Text:     "#cdd6f4",
		Subtext0: "#a6adc8",
		Lavender: "#b4befe",
		Sapphire: "#74c7ec",
		Green:    "#a6e3a1",
		Peach:    "#fab387",
		Red:      "#f38ba8",
		Yellow:   "#f9e2af",
	}
	Latte = Flavour{
		Base:     "#eff1f5",
		Mantle:   "#e6e9ef",
		Surface0: "#ccd0da",
		Surface1: "#bcc0cc",
		Text:     "#4c4f69",
		Subtext0: "#6c6f85",
		Lavender: "#7287fd",
		Sapphire: "#209fb5",
		Green:    "#40a02b",
		Peach:    "#fe640b",
		Red:      "#d20f39",
		Yellow:   "#df8e1d",
	}
)

var (
	Base, Mantle, Surface0, Surface1, Text, Subtext0 lipgloss.Color
	Lavender, Sapphire, Green, Peach, Red, Yellow    lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
)

func init() { apply(Mocha) }

// Use switches the palette: "light" selects Latte, anything else Mocha.
// Call it before building any view.
func Use(name string) {
	if name == "light" {
		apply(Latte)
		return
	}
	apply(Mocha)
}

func apply(f Flavour) {
	Base, Mantle, Surface0, Surface1, Text, Subtext0 = f.Base, f.Mantle, f.Surface0, f.Surface1, f.Text, f.Subtext0
	Lavender, Sapphire, Green, Peach, Red, Yellow = f.Lavender, f.Sapphire, f.Green, f.Peach, f.Red, f.Yellow

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Green)
	Bad = lipgloss.NewStyle().Foreground(Red).Bold(true)
}
