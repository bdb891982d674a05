package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyplanner/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"session:add <date> <minutes> <subject>",
	"session:complete",
	"session:remove",
	"session:sample",
	"session:filter <all|upcoming|completed>",
	"timer:start [minutes]",
	"timer:pause",
	"timer:reset",
	"timer:preset <minutes>",
	"resource:schedule [date] [HH:MM]",
	"resource:open",
	"resource:preview",
	"resource:watch",
	"resource:tag [tag]",
	"resource:fetch <devto|github|feed> [query]",
	"theme:toggle",
	"tour:reset",
}

// Styles are built on demand so they follow theme.Use.
func paletteStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)
}

const maxHistory = 20

// Palette is a command-palette overlay backed by bubbles/textinput. Tab
// completes the command name; up and down walk the submitted history.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	cursor  int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	p.cursor = len(p.history)
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if completed := complete(p.input.Value()); completed != "" {
				p.input.SetValue(completed)
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.history[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.history)-1 {
				p.cursor++
				p.input.SetValue(p.history[p.cursor])
			} else {
				p.cursor = len(p.history)
				p.input.SetValue("")
			}
			p.input.CursorEnd()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := matchHints(p.input.Value(), 5)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(theme.Muted.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle().Width(w - 2).Render(sb.String())
}

func (p *Palette) remember(val string) {
	if val == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == val {
		p.cursor = n
		return
	}
	p.history = append(p.history, val)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
	p.cursor = len(p.history)
}

// complete extends the typed command word to the longest prefix shared by
// every matching command, adding a space when exactly one command matches.
func complete(input string) string {
	matches := matchHints(input, 0)
	if len(matches) == 0 || strings.Contains(strings.TrimLeft(input, " "), " ") {
		return ""
	}
	common := commandOf(matches[0])
	for _, h := range matches[1:] {
		cmd := commandOf(h)
		for !strings.HasPrefix(cmd, common) {
			common = common[:len(common)-1]
		}
	}
	if len(matches) == 1 {
		return common + " "
	}
	return common
}

// matchHints returns up to limit hints (all when limit is 0) whose command starts with the typed
// command word. Once arguments are being typed only the exact command matches.
func matchHints(input string, limit int) []string {
	typed := strings.ToLower(strings.TrimLeft(input, " "))
	word, _, hasArgs := strings.Cut(typed, " ")
	var out []string
	for _, h := range paletteHints {
		cmd := commandOf(h)
		if hasArgs && cmd != word || !hasArgs && !strings.HasPrefix(cmd, word) {
			continue
		}
		out = append(out, h)
		if len(out) == limit {
			break
		}
	}
	return out
}

func commandOf(hint string) string {
	cmd, _, _ := strings.Cut(hint, " ")
	return cmd
}
