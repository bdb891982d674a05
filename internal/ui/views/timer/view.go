package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "studyplanner/internal/modules/timer/dto"
	"studyplanner/internal/ui/theme"
)

type Port interface {
	Start(ctx context.Context, minutes int) (timerdto.StateOutput, error)
	Tick(ctx context.Context) (timerdto.TickOutput, error)
	Pause(ctx context.Context) (timerdto.StateOutput, error)
	Reset(ctx context.Context) (timerdto.StateOutput, error)
	Preset(ctx context.Context, minutes int) (timerdto.StateOutput, error)
	State(ctx context.Context) (timerdto.StateOutput, error)
	Presets() []int
}

// StateMsg carries the countdown after start, pause, reset or preset.
type StateMsg struct {
	State timerdto.StateOutput
	Err   error
}

// TickMsg fires once per second while the loop with the same generation is
// alive. Pausing bumps the generation, which retires pending ticks.
type TickMsg struct{ gen int }

// TickedMsg is the outcome of one tick. The app reloads progress when
// Completed is set.
type TickedMsg struct {
	Out timerdto.TickOutput
	Err error
	gen int
}

type Model struct {
	port    Port
	bar     progress.Model
	state   timerdto.StateOutput
	total   int
	gen     int
	presets []int
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	return Model{
		port:    port,
		bar:     progress.New(progress.WithSolidFill(string(theme.Peach)), progress.WithoutPercentage()),
		presets: port.Presets(),
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		state, err := m.port.State(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-8, 60))

	case StateMsg:
		m.err = msg.Err
		wasRunning := m.state.Running
		m.state = msg.State
		if m.total < m.state.Remaining || !m.state.Running && !wasRunning {
			m.total = m.state.Remaining
		}
		if m.state.Running && !wasRunning {
			m.gen++
			return m, m.tick()
		}
		if !m.state.Running {
			m.gen++
		}

	case TickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		gen := m.gen
		return m, func() tea.Msg {
			out, err := m.port.Tick(context.Background())
			return TickedMsg{Out: out, Err: err, gen: gen}
		}

	case TickedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.err = msg.Err
		m.state = msg.Out.State
		if msg.Out.Completed {
			m.total = 0
			m.gen++
			return m, nil
		}
		if m.state.Running {
			return m, m.tick()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if m.state.Running {
				return m, m.Pause()
			}
			return m, m.Start(0)
		case "r":
			return m, m.Reset()
		case "1", "2", "3", "4":
			i := int(msg.String()[0] - '1')
			if i < len(m.presets) {
				return m, m.Preset(m.presets[i])
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	clock := lipgloss.NewStyle().Bold(true).Foreground(theme.Peach).Padding(1, 4).
		BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Surface1).
		Render(m.state.Display)
	sb.WriteString(clock + "\n\n")

	ratio := 0.0
	if m.total > 0 {
		ratio = 1 - float64(m.state.Remaining)/float64(m.total)
	}
	sb.WriteString(m.bar.ViewAs(ratio) + "\n\n")

	status := theme.Muted.Render("paused")
	if m.state.Running {
		status = theme.Good.Render("running")
	}
	sb.WriteString(status + "\n\n")

	labels := make([]string, len(m.presets))
	for i, p := range m.presets {
		labels[i] = fmt.Sprintf("%d: %d min", i+1, p)
	}
	sb.WriteString(theme.Muted.Render(strings.Join(labels, "  ")) + "\n")
	sb.WriteString(theme.Muted.Render("space: start/pause  r: reset"))
	if m.err != nil {
		sb.WriteString("\n\n" + theme.Bad.Render(m.err.Error()))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

func (m Model) Running() bool { return m.state.Running }

// Start begins counting down; minutes <= 0 resumes or uses the default.
func (m Model) Start(minutes int) tea.Cmd {
	return m.stateCmd(func(ctx context.Context) (timerdto.StateOutput, error) {
		return m.port.Start(ctx, minutes)
	})
}

func (m Model) Pause() tea.Cmd {
	return m.stateCmd(m.port.Pause)
}

func (m Model) Reset() tea.Cmd {
	return m.stateCmd(m.port.Reset)
}

func (m Model) Preset(minutes int) tea.Cmd {
	return m.stateCmd(func(ctx context.Context) (timerdto.StateOutput, error) {
		return m.port.Preset(ctx, minutes)
	})
}

func (m Model) stateCmd(fn func(context.Context) (timerdto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TickMsg{gen: gen} })
}
