package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "studyplanner/internal/modules/achievement/dto"
	statsdto "studyplanner/internal/modules/stats/dto"
	"studyplanner/internal/ui/theme"
)

type Port interface {
	Stats(ctx context.Context) (statsdto.StatsOutput, error)
	Badges(ctx context.Context) ([]achievementdto.BadgeOutput, error)
}

type LoadedMsg struct {
	Stats  statsdto.StatsOutput
	Badges []achievementdto.BadgeOutput
	Err    error
}

// Model shows the stats cards and the badge grid.
type Model struct {
	port   Port
	bar    progress.Model
	stats  statsdto.StatsOutput
	badges []achievementdto.BadgeOutput
	err    error
	width  int
	height int
}

func New(port Port) Model {
	return Model{
		port: port,
		bar:  progress.New(progress.WithSolidFill(string(theme.Green)), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-8, 60))
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.stats = msg.Stats
			m.badges = msg.Badges
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("progress: " + m.err.Error())
	}

	next := "none"
	if m.stats.NextUpcomingDate != nil {
		next = m.stats.NextUpcomingDate.String()
	}
	cards := []string{
		card("Completed", fmt.Sprintf("%d", m.stats.CompletedCount)),
		card("Next up", next),
		card("Hours", fmt.Sprintf("%.1f", m.stats.TotalHours)),
		card("Streak", fmt.Sprintf("%d days", m.stats.StreakDays)),
	}

	unlocked := 0
	var rows []string
	for _, b := range m.badges {
		mark := theme.Muted.Render("○ ")
		name := theme.Muted.Render(b.Name)
		if b.Unlocked {
			unlocked++
			mark = theme.Good.Render("● ")
			name = theme.Hot.Render(b.Name)
		}
		rows = append(rows, mark+name+theme.Muted.Render("  "+b.Description))
	}
	ratio := 0.0
	if len(m.badges) > 0 {
		ratio = float64(unlocked) / float64(len(m.badges))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Badges %d/%d", unlocked, len(m.badges))) + "\n")
	sb.WriteString(m.bar.ViewAs(ratio) + "\n\n")
	sb.WriteString(strings.Join(rows, "\n"))
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}

// Reload fetches stats and badges. Stats evaluates badges first so the grid
// reflects anything it unlocked.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := m.port.Stats(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		badges, err := m.port.Badges(ctx)
		return LoadedMsg{Stats: stats, Badges: badges, Err: err}
	}
}

func card(label, value string) string {
	return theme.Pane.Width(18).Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
}
