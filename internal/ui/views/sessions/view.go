package sessions

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studyplanner/internal/modules/session/dto"
	"studyplanner/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context, status, tag, query string) ([]sessiondto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session sessiondto.SessionOutput
}

func (i sessionItem) Title() string { return i.session.Subject }

func (i sessionItem) Description() string {
	s := i.session
	when := s.Date.String()
	if s.Time != "" {
		when += " " + s.Time
	}
	state := "upcoming"
	if s.Level > 0 {
		state = fmt.Sprintf("level %d", s.Level)
	}
	return fmt.Sprintf("%s  %d min  %s", when, s.Duration, state)
}

func (i sessionItem) FilterValue() string {
	return i.session.Subject + " " + strings.Join(i.session.Tags, " ")
}

// statusCycle is the order the filter key walks through.
var statusCycle = []string{sessiondto.StatusAll, sessiondto.StatusUpcoming, sessiondto.StatusCompleted}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	status  string
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		status:  sessiondto.StatusAll,
		loading: true,
	}
	m.list.Title = m.title()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = m.title() + " - " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = m.title()
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sessions…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload lists the sessions again under the current status filter.
func (m Model) Reload() tea.Cmd {
	status := m.status
	return func() tea.Msg {
		list, err := m.port.List(context.Background(), status, "", "")
		return LoadedMsg{Sessions: list, Err: err}
	}
}

// SetStatus changes the filter and reloads. Unknown values are ignored.
func (m *Model) SetStatus(status string) tea.Cmd {
	for _, s := range statusCycle {
		if s == status {
			m.status = status
			m.list.Title = m.title()
			return m.Reload()
		}
	}
	return nil
}

// CycleStatus moves to the next filter in all → upcoming → completed.
func (m *Model) CycleStatus() tea.Cmd {
	next := statusCycle[0]
	for i, s := range statusCycle {
		if s == m.status {
			next = statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return m.SetStatus(next)
}

func (m Model) Status() string { return m.status }

func (m Model) Selected() (sessiondto.SessionOutput, bool) {
	if item, ok := m.list.SelectedItem().(sessionItem); ok {
		return item.session, true
	}
	return sessiondto.SessionOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) title() string {
	return "Sessions (" + m.status + ")"
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	s, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No sessions yet. Try :session:add or :session:sample")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Subject) + "\n\n")
	sb.WriteString(theme.Muted.Render("date:     ") + s.Date.String() + "\n")
	if s.Time != "" {
		sb.WriteString(theme.Muted.Render("time:     ") + s.Time + "\n")
	}
	sb.WriteString(fmt.Sprintf("%s%d min\n", theme.Muted.Render("duration: "), s.Duration))
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("level:    "), s.Level))
	if s.CompletedDate != nil {
		sb.WriteString(theme.Muted.Render("done:     ") + s.CompletedDate.String() + "\n")
	}
	if len(s.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:     ") + strings.Join(s.Tags, ", ") + "\n")
	}
	if s.Notes != "" {
		sb.WriteString("\n" + s.Notes + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("c: complete  x: delete  v: filter"))
	return sb.String()
}
