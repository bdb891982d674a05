package resources

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	librarydto "studyplanner/internal/modules/library/dto"
	"studyplanner/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context, kind, tag string, limit int) ([]librarydto.ResourceOutput, error)
	Preview(ctx context.Context, url string) (librarydto.PreviewOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Resources []librarydto.ResourceOutput
	Err       error
}

type PreviewMsg struct {
	ID      string
	Preview librarydto.PreviewOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type resourceItem struct {
	resource librarydto.ResourceOutput
}

func (i resourceItem) Title() string { return i.resource.Title }

func (i resourceItem) Description() string {
	return i.resource.Kind + "  " + i.resource.Source
}

func (i resourceItem) FilterValue() string {
	return i.resource.Title + " " + strings.Join(i.resource.Tags, " ")
}

var kindCycle = []string{"", "tutorial", "channel", "video", "article", "repository", "feed"}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	detail   viewport.Model
	spinner  spinner.Model
	kind     string
	tag      string
	previews map[string]librarydto.PreviewOutput
	loading  bool
	width    int
	height   int
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
		port:     port,
		list:     l,
		detail:   vp,
		spinner:  sp,
		previews: map[string]librarydto.PreviewOutput{},
		loading:  true,
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
		items := make([]list.Item, len(msg.Resources))
		for i, r := range msg.Resources {
			items[i] = resourceItem{resource: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case PreviewMsg:
		if msg.Err == nil {
			m.previews[msg.ID] = msg.Preview
			m.detail.SetContent(m.renderDetail())
		}
		return m, nil

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

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading resources…")
	}

	listW := m.width * 4 / 10
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

func (m Model) Reload() tea.Cmd {
	kind, tag := m.kind, m.tag
	return func() tea.Msg {
		resources, err := m.port.List(context.Background(), kind, tag, 0)
		return LoadedMsg{Resources: resources, Err: err}
	}
}

// CycleKind walks the kind filter: all, tutorial, channel, video, …
func (m *Model) CycleKind() tea.Cmd {
	next := kindCycle[0]
	for i, k := range kindCycle {
		if k == m.kind {
			next = kindCycle[(i+1)%len(kindCycle)]
		}
	}
	m.kind = next
	m.list.Title = m.title()
	return m.Reload()
}

// SetTag filters by tag; an empty tag clears the filter.
func (m *Model) SetTag(tag string) tea.Cmd {
	m.tag = strings.TrimSpace(tag)
	m.list.Title = m.title()
	return m.Reload()
}

// LoadPreview fetches link metadata for the selected resource.
func (m Model) LoadPreview() tea.Cmd {
	r, ok := m.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		preview, err := m.port.Preview(context.Background(), r.URL)
		return PreviewMsg{ID: r.ID, Preview: preview, Err: err}
	}
}

func (m Model) Selected() (librarydto.ResourceOutput, bool) {
	if item, ok := m.list.SelectedItem().(resourceItem); ok {
		return item.resource, true
	}
	return librarydto.ResourceOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) title() string {
	title := "Resources"
	if m.kind != "" {
		title += " · " + m.kind
	}
	if m.tag != "" {
		title += " #" + m.tag
	}
	return title
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	r, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No resources match")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("kind:   ") + r.Kind + "\n")
	sb.WriteString(theme.Muted.Render("source: ") + r.Source + "\n")
	sb.WriteString(theme.Muted.Render("url:    ") + r.URL + "\n")
	if r.Author != "" {
		sb.WriteString(theme.Muted.Render("author: ") + r.Author + "\n")
	}
	if r.Stats != "" {
		sb.WriteString(theme.Muted.Render("stats:  ") + r.Stats + "\n")
	}
	if len(r.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:   ") + strings.Join(r.Tags, ", ") + "\n")
	}
	if r.Description != "" {
		sb.WriteString("\n" + r.Description + "\n")
	}
	if p, ok := m.previews[r.ID]; ok {
		sb.WriteString("\n" + theme.Hot.Render(p.Title) + "\n" + p.Description + "\n")
		if p.Image != "" {
			sb.WriteString(theme.Muted.Render("image: "+p.Image) + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("s: schedule today  o: open  w: watchlist  p: preview  t: kind"))
	return sb.String()
}
