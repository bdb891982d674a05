package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "studyplanner/internal/modules/achievement/dto"
	librarydto "studyplanner/internal/modules/library/dto"
	preferencedto "studyplanner/internal/modules/preference/dto"
	sessiondto "studyplanner/internal/modules/session/dto"
	statsdto "studyplanner/internal/modules/stats/dto"
	"studyplanner/internal/platform/civil"
	"studyplanner/internal/platform/notify"
	"studyplanner/internal/ui/components"
	"studyplanner/internal/ui/theme"
	progressview "studyplanner/internal/ui/views/progress"
	resourcesview "studyplanner/internal/ui/views/resources"
	sessionsview "studyplanner/internal/ui/views/sessions"
	timerview "studyplanner/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	ParseDate(value string) (civil.Date, error)
	Add(ctx context.Context, subject, date, at string, duration int, notes string, tags []string) (sessiondto.AddOutput, error)
	List(ctx context.Context, status, tag, query string) ([]sessiondto.SessionOutput, error)
	Complete(ctx context.Context, id string) (sessiondto.CompleteOutput, error)
	Remove(ctx context.Context, id string) (sessiondto.RemoveOutput, error)
	Sample(ctx context.Context) (sessiondto.ImportOutput, error)
}

type statsPort interface {
	Stats(ctx context.Context) (statsdto.StatsOutput, error)
}

type badgePort interface {
	Badges(ctx context.Context) ([]achievementdto.BadgeOutput, error)
}

type resourcePort interface {
	List(ctx context.Context, kind, tag string, limit int) ([]librarydto.ResourceOutput, error)
	Preview(ctx context.Context, url string) (librarydto.PreviewOutput, error)
	Open(ctx context.Context, id string) error
	Schedule(ctx context.Context, id string, date civil.Date, at string, duration int) (librarydto.ScheduleOutput, error)
	SaveToWatchlist(ctx context.Context, id string) (librarydto.WatchlistOutput, error)
	Fetch(ctx context.Context, provider, query string, max int) (librarydto.FetchOutput, error)
}

type preferencePort interface {
	ToggleTheme(ctx context.Context) (preferencedto.SetThemeOutput, error)
	Tour(ctx context.Context) (preferencedto.TourOutput, error)
	CompleteTour(ctx context.Context) (preferencedto.TourOutput, error)
	ResetTour(ctx context.Context) (preferencedto.TourOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSessions tabID = iota
	tabProgress
	tabTimer
	tabResources
	tabCount
)

var tabLabels = [tabCount]string{
	"Sessions", "Progress", "Timer", "Resources",
}

// ─── async messages ───────────────────────────────────────────────────────────

type notifyMsg notify.Message

// sessionsChangedMsg follows any action that may have touched the session
// collection; both the list and the progress tab reload.
type sessionsChangedMsg struct {
	status string
	err    error
}

type resourceActionMsg struct {
	status string
	err    error
	reload bool
}

type themeMsg struct {
	out preferencedto.SetThemeOutput
	err error
}

type tourMsg struct {
	tour preferencedto.TourOutput
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Filter   key.Binding
	Toggle   key.Binding
	Reset    key.Binding
	Presets  key.Binding
	Schedule key.Binding
	Open     key.Binding
	Watch    key.Binding
	Preview  key.Binding
	Kind     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete session")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete session")),
		Filter:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "all/upcoming/completed")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause timer")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Presets:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "timer preset")),
		Schedule: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule resource today")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Watch:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save to watchlist")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "link preview")),
		Kind:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "resource kind")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Complete, k.Delete, k.Filter},
		{k.Toggle, k.Reset, k.Presets},
		{k.Schedule, k.Open, k.Watch, k.Preview, k.Kind},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, the command palette and the notification status line. All
// business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	sessions    sessionPort
	resources   resourcePort
	preferences preferencePort
	messages    <-chan notify.Message

	sessionView  sessionsview.Model
	progressView progressview.Model
	timerView    timerview.Model
	resourceView resourcesview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	level     notify.Level
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	sessions sessionPort,
	stats statsPort,
	badges badgePort,
	timer timerview.Port,
	resources resourcePort,
	preferences preferencePort,
	messages <-chan notify.Message,
) Model {
	return Model{
		sessions:     sessions,
		resources:    resources,
		preferences:  preferences,
		messages:     messages,
		sessionView:  sessionsview.New(sessions),
		progressView: progressview.New(progressPortBridge{stats: stats, badges: badges}),
		timerView:    timerview.New(timer),
		resourceView: resourcesview.New(resources),
		activeTab:    tabSessions,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sessionView.Init(),
		m.progressView.Init(),
		m.timerView.Init(),
		m.resourceView.Init(),
		m.loadTourCmd(),
		m.waitForNotification(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Background results go to their own view whatever tab is showing.
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case notifyMsg:
		m.status, m.level = msg.Text, msg.Level
		return m, m.waitForNotification()

	case sessionsview.LoadedMsg:
		var cmd tea.Cmd
		m.sessionView, cmd = m.sessionView.Update(msg)
		return m, cmd

	case progressview.LoadedMsg:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		return m, cmd

	case resourcesview.LoadedMsg, resourcesview.PreviewMsg:
		if preview, ok := msg.(resourcesview.PreviewMsg); ok && preview.Err != nil {
			m.setError("preview", preview.Err)
		}
		var cmd tea.Cmd
		m.resourceView, cmd = m.resourceView.Update(msg)
		return m, cmd

	case timerview.StateMsg, timerview.TickMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case timerview.TickedMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		if msg.Out.Completed {
			return m, tea.Batch(cmd, m.progressView.Reload())
		}
		return m, cmd

	case sessionsChangedMsg:
		if msg.err != nil {
			m.setError("session", msg.err)
		} else if msg.status != "" {
			m.setStatus(msg.status)
		}
		return m, tea.Batch(m.sessionView.Reload(), m.progressView.Reload())

	case resourceActionMsg:
		if msg.err != nil {
			m.setError("resource", msg.err)
		} else if msg.status != "" {
			m.setStatus(msg.status)
		}
		if msg.reload {
			return m, tea.Batch(m.resourceView.Reload(), m.sessionView.Reload(), m.progressView.Reload())
		}
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.setError("theme", msg.err)
			return m, nil
		}
		theme.Use(msg.out.Theme)
		m.setStatus("theme: " + msg.out.Theme)
		return m, nil

	case tourMsg:
		if msg.err != nil {
			m.setError("tour", msg.err)
			return m, nil
		}
		if !msg.tour.Completed {
			m.showHelp = true
			m.setStatus("welcome! press ? to close the key guide")
			return m, m.completeTourCmd()
		}
		return m, nil

	case spinner.TickMsg:
		var sCmd, rCmd tea.Cmd
		m.sessionView, sCmd = m.sessionView.Update(msg)
		m.resourceView, rCmd = m.resourceView.Update(msg)
		return m, tea.Batch(sCmd, rCmd)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.setStatus("ready")

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		}

		switch m.activeTab {
		case tabSessions:
			switch msg.String() {
			case "c":
				return m, m.completeSessionCmd()
			case "x":
				return m, m.removeSessionCmd()
			case "v":
				cmd := m.sessionView.CycleStatus()
				return m, cmd
			}
		case tabResources:
			switch msg.String() {
			case "s":
				return m, m.scheduleResourceCmd("today", "")
			case "o":
				return m, m.openResourceCmd()
			case "w":
				return m, m.watchResourceCmd()
			case "p":
				return m, m.resourceView.LoadPreview()
			case "t":
				cmd := m.resourceView.CycleKind()
				return m, cmd
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSessions:
		m.sessionView, tabCmd = m.sessionView.Update(msg)
	case tabProgress:
		m.progressView, tabCmd = m.progressView.Update(msg)
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabResources:
		m.resourceView, tabCmd = m.resourceView.Update(msg)
	}
	return m, tabCmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSessions:
		return m.sessionView.View()
	case tabProgress:
		return m.progressView.View()
	case tabTimer:
		return m.timerView.View()
	case tabResources:
		return m.resourceView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "studyplanner  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	var left string
	switch m.level {
	case notify.Error:
		left = theme.Bad.Render(m.status)
	case notify.Warning:
		left = lipgloss.NewStyle().Foreground(theme.Yellow).Render(m.status)
	case notify.Success:
		left = theme.Good.Render(m.status)
	default:
		left = m.status
	}
	if m.timerView.Running() && m.activeTab != tabTimer {
		left = theme.Hot.Render("● timer") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "session:add":
		if len(parts) < 4 {
			m.setStatus("usage: session:add <date> <minutes> <subject>")
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[2])
		if err != nil {
			m.setStatus("invalid minutes")
			return m, nil
		}
		m.activeTab = tabSessions
		return m, m.addSessionCmd(parts[1], minutes, strings.Join(parts[3:], " "))

	case "session:complete":
		return m, m.completeSessionCmd()

	case "session:remove":
		return m, m.removeSessionCmd()

	case "session:sample":
		m.activeTab = tabSessions
		return m, m.sampleCmd()

	case "session:filter":
		if len(parts) < 2 {
			m.setStatus("usage: session:filter <all|upcoming|completed>")
			return m, nil
		}
		cmd := m.sessionView.SetStatus(parts[1])
		if cmd == nil {
			m.setStatus("unknown filter: " + parts[1])
			return m, nil
		}
		m.activeTab = tabSessions
		return m, cmd

	case "timer:start":
		minutes := 0
		if len(parts) >= 2 {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				m.setStatus("invalid minutes")
				return m, nil
			}
			minutes = n
		}
		m.activeTab = tabTimer
		return m, m.timerView.Start(minutes)

	case "timer:pause":
		return m, m.timerView.Pause()

	case "timer:reset":
		return m, m.timerView.Reset()

	case "timer:preset":
		if len(parts) < 2 {
			m.setStatus("usage: timer:preset <minutes>")
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			m.setStatus("invalid minutes")
			return m, nil
		}
		m.activeTab = tabTimer
		return m, m.timerView.Preset(n)

	case "resource:schedule":
		date, at := "today", ""
		if len(parts) >= 2 {
			date = parts[1]
		}
		if len(parts) >= 3 {
			at = parts[2]
		}
		return m, m.scheduleResourceCmd(date, at)

	case "resource:open":
		return m, m.openResourceCmd()

	case "resource:preview":
		m.activeTab = tabResources
		return m, m.resourceView.LoadPreview()

	case "resource:watch":
		return m, m.watchResourceCmd()

	case "resource:tag":
		tag := ""
		if len(parts) >= 2 {
			tag = parts[1]
		}
		m.activeTab = tabResources
		cmd := m.resourceView.SetTag(tag)
		return m, cmd

	case "resource:fetch":
		if len(parts) < 2 {
			m.setStatus("usage: resource:fetch <devto|github|feed> [query]")
			return m, nil
		}
		m.activeTab = tabResources
		m.setStatus("fetching from " + parts[1] + "…")
		return m, m.fetchResourcesCmd(parts[1], strings.Join(parts[2:], " "))

	case "theme:toggle":
		return m, m.toggleThemeCmd()

	case "tour:reset":
		return m, m.resetTourCmd()

	default:
		m.setStatus("unknown command: " + parts[0])
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) setStatus(text string) {
	m.status, m.level = text, notify.Info
}

func (m *Model) setError(scope string, err error) {
	m.status, m.level = scope+": "+err.Error(), notify.Error
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabSessions:
		return m.sessionView.Filtering()
	case tabResources:
		return m.resourceView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.sessionView, _ = m.sessionView.Update(sz)
	m.progressView, _ = m.progressView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
	m.resourceView, _ = m.resourceView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) waitForNotification() tea.Cmd {
	if m.messages == nil {
		return nil
	}
	ch := m.messages
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return notifyMsg(msg)
	}
}

func (m Model) addSessionCmd(date string, minutes int, subject string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.sessions.Add(context.Background(), subject, date, "", minutes, "", nil)
		return sessionsChangedMsg{err: err}
	}
}

func (m Model) completeSessionCmd() tea.Cmd {
	selected, ok := m.sessionView.Selected()
	if !ok {
		return func() tea.Msg { return sessionsChangedMsg{status: "no session selected"} }
	}
	return func() tea.Msg {
		out, err := m.sessions.Complete(context.Background(), selected.ID)
		if err == nil && !out.Changed {
			return sessionsChangedMsg{status: "session not found"}
		}
		return sessionsChangedMsg{err: err}
	}
}

func (m Model) removeSessionCmd() tea.Cmd {
	selected, ok := m.sessionView.Selected()
	if !ok {
		return func() tea.Msg { return sessionsChangedMsg{status: "no session selected"} }
	}
	return func() tea.Msg {
		_, err := m.sessions.Remove(context.Background(), selected.ID)
		return sessionsChangedMsg{err: err}
	}
}

func (m Model) sampleCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.sessions.Sample(context.Background())
		return sessionsChangedMsg{err: err}
	}
}

func (m Model) scheduleResourceCmd(date, at string) tea.Cmd {
	selected, ok := m.resourceView.Selected()
	if !ok {
		return func() tea.Msg { return resourceActionMsg{status: "no resource selected"} }
	}
	return func() tea.Msg {
		day, err := m.sessions.ParseDate(date)
		if err != nil {
			return resourceActionMsg{err: err}
		}
		out, err := m.resources.Schedule(context.Background(), selected.ID, day, at, 0)
		if err != nil {
			return resourceActionMsg{err: err}
		}
		return resourceActionMsg{status: fmt.Sprintf("scheduled %q for %s", out.Subject, out.Date), reload: true}
	}
}

func (m Model) openResourceCmd() tea.Cmd {
	selected, ok := m.resourceView.Selected()
	if !ok {
		return func() tea.Msg { return resourceActionMsg{status: "no resource selected"} }
	}
	return func() tea.Msg {
		if err := m.resources.Open(context.Background(), selected.ID); err != nil {
			return resourceActionMsg{err: err}
		}
		return resourceActionMsg{status: "opened " + selected.URL}
	}
}

func (m Model) watchResourceCmd() tea.Cmd {
	selected, ok := m.resourceView.Selected()
	if !ok {
		return func() tea.Msg { return resourceActionMsg{status: "no resource selected"} }
	}
	return func() tea.Msg {
		out, err := m.resources.SaveToWatchlist(context.Background(), selected.ID)
		if err != nil {
			return resourceActionMsg{err: err}
		}
		if !out.Changed {
			return resourceActionMsg{status: "already on the watchlist"}
		}
		return resourceActionMsg{}
	}
}

func (m Model) fetchResourcesCmd(provider, query string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.resources.Fetch(context.Background(), provider, query, 0)
		if err != nil {
			return resourceActionMsg{err: err}
		}
		return resourceActionMsg{status: fmt.Sprintf("fetched %d, indexed %d", len(out.Resources), out.Indexed), reload: true}
	}
}

func (m Model) toggleThemeCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.preferences.ToggleTheme(context.Background())
		return themeMsg{out: out, err: err}
	}
}

func (m Model) loadTourCmd() tea.Cmd {
	if m.preferences == nil {
		return nil
	}
	return func() tea.Msg {
		tour, err := m.preferences.Tour(context.Background())
		return tourMsg{tour: tour, err: err}
	}
}

func (m Model) completeTourCmd() tea.Cmd {
	return func() tea.Msg {
		_, _ = m.preferences.CompleteTour(context.Background())
		return nil
	}
}

func (m Model) resetTourCmd() tea.Cmd {
	return func() tea.Msg {
		tour, err := m.preferences.ResetTour(context.Background())
		return tourMsg{tour: tour, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

// progressPortBridge joins the stats and badge handlers for the Progress tab.
type progressPortBridge struct {
	stats  statsPort
	badges badgePort
}

func (b progressPortBridge) Stats(ctx context.Context) (statsdto.StatsOutput, error) {
	return b.stats.Stats(ctx)
}

func (b progressPortBridge) Badges(ctx context.Context) ([]achievementdto.BadgeOutput, error) {
	return b.badges.Badges(ctx)
}
