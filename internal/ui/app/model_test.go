package app_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	achievementdto "studyplanner/internal/modules/achievement/dto"
	librarydto "studyplanner/internal/modules/library/dto"
	preferencedto "studyplanner/internal/modules/preference/dto"
	sessiondto "studyplanner/internal/modules/session/dto"
	statsdto "studyplanner/internal/modules/stats/dto"
	timerdto "studyplanner/internal/modules/timer/dto"
	"studyplanner/internal/platform/civil"
	"studyplanner/internal/ui/app"
	"studyplanner/internal/ui/components"
)

type addCall struct {
	subject, date string
	duration      int
}

type fakeSessions struct{ added []addCall }

func (f *fakeSessions) ParseDate(string) (civil.Date, error) { return civil.MustParse("2026-10-17"), nil }
func (f *fakeSessions) Add(_ context.Context, subject, date, _ string, duration int, _ string, _ []string) (sessiondto.AddOutput, error) {
	f.added = append(f.added, addCall{subject: subject, date: date, duration: duration})
	return sessiondto.AddOutput{Saved: true}, nil
}
func (f *fakeSessions) List(context.Context, string, string, string) ([]sessiondto.SessionOutput, error) {
	return nil, nil
}
func (f *fakeSessions) Complete(context.Context, string) (sessiondto.CompleteOutput, error) {
	return sessiondto.CompleteOutput{}, nil
}
func (f *fakeSessions) Remove(context.Context, string) (sessiondto.RemoveOutput, error) {
	return sessiondto.RemoveOutput{}, nil
}
func (f *fakeSessions) Sample(context.Context) (sessiondto.ImportOutput, error) {
	return sessiondto.ImportOutput{}, nil
}

type fakeProgress struct{}

func (fakeProgress) Stats(context.Context) (statsdto.StatsOutput, error) {
	return statsdto.StatsOutput{}, nil
}
func (fakeProgress) Badges(context.Context) ([]achievementdto.BadgeOutput, error) { return nil, nil }

type fakeTimer struct{ started []int }

func (f *fakeTimer) Start(_ context.Context, minutes int) (timerdto.StateOutput, error) {
	f.started = append(f.started, minutes)
	return timerdto.StateOutput{Remaining: minutes * 60, Running: true}, nil
}
func (f *fakeTimer) Tick(context.Context) (timerdto.TickOutput, error) { return timerdto.TickOutput{}, nil }
func (f *fakeTimer) Pause(context.Context) (timerdto.StateOutput, error) {
	return timerdto.StateOutput{}, nil
}
func (f *fakeTimer) Reset(context.Context) (timerdto.StateOutput, error) {
	return timerdto.StateOutput{}, nil
}
func (f *fakeTimer) Preset(context.Context, int) (timerdto.StateOutput, error) {
	return timerdto.StateOutput{}, nil
}
func (f *fakeTimer) State(context.Context) (timerdto.StateOutput, error) {
	return timerdto.StateOutput{}, nil
}
func (f *fakeTimer) Presets() []int { return []int{15, 25, 45, 60} }

type fakeResources struct{ fetched []string }

func (f *fakeResources) List(context.Context, string, string, int) ([]librarydto.ResourceOutput, error) {
	return nil, nil
}
func (f *fakeResources) Preview(context.Context, string) (librarydto.PreviewOutput, error) {
	return librarydto.PreviewOutput{}, nil
}
func (f *fakeResources) Open(context.Context, string) error { return nil }
func (f *fakeResources) Schedule(context.Context, string, civil.Date, string, int) (librarydto.ScheduleOutput, error) {
	return librarydto.ScheduleOutput{}, nil
}
func (f *fakeResources) SaveToWatchlist(context.Context, string) (librarydto.WatchlistOutput, error) {
	return librarydto.WatchlistOutput{}, nil
}
func (f *fakeResources) Fetch(_ context.Context, provider, query string, _ int) (librarydto.FetchOutput, error) {
	f.fetched = append(f.fetched, provider+":"+query)
	return librarydto.FetchOutput{}, nil
}

type fakePreferences struct{}

func (fakePreferences) ToggleTheme(context.Context) (preferencedto.SetThemeOutput, error) {
	return preferencedto.SetThemeOutput{Theme: "dark", Saved: true}, nil
}
func (fakePreferences) Tour(context.Context) (preferencedto.TourOutput, error) {
	return preferencedto.TourOutput{Completed: true}, nil
}
func (fakePreferences) CompleteTour(context.Context) (preferencedto.TourOutput, error) {
	return preferencedto.TourOutput{Completed: true}, nil
}
func (fakePreferences) ResetTour(context.Context) (preferencedto.TourOutput, error) {
	return preferencedto.TourOutput{}, nil
}

type fixture struct {
	model     tea.Model
	sessions  *fakeSessions
	timer     *fakeTimer
	resources *fakeResources
}

func newFixture() fixture {
	sessions := &fakeSessions{}
	timer := &fakeTimer{}
	resources := &fakeResources{}
	model := app.NewModel(sessions, fakeProgress{}, fakeProgress{}, timer, resources, fakePreferences{}, nil)
	sized, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return fixture{model: sized, sessions: sessions, timer: timer, resources: resources}
}

func submit(t *testing.T, model tea.Model, input string) (tea.Model, tea.Msg) {
	t.Helper()
	next, cmd := model.Update(components.PaletteSubmitMsg{Input: input})
	if cmd == nil {
		return next, nil
	}
	return next, cmd()
}

func TestPaletteAddsSession(t *testing.T) {
	t.Parallel()
	f := newFixture()
	_, msg := submit(t, f.model, "session:add tomorrow 45 Spanish Vocabulary")
	if msg == nil {
		t.Fatalf("expected an async result")
	}
	if len(f.sessions.added) != 1 {
		t.Fatalf("expected one add call, got %d", len(f.sessions.added))
	}
	got := f.sessions.added[0]
	if got.subject != "Spanish Vocabulary" || got.date != "tomorrow" || got.duration != 45 {
		t.Fatalf("unexpected add call: %+v", got)
	}
}

func TestPaletteRejectsBadInput(t *testing.T) {
	t.Parallel()
	f := newFixture()
	next, _ := submit(t, f.model, "session:add today soon Biology")
	if !strings.Contains(next.View(), "invalid minutes") {
		t.Fatalf("expected invalid minutes in status line")
	}
	next, _ = submit(t, f.model, "reader:open")
	if !strings.Contains(next.View(), "unknown command: reader:open") {
		t.Fatalf("expected unknown command in status line")
	}
	if len(f.sessions.added) != 0 {
		t.Fatalf("bad input must not add sessions")
	}
}

func TestPaletteStartsTimerAndFetches(t *testing.T) {
	t.Parallel()
	f := newFixture()
	if _, msg := submit(t, f.model, "timer:start 15"); msg == nil {
		t.Fatalf("expected timer state message")
	}
	if len(f.timer.started) != 1 || f.timer.started[0] != 15 {
		t.Fatalf("unexpected timer starts: %v", f.timer.started)
	}
	if _, msg := submit(t, f.model, "resource:fetch devto go"); msg == nil {
		t.Fatalf("expected fetch result")
	}
	if len(f.resources.fetched) != 1 || f.resources.fetched[0] != "devto:go" {
		t.Fatalf("unexpected fetches: %v", f.resources.fetched)
	}
}
