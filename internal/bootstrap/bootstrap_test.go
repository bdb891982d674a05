package bootstrap_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"studyplanner/internal/bootstrap"
	"studyplanner/internal/platform/activitylog"
	"studyplanner/internal/platform/clock"
	"studyplanner/internal/platform/config"
	"studyplanner/internal/platform/notify"
)

func loadConfig(t *testing.T, dir string, ephemeral bool) config.Config {
	t.Helper()
	cfg, err := config.Load(config.Options{DataDir: dir, Ephemeral: ephemeral, EnvFiles: []string{}})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func newApp(t *testing.T, cfg config.Config) *bootstrap.App {
	t.Helper()
	app, err := bootstrap.New(context.Background(), cfg, notify.Discard{}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return app
}

func unlocked(t *testing.T, app *bootstrap.App) map[string]bool {
	t.Helper()
	badges, err := app.BadgeCLI.Badges(context.Background())
	if err != nil {
		t.Fatalf("badges: %v", err)
	}
	out := map[string]bool{}
	for _, b := range badges {
		if b.Unlocked {
			out[b.ID] = true
		}
	}
	return out
}

func TestTenSessionsBadgeSurvivesDeletions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := loadConfig(t, t.TempDir(), false)
	app := newApp(t, cfg)

	ids := make([]string, 0, 10)
	for n := range 10 {
		added, err := app.SessionCLI.Add(ctx, fmt.Sprintf("Chapter %d", n+1), "today", "", 30, "", nil)
		if err != nil {
			t.Fatalf("add %d: %v", n, err)
		}
		ids = append(ids, added.Session.ID)
	}
	for _, id := range ids {
		if _, err := app.SessionCLI.Complete(ctx, id); err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
	}
	if got := unlocked(t, app); !got["ten_sessions"] || !got["five_sessions"] || !got["first_session"] {
		t.Fatalf("expected session badges after ten completions, got %v", got)
	}
	for _, id := range ids[:6] {
		out, err := app.SessionCLI.Remove(ctx, id)
		if err != nil || !out.Changed {
			t.Fatalf("remove %s: %+v %v", id, out, err)
		}
	}
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := newApp(t, cfg)
	defer reopened.Close()
	list, err := reopened.SessionCLI.List(ctx, "all", "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 sessions after reload, got %d", len(list))
	}
	stats, err := reopened.StatsCLI.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CompletedCount != 4 || stats.UnlockedBadgeCount != 3 {
		t.Fatalf("unexpected stats after deletions: %+v", stats)
	}
	if got := unlocked(t, reopened); !got["ten_sessions"] {
		t.Fatalf("ten_sessions must stay unlocked, got %v", got)
	}
}

func TestCompletionSchedulesNextReviewAndLogsActivity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	app := newApp(t, loadConfig(t, t.TempDir(), false))
	defer app.Close()

	added, err := app.SessionCLI.Add(ctx, "Organic Chemistry", "today", "18:00", 45, "", []string{"chem"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	done, err := app.SessionCLI.Complete(ctx, added.Session.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	today := clock.Today(app.Clock)
	if done.Session.Level != 1 || done.Session.Date != today.AddDays(2) {
		t.Fatalf("expected level 1 due %s, got %+v", today.AddDays(2), done.Session)
	}
	stats, err := app.StatsCLI.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CompletedCount != 1 || stats.StreakDays != 1 || stats.TotalHours != 0.8 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	events, err := app.Activity.ReadAll()
	if err != nil {
		t.Fatalf("read activity: %v", err)
	}
	var names []string
	for _, e := range events {
		names = append(names, e.Event)
	}
	want := []string{activitylog.EventSessionAdded, activitylog.EventSessionCompleted, activitylog.EventBadgeUnlocked}
	if len(names) != len(want) {
		t.Fatalf("expected events %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, names)
		}
	}
}

func TestEphemeralLeavesDataDirEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	app := newApp(t, loadConfig(t, dir, true))
	if _, err := app.SessionCLI.Sample(ctx); err != nil {
		t.Fatalf("sample: %v", err)
	}
	list, err := app.SessionCLI.List(ctx, "all", "", "")
	if err != nil || len(list) != 2 {
		t.Fatalf("expected two sample sessions: %+v %v", list, err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read data dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("ephemeral run wrote %d entries to the data dir", len(entries))
	}
}
