package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	achievementdto "studyplanner/internal/modules/achievement/dto"
	timerdto "studyplanner/internal/modules/timer/dto"
	"studyplanner/internal/modules/timer/usecase"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/events"
	"studyplanner/internal/platform/notify"
)

type manualTicker struct {
	ch      chan time.Time
	stopped bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time)}
}

func (m *manualTicker) Start(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() { m.stopped = true }
}

type fakeAchievements struct {
	uses int
}

func (f *fakeAchievements) Evaluate(context.Context, achievementdto.EvaluateInput) (achievementdto.EvaluateOutput, error) {
	return achievementdto.EvaluateOutput{}, nil
}
func (f *fakeAchievements) UnlockedBadges(context.Context) ([]string, error)              { return nil, nil }
func (f *fakeAchievements) Badges(context.Context) ([]achievementdto.BadgeOutput, error) { return nil, nil }
func (f *fakeAchievements) RecordTimerUse(context.Context) (int, error) {
	f.uses++
	return f.uses, nil
}
func (f *fakeAchievements) TimerUses(context.Context) (int, error) { return f.uses, nil }

func TestTickCompletionRecordsUseAndPublishes(t *testing.T) {
	t.Parallel()
	achievements := &fakeAchievements{}
	bus := events.NewBus()
	completed := 0
	bus.Subscribe(events.TimerCompleted, func(context.Context, events.Event) { completed++ })
	var messages []string
	uc := usecase.NewInteractor(25, newManualTicker(), achievements, bus, nil, notify.Func(func(_ notify.Level, m string) { messages = append(messages, m) }))
	ctx := context.Background()

	if _, err := uc.Preset(ctx, 1); err != nil {
		t.Fatalf("preset: %v", err)
	}
	state, err := uc.Start(ctx, 0)
	if err != nil || state.Display != "01:00" || !state.Running {
		t.Fatalf("start: %+v %v", state, err)
	}
	if _, err := uc.Start(ctx, 0); !errors.Is(err, apperrors.ErrTimerRunning) {
		t.Fatalf("expected running error, got %v", err)
	}
	var last timerdto.TickOutput
	for i := 0; i < 60; i++ {
		last, _ = uc.Tick(ctx)
	}
	if !last.Completed || last.TimerUses != 1 || last.State.Display != "00:00" {
		t.Fatalf("unexpected final tick: %+v", last)
	}
	if completed != 1 || achievements.uses != 1 {
		t.Fatalf("completion side effects missing: events=%d uses=%d", completed, achievements.uses)
	}
	if len(messages) != 1 || messages[0] != "Time's up! Great study session!" {
		t.Fatalf("unexpected messages: %v", messages)
	}
	if extra, _ := uc.Tick(ctx); extra.Completed {
		t.Fatalf("idle timer must not complete again")
	}
}

func TestRunStopsOnCancelAndResumes(t *testing.T) {
	t.Parallel()
	ticker := newManualTicker()
	uc := usecase.NewInteractor(1, ticker, &fakeAchievements{}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := 0
	done := make(chan timerdto.RunOutput)
	go func() {
		out, _ := uc.Run(ctx, 0, func(timerdto.StateOutput) { ticks++ })
		done <- out
	}()
	ticker.ch <- time.Now()
	ticker.ch <- time.Now()
	cancel()
	out := <-done
	if out.Completed || out.State.Running || out.State.Remaining != 58 {
		t.Fatalf("cancel should pause with 58s left: %+v", out)
	}
	if ticks != 3 || !ticker.stopped {
		t.Fatalf("expected initial callback plus 2 ticks and a stopped ticker, got %d %v", ticks, ticker.stopped)
	}

	go func() {
		out, _ := uc.Run(context.Background(), 0, nil)
		done <- out
	}()
	for i := 0; i < 58; i++ {
		ticker.ch <- time.Now()
	}
	out = <-done
	if !out.Completed || out.TimerUses != 1 {
		t.Fatalf("resumed run should complete: %+v", out)
	}
}

func TestRecordAndReset(t *testing.T) {
	t.Parallel()
	achievements := &fakeAchievements{uses: 4}
	uc := usecase.NewInteractor(0, newManualTicker(), achievements, nil, nil, nil)
	out, err := uc.Record(context.Background())
	if err != nil || out.TimerUses != 5 {
		t.Fatalf("record: %+v %v", out, err)
	}
	if _, err := uc.Start(context.Background(), 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	state, _ := uc.Reset(context.Background())
	if state.Running || state.Remaining != 0 {
		t.Fatalf("reset should stop and zero: %+v", state)
	}
	if _, err := uc.Pause(context.Background()); !errors.Is(err, apperrors.ErrTimerIdle) {
		t.Fatalf("expected idle error, got %v", err)
	}
	if got := uc.Presets(); len(got) != 4 || got[1] != 25 {
		t.Fatalf("unexpected presets: %v", got)
	}
}
