package domain_test

import (
	"errors"
	"testing"

	"studyplanner/internal/modules/timer/domain"
	apperrors "studyplanner/internal/platform/errors"
)

func TestCountdownLifecycle(t *testing.T) {
	t.Parallel()
	var c domain.Countdown
	if err := c.Start(0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.Remaining != 25*60 || c.Format() != "25:00" {
		t.Fatalf("default start should load 25 minutes, got %s", c.Format())
	}
	if err := c.Start(10); !errors.Is(err, apperrors.ErrTimerRunning) {
		t.Fatalf("expected running error, got %v", err)
	}
	c.Tick()
	if c.Format() != "24:59" {
		t.Fatalf("expected 24:59, got %s", c.Format())
	}
	if err := c.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if c.Tick() || c.Remaining != 24*60+59 {
		t.Fatalf("paused timer must not tick")
	}
	if err := c.Pause(); !errors.Is(err, apperrors.ErrTimerIdle) {
		t.Fatalf("expected idle error, got %v", err)
	}
	if err := c.Start(5); err != nil || c.Remaining != 24*60+59 {
		t.Fatalf("start after pause should resume, got %d (%v)", c.Remaining, err)
	}
	c.Reset()
	if c.Running || c.Remaining != 0 || c.Format() != "00:00" {
		t.Fatalf("reset should zero the timer: %+v", c)
	}
}

func TestCountdownCompletes(t *testing.T) {
	t.Parallel()
	var c domain.Countdown
	c.Preset(1)
	if c.Running || c.Remaining != 60 {
		t.Fatalf("preset should load without running: %+v", c)
	}
	if err := c.Start(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	done := 0
	for i := 0; i < 60; i++ {
		if c.Tick() {
			done++
			if i != 59 {
				t.Fatalf("completed early at tick %d", i)
			}
		}
	}
	if done != 1 || c.Running || c.Remaining != 0 {
		t.Fatalf("expected single completion, got %d %+v", done, c)
	}
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "00:00", 59: "00:59", 61: "01:01", 3600: "60:00", 480 * 60: "480:00", -5: "00:00"}
	for in, want := range cases {
		if got := domain.FormatSeconds(in); got != want {
			t.Fatalf("%d: expected %s, got %s", in, want, got)
		}
	}
}
