package domain

import (
	"fmt"

	apperrors "studyplanner/internal/platform/errors"
)

const DefaultMinutes = 25

// Presets are the quick durations offered next to the timer.
var Presets = []int{15, 25, 45, 60}

// Countdown is a one-second resolution study timer. Remaining is kept when
// paused so Start resumes where it stopped.
type Countdown struct {
	Remaining int
	Running   bool
}

// Start runs the timer. A fresh timer is loaded with minutes (DefaultMinutes
// when minutes is not positive); a paused one resumes.
func (c *Countdown) Start(minutes int) error {
	if c.Running {
		return apperrors.ErrTimerRunning
	}
	if minutes <= 0 {
		minutes = DefaultMinutes
	}
	if c.Remaining <= 0 {
		c.Remaining = minutes * 60
	}
	c.Running = true
	return nil
}

// Tick advances one second and reports whether the countdown just finished.
func (c *Countdown) Tick() bool {
	if !c.Running {
		return false
	}
	c.Remaining--
	if c.Remaining > 0 {
		return false
	}
	c.Remaining = 0
	c.Running = false
	return true
}

func (c *Countdown) Pause() error {
	if !c.Running {
		return apperrors.ErrTimerIdle
	}
	c.Running = false
	return nil
}

func (c *Countdown) Reset() {
	c.Running = false
	c.Remaining = 0
}

// Preset stops the timer and loads minutes.
func (c *Countdown) Preset(minutes int) {
	c.Running = false
	c.Remaining = minutes * 60
}

func (c Countdown) Format() string {
	return FormatSeconds(c.Remaining)
}

// FormatSeconds renders MM:SS; minutes are not wrapped into hours.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
