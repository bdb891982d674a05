package clock

import (
	"time"

	"studyplanner/internal/platform/civil"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (UTC when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// Today returns the calendar date of c.Now().
func Today(c Clock) civil.Date {
	return civil.Of(c.Now())
}
