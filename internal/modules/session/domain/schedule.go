package domain

import (
	"math"
	"strconv"

	"studyplanner/internal/platform/civil"
)

// IntervalDays is the spacing for a session at level: max(1, round(2^level)).
// Levels whose interval does not fit in an int report math.MaxInt.
func IntervalDays(level int) int {
	switch {
	case level <= 0:
		return 1
	case level >= strconv.IntSize-1:
		return math.MaxInt
	}
	return 1 << level
}

// NextDueDate returns current advanced by the interval for level, where
// level is the value after the completion that triggered the reschedule.
// The result never passes civil.Max.
func NextDueDate(current civil.Date, level int) civil.Date {
	days := IntervalDays(level)
	if days >= civil.Max.DaysSince(current) {
		return civil.Max
	}
	return current.AddDays(days)
}
