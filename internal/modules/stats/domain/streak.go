package domain

import (
	"slices"

	"studyplanner/internal/platform/civil"
)

// Streak counts consecutive study days ending today or yesterday. Dates
// after today are ignored; duplicates count once.
func Streak(completed []civil.Date, today civil.Date) int {
	dates := make([]civil.Date, 0, len(completed))
	for _, d := range completed {
		if d.IsZero() || d.After(today) {
			continue
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return 0
	}
	slices.SortFunc(dates, func(a, b civil.Date) int { return b.Compare(a) })
	dates = slices.Compact(dates)

	if gap := today.DaysSince(dates[0]); gap > 1 {
		return 0
	}
	streak := 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].DaysSince(dates[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}
