package domain

import (
	"math"

	"studyplanner/internal/platform/civil"
)

const defaultDuration = 30

// Entry is the slice of a session the aggregates need.
type Entry struct {
	Date          civil.Date
	Level         int
	Duration      int
	CompletedDate *civil.Date
}

type Stats struct {
	CompletedCount     int
	NextUpcomingDate   *civil.Date
	TotalHours         float64
	StreakDays         int
	UnlockedBadgeCount int
}

// Compute derives every aggregate except the badge count.
func Compute(entries []Entry, today civil.Date) Stats {
	var (
		stats     Stats
		minutes   int
		completed []civil.Date
	)
	for _, e := range entries {
		if e.Level > 0 {
			stats.CompletedCount++
			if e.Duration > 0 {
				minutes += e.Duration
			} else {
				minutes += defaultDuration
			}
			if e.CompletedDate != nil {
				completed = append(completed, *e.CompletedDate)
			}
			continue
		}
		if e.Date.Before(today) {
			continue
		}
		if stats.NextUpcomingDate == nil || e.Date.Before(*stats.NextUpcomingDate) {
			d := e.Date
			stats.NextUpcomingDate = &d
		}
	}
	stats.TotalHours = RoundHours(minutes)
	stats.StreakDays = Streak(completed, today)
	return stats
}

// RoundHours converts minutes to hours with one decimal.
func RoundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}
