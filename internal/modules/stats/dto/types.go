package dto

import "studyplanner/internal/platform/civil"

type StatsOutput struct {
	CompletedCount     int
	NextUpcomingDate   *civil.Date
	TotalHours         float64
	StreakDays         int
	UnlockedBadgeCount int
	NewlyUnlocked      []string
}
