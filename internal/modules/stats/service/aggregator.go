package service

import (
	sessiondto "studyplanner/internal/modules/session/dto"
	"studyplanner/internal/modules/stats/domain"
	"studyplanner/internal/platform/civil"
	"studyplanner/internal/platform/clock"
)

type Aggregator struct {
	clock clock.Clock
}

func NewAggregator(clock clock.Clock) *Aggregator {
	return &Aggregator{clock: clock}
}

func (a *Aggregator) Today() civil.Date {
	return clock.Today(a.clock)
}

func (a *Aggregator) Aggregate(sessions []sessiondto.SessionOutput, unlockedBadges int) domain.Stats {
	entries := make([]domain.Entry, 0, len(sessions))
	for _, s := range sessions {
		entries = append(entries, domain.Entry{Date: s.Date, Level: s.Level, Duration: s.Duration, CompletedDate: s.CompletedDate})
	}
	stats := domain.Compute(entries, a.Today())
	stats.UnlockedBadgeCount = unlockedBadges
	return stats
}
