package usecase

import (
	"context"
	"fmt"

	achievementdto "studyplanner/internal/modules/achievement/dto"
	achievementin "studyplanner/internal/modules/achievement/port/in"
	sessiondto "studyplanner/internal/modules/session/dto"
	sessionin "studyplanner/internal/modules/session/port/in"
	statsdto "studyplanner/internal/modules/stats/dto"
	statsin "studyplanner/internal/modules/stats/port/in"
	"studyplanner/internal/modules/stats/service"
	"studyplanner/internal/platform/events"
)

type Interactor struct {
	aggregator   *service.Aggregator
	sessions     sessionin.Usecase
	achievements achievementin.Usecase
}

func NewInteractor(aggregator *service.Aggregator, sessions sessionin.Usecase, achievements achievementin.Usecase) statsin.Usecase {
	return &Interactor{aggregator: aggregator, sessions: sessions, achievements: achievements}
}

func (i *Interactor) Stats(ctx context.Context) (statsdto.StatsOutput, error) {
	list, err := i.sessions.ListSessions(ctx, sessiondto.ListFilter{Status: sessiondto.StatusAll})
	if err != nil {
		return statsdto.StatsOutput{}, fmt.Errorf("list sessions: %w", err)
	}
	evaluated, err := i.evaluate(ctx, list)
	if err != nil {
		return statsdto.StatsOutput{}, err
	}
	stats := i.aggregator.Aggregate(list, len(evaluated.Unlocked))
	return statsdto.StatsOutput{
		CompletedCount:     stats.CompletedCount,
		NextUpcomingDate:   stats.NextUpcomingDate,
		TotalHours:         stats.TotalHours,
		StreakDays:         stats.StreakDays,
		UnlockedBadgeCount: stats.UnlockedBadgeCount,
		NewlyUnlocked:      evaluated.NewlyUnlocked,
	}, nil
}

func (i *Interactor) Refresh(ctx context.Context) error {
	list, err := i.sessions.ListSessions(ctx, sessiondto.ListFilter{Status: sessiondto.StatusAll})
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	_, err = i.evaluate(ctx, list)
	return err
}

func (i *Interactor) evaluate(ctx context.Context, list []sessiondto.SessionOutput) (achievementdto.EvaluateOutput, error) {
	if i.achievements == nil {
		return achievementdto.EvaluateOutput{}, nil
	}
	input := achievementdto.EvaluateInput{Sessions: make([]achievementdto.Progress, 0, len(list))}
	for _, s := range list {
		input.Sessions = append(input.Sessions, achievementdto.Progress{Level: s.Level, Duration: s.Duration})
	}
	out, err := i.achievements.Evaluate(ctx, input)
	if err != nil {
		return achievementdto.EvaluateOutput{}, fmt.Errorf("evaluate badges: %w", err)
	}
	return out, nil
}

// Subscribe keeps the badge set current as sessions and timer runs change.
// It returns a function that removes the subscriptions.
func Subscribe(bus *events.Bus, uc statsin.Usecase, onError func(error)) func() {
	handler := func(ctx context.Context, _ events.Event) {
		if err := uc.Refresh(ctx); err != nil && onError != nil {
			onError(err)
		}
	}
	stopSessions := bus.Subscribe(events.SessionsChanged, handler)
	stopTimer := bus.Subscribe(events.TimerCompleted, handler)
	return func() {
		stopSessions()
		stopTimer()
	}
}
