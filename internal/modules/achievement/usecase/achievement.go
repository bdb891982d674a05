package usecase

import (
	"context"
	"log"

	"studyplanner/internal/modules/achievement/domain"
	achievementdto "studyplanner/internal/modules/achievement/dto"
	achievementin "studyplanner/internal/modules/achievement/port/in"
	achievementout "studyplanner/internal/modules/achievement/port/out"
	"studyplanner/internal/modules/achievement/service"
	"studyplanner/internal/platform/activitylog"
	"studyplanner/internal/platform/events"
	"studyplanner/internal/platform/notify"
)

type Interactor struct {
	evaluator *service.Evaluator
	counters  achievementout.CounterStore
	publisher achievementout.EventPublisher
	activity  achievementout.ActivityLog
	notifier  notify.Notifier
}

func NewInteractor(evaluator *service.Evaluator, counters achievementout.CounterStore, publisher achievementout.EventPublisher, activity achievementout.ActivityLog, notifier notify.Notifier) achievementin.Usecase {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Interactor{evaluator: evaluator, counters: counters, publisher: publisher, activity: activity, notifier: notifier}
}

func (i *Interactor) Evaluate(ctx context.Context, input achievementdto.EvaluateInput) (achievementdto.EvaluateOutput, error) {
	snapshot := domain.Snapshot{Sessions: make([]domain.Progress, 0, len(input.Sessions))}
	for _, p := range input.Sessions {
		snapshot.Sessions = append(snapshot.Sessions, domain.Progress{Level: p.Level, Duration: p.Duration})
	}
	if i.counters != nil {
		snapshot.TimerUses = i.counters.TimerUses(ctx)
	}

	unlocked, newly := i.evaluator.Evaluate(ctx, snapshot)
	for _, id := range newly {
		badge, _ := domain.Lookup(id)
		if i.activity != nil {
			if err := i.activity.Append(activitylog.Event{Event: activitylog.EventBadgeUnlocked, BadgeID: id}); err != nil {
				log.Printf("activity log: %v", err)
			}
		}
		i.notifier.Notify(notify.Success, "Badge unlocked: "+badge.Name)
	}
	if len(newly) > 0 && i.publisher != nil {
		i.publisher.Publish(ctx, events.Event{Topic: events.BadgesChanged, Payload: achievementdto.UnlockedEvent{IDs: newly}})
	}
	return achievementdto.EvaluateOutput{Unlocked: unlocked, NewlyUnlocked: newly}, nil
}

func (i *Interactor) UnlockedBadges(ctx context.Context) ([]string, error) {
	return i.evaluator.Unlocked(ctx), nil
}

func (i *Interactor) Badges(ctx context.Context) ([]achievementdto.BadgeOutput, error) {
	unlocked := map[string]bool{}
	for _, id := range i.evaluator.Unlocked(ctx) {
		unlocked[id] = true
	}
	defs := domain.Definitions()
	out := make([]achievementdto.BadgeOutput, 0, len(defs))
	for _, b := range defs {
		out = append(out, achievementdto.BadgeOutput{ID: b.ID, Name: b.Name, Icon: b.Icon, Description: b.Description, Unlocked: unlocked[b.ID]})
	}
	return out, nil
}

// RecordTimerUse bumps the completed timer counter and returns the new value.
func (i *Interactor) RecordTimerUse(ctx context.Context) (int, error) {
	if i.counters == nil {
		return 0, nil
	}
	n := i.counters.TimerUses(ctx) + 1
	if err := i.counters.SetTimerUses(ctx, n); err != nil {
		return n - 1, err
	}
	return n, nil
}

func (i *Interactor) TimerUses(ctx context.Context) (int, error) {
	if i.counters == nil {
		return 0, nil
	}
	return i.counters.TimerUses(ctx), nil
}
