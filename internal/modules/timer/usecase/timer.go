package usecase

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	achievementin "studyplanner/internal/modules/achievement/port/in"
	"studyplanner/internal/modules/timer/domain"
	timerdto "studyplanner/internal/modules/timer/dto"
	timerin "studyplanner/internal/modules/timer/port/in"
	timerout "studyplanner/internal/modules/timer/port/out"
	"studyplanner/internal/platform/activitylog"
	"studyplanner/internal/platform/events"
	"studyplanner/internal/platform/notify"
)

const msgTimeUp = "Time's up! Great study session!"

// Interactor owns one countdown. The CLI drives it through Run; the TUI
// calls Tick from its own one-second message loop.
type Interactor struct {
	mu             sync.Mutex
	countdown      domain.Countdown
	defaultMinutes int

	ticker       timerout.Ticker
	achievements achievementin.Usecase
	publisher    timerout.EventPublisher
	activity     timerout.ActivityLog
	notifier     notify.Notifier
}

func NewInteractor(defaultMinutes int, ticker timerout.Ticker, achievements achievementin.Usecase, publisher timerout.EventPublisher, activity timerout.ActivityLog, notifier notify.Notifier) timerin.Usecase {
	if defaultMinutes <= 0 {
		defaultMinutes = domain.DefaultMinutes
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Interactor{
		defaultMinutes: defaultMinutes,
		ticker:         ticker,
		achievements:   achievements,
		publisher:      publisher,
		activity:       activity,
		notifier:       notifier,
	}
}

func (i *Interactor) Start(_ context.Context, minutes int) (timerdto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if minutes <= 0 {
		minutes = i.defaultMinutes
	}
	if err := i.countdown.Start(minutes); err != nil {
		return i.stateLocked(), err
	}
	return i.stateLocked(), nil
}

func (i *Interactor) Tick(ctx context.Context) (timerdto.TickOutput, error) {
	i.mu.Lock()
	done := i.countdown.Tick()
	state := i.stateLocked()
	i.mu.Unlock()
	if !done {
		return timerdto.TickOutput{State: state}, nil
	}
	uses := i.complete(ctx)
	return timerdto.TickOutput{State: state, Completed: true, TimerUses: uses}, nil
}

func (i *Interactor) Pause(context.Context) (timerdto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	err := i.countdown.Pause()
	return i.stateLocked(), err
}

func (i *Interactor) Reset(context.Context) (timerdto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.countdown.Reset()
	return i.stateLocked(), nil
}

func (i *Interactor) Preset(_ context.Context, minutes int) (timerdto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if minutes <= 0 {
		minutes = i.defaultMinutes
	}
	i.countdown.Preset(minutes)
	return i.stateLocked(), nil
}

func (i *Interactor) State(context.Context) (timerdto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stateLocked(), nil
}

func (i *Interactor) Presets() []int {
	return slices.Clone(domain.Presets)
}

func (i *Interactor) Run(ctx context.Context, minutes int, onTick func(timerdto.StateOutput)) (timerdto.RunOutput, error) {
	state, err := i.Start(ctx, minutes)
	if err != nil {
		return timerdto.RunOutput{State: state}, err
	}
	if onTick != nil {
		onTick(state)
	}
	ticks, stop := i.ticker.Start(time.Second)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			paused, _ := i.Pause(context.WithoutCancel(ctx))
			return timerdto.RunOutput{State: paused}, nil
		case <-ticks:
			out, err := i.Tick(ctx)
			if err != nil {
				return timerdto.RunOutput{State: out.State}, err
			}
			if onTick != nil {
				onTick(out.State)
			}
			if out.Completed {
				return timerdto.RunOutput{State: out.State, Completed: true, TimerUses: out.TimerUses}, nil
			}
		}
	}
}

func (i *Interactor) Record(ctx context.Context) (timerdto.RunOutput, error) {
	uses := i.complete(ctx)
	state, _ := i.State(ctx)
	return timerdto.RunOutput{State: state, Completed: true, TimerUses: uses}, nil
}

// complete runs the side effects of a finished countdown.
func (i *Interactor) complete(ctx context.Context) int {
	uses := 0
	if i.achievements != nil {
		n, err := i.achievements.RecordTimerUse(ctx)
		if err != nil {
			log.Printf("record timer use: %v", err)
		}
		uses = n
	}
	if i.activity != nil {
		if err := i.activity.Append(activitylog.Event{Event: activitylog.EventTimerCompleted, Count: uses}); err != nil {
			log.Printf("activity log: %v", err)
		}
	}
	i.notifier.Notify(notify.Success, msgTimeUp)
	if i.publisher != nil {
		i.publisher.Publish(ctx, events.Event{Topic: events.TimerCompleted, Payload: uses})
	}
	return uses
}

func (i *Interactor) stateLocked() timerdto.StateOutput {
	return timerdto.StateOutput{Remaining: i.countdown.Remaining, Running: i.countdown.Running, Display: i.countdown.Format()}
}
