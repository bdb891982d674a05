package in

import (
	"context"

	"studyplanner/internal/modules/achievement/dto"
)

type Usecase interface {
	Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error)
	UnlockedBadges(ctx context.Context) ([]string, error)
	Badges(ctx context.Context) ([]dto.BadgeOutput, error)
	RecordTimerUse(ctx context.Context) (int, error)
	TimerUses(ctx context.Context) (int, error)
}
