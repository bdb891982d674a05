package in

import (
	"context"

	"studyplanner/internal/modules/stats/dto"
)

type Usecase interface {
	// Stats runs a badge evaluation pass and returns the dashboard figures.
	Stats(ctx context.Context) (dto.StatsOutput, error)
	// Refresh re-evaluates badges after sessions or timer runs change.
	Refresh(ctx context.Context) error
}
