package in

import (
	"context"

	"studyplanner/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context, minutes int) (dto.StateOutput, error)
	Tick(ctx context.Context) (dto.TickOutput, error)
	Pause(ctx context.Context) (dto.StateOutput, error)
	Reset(ctx context.Context) (dto.StateOutput, error)
	Preset(ctx context.Context, minutes int) (dto.StateOutput, error)
	State(ctx context.Context) (dto.StateOutput, error)
	Presets() []int
	// Run blocks, ticking once per second until the countdown finishes or
	// ctx is cancelled, which pauses it.
	Run(ctx context.Context, minutes int, onTick func(dto.StateOutput)) (dto.RunOutput, error)
	// Record counts a study run finished outside the ticking loop.
	Record(ctx context.Context) (dto.RunOutput, error)
}
