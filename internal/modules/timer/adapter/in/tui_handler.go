package in

import (
	"context"

	timerdto "studyplanner/internal/modules/timer/dto"
	timerin "studyplanner/internal/modules/timer/port/in"
)

// TUIHandler exposes the step-wise countdown; the TUI owns the tick loop.
type TUIHandler struct {
	usecase timerin.Usecase
}

func NewTUIHandler(usecase timerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, minutes int) (timerdto.StateOutput, error) {
	return h.usecase.Start(ctx, minutes)
}

func (h TUIHandler) Tick(ctx context.Context) (timerdto.TickOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h TUIHandler) Pause(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h TUIHandler) Reset(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h TUIHandler) Preset(ctx context.Context, minutes int) (timerdto.StateOutput, error) {
	return h.usecase.Preset(ctx, minutes)
}

func (h TUIHandler) State(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.State(ctx)
}

func (h TUIHandler) Presets() []int {
	return h.usecase.Presets()
}
