package in

import (
	"context"

	timerdto "studyplanner/internal/modules/timer/dto"
	timerin "studyplanner/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Run(ctx context.Context, minutes int, onTick func(timerdto.StateOutput)) (timerdto.RunOutput, error) {
	return h.usecase.Run(ctx, minutes, onTick)
}

func (h CLIHandler) Record(ctx context.Context) (timerdto.RunOutput, error) {
	return h.usecase.Record(ctx)
}

func (h CLIHandler) Presets() []int {
	return h.usecase.Presets()
}
