package in

import (
	"context"

	statsdto "studyplanner/internal/modules/stats/dto"
	statsin "studyplanner/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context) (statsdto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}
