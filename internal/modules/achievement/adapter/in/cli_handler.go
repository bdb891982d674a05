package in

import (
	"context"

	achievementdto "studyplanner/internal/modules/achievement/dto"
	achievementin "studyplanner/internal/modules/achievement/port/in"
)

type CLIHandler struct {
	usecase achievementin.Usecase
}

func NewCLIHandler(usecase achievementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Badges(ctx context.Context) ([]achievementdto.BadgeOutput, error) {
	return h.usecase.Badges(ctx)
}

func (h CLIHandler) TimerUses(ctx context.Context) (int, error) {
	return h.usecase.TimerUses(ctx)
}
