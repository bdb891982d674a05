package in

import (
	"context"

	"studyplanner/internal/modules/preference/dto"
	preferencein "studyplanner/internal/modules/preference/port/in"
)

type CLIHandler struct {
	usecase preferencein.Usecase
}

func NewCLIHandler(usecase preferencein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Theme(ctx context.Context) (dto.ThemeOutput, error) {
	return h.usecase.Theme(ctx)
}

func (h CLIHandler) SetTheme(ctx context.Context, theme string) (dto.SetThemeOutput, error) {
	return h.usecase.SetTheme(ctx, theme)
}

func (h CLIHandler) ToggleTheme(ctx context.Context) (dto.SetThemeOutput, error) {
	return h.usecase.ToggleTheme(ctx)
}

func (h CLIHandler) Tour(ctx context.Context) (dto.TourOutput, error) {
	return h.usecase.Tour(ctx)
}

func (h CLIHandler) CompleteTour(ctx context.Context) (dto.TourOutput, error) {
	return h.usecase.CompleteTour(ctx)
}

func (h CLIHandler) ResetTour(ctx context.Context) (dto.TourOutput, error) {
	return h.usecase.ResetTour(ctx)
}
