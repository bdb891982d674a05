package in

import (
	"context"

	"studyplanner/internal/modules/preference/dto"
)

type Usecase interface {
	Theme(ctx context.Context) (dto.ThemeOutput, error)
	SetTheme(ctx context.Context, theme string) (dto.SetThemeOutput, error)
	ToggleTheme(ctx context.Context) (dto.SetThemeOutput, error)
	Tour(ctx context.Context) (dto.TourOutput, error)
	CompleteTour(ctx context.Context) (dto.TourOutput, error)
	ResetTour(ctx context.Context) (dto.TourOutput, error)
}
