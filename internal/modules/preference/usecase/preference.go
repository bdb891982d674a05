package usecase

import (
	"context"
	"fmt"

	"studyplanner/internal/modules/preference/domain"
	"studyplanner/internal/modules/preference/dto"
	preferencein "studyplanner/internal/modules/preference/port/in"
	preferenceout "studyplanner/internal/modules/preference/port/out"
	apperrors "studyplanner/internal/platform/errors"
)

type Interactor struct {
	store  preferenceout.PreferenceStore
	system preferenceout.SystemTheme
}

func NewInteractor(store preferenceout.PreferenceStore, system preferenceout.SystemTheme) preferencein.Usecase {
	return &Interactor{store: store, system: system}
}

func (i *Interactor) Theme(ctx context.Context) (dto.ThemeOutput, error) {
	saved, ok := i.store.Theme(ctx)
	systemDark := false
	if !ok && i.system != nil {
		systemDark = i.system.Dark()
	}
	return dto.ThemeOutput{Theme: string(domain.Resolve(saved, systemDark)), Saved: ok}, nil
}

func (i *Interactor) SetTheme(ctx context.Context, value string) (dto.SetThemeOutput, error) {
	theme, err := domain.ParseTheme(value)
	if err != nil {
		return dto.SetThemeOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	saved := i.store.SetTheme(ctx, string(theme))
	return dto.SetThemeOutput{Theme: string(theme), Saved: saved}, nil
}

func (i *Interactor) ToggleTheme(ctx context.Context) (dto.SetThemeOutput, error) {
	current, err := i.Theme(ctx)
	if err != nil {
		return dto.SetThemeOutput{}, err
	}
	next := domain.Theme(current.Theme).Toggle()
	saved := i.store.SetTheme(ctx, string(next))
	return dto.SetThemeOutput{Theme: string(next), Saved: saved}, nil
}

func (i *Interactor) Tour(ctx context.Context) (dto.TourOutput, error) {
	return dto.TourOutput{Completed: i.store.TourCompleted(ctx)}, nil
}

func (i *Interactor) CompleteTour(ctx context.Context) (dto.TourOutput, error) {
	i.store.SetTourCompleted(ctx, true)
	return i.Tour(ctx)
}

func (i *Interactor) ResetTour(ctx context.Context) (dto.TourOutput, error) {
	i.store.SetTourCompleted(ctx, false)
	return i.Tour(ctx)
}
