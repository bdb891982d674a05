package usecase_test

import (
	"context"
	"errors"
	"testing"

	preferenceadapter "studyplanner/internal/modules/preference/adapter/out"
	"studyplanner/internal/modules/preference/usecase"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/kvstore"
	"studyplanner/internal/platform/notify"
)

type fixedSystem bool

func (f fixedSystem) Dark() bool { return bool(f) }

func TestThemeFallsBackToSystemUntilSaved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := kvstore.NewMemoryStore(0)
	uc := usecase.NewInteractor(preferenceadapter.NewKVPreferenceStore(kvstore.NewGuarded(kv, notify.Discard{}, nil)), fixedSystem(true))

	got, err := uc.Theme(ctx)
	if err != nil || got.Theme != "dark" || got.Saved {
		t.Fatalf("expected system dark, got %+v %v", got, err)
	}
	toggled, err := uc.ToggleTheme(ctx)
	if err != nil || toggled.Theme != "light" || !toggled.Saved {
		t.Fatalf("toggle failed: %+v %v", toggled, err)
	}
	got, _ = uc.Theme(ctx)
	if got.Theme != "light" || !got.Saved {
		t.Fatalf("saved light should override system dark: %+v", got)
	}
	raw, err := kv.Get(ctx, kvstore.KeyTheme)
	if err != nil || raw != "light" {
		t.Fatalf("unexpected stored theme %q %v", raw, err)
	}
	if _, err := uc.SetTheme(ctx, "neon"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown theme should be invalid input, got %v", err)
	}
}

func TestTourFlag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := kvstore.NewMemoryStore(0)
	uc := usecase.NewInteractor(preferenceadapter.NewKVPreferenceStore(kvstore.NewGuarded(kv, notify.Discard{}, nil)), nil)
	if tour, _ := uc.Tour(ctx); tour.Completed {
		t.Fatalf("tour should start incomplete")
	}
	if tour, _ := uc.CompleteTour(ctx); !tour.Completed {
		t.Fatalf("tour should be completed")
	}
	if raw, _ := kv.Get(ctx, kvstore.KeyTourCompleted); raw != "true" {
		t.Fatalf("expected stored flag true, got %q", raw)
	}
	if tour, _ := uc.ResetTour(ctx); tour.Completed {
		t.Fatalf("reset should clear the flag")
	}
}
