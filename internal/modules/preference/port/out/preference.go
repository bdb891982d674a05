package out

import "context"

type PreferenceStore interface {
	Theme(ctx context.Context) (string, bool)
	SetTheme(ctx context.Context, theme string) bool
	TourCompleted(ctx context.Context) bool
	SetTourCompleted(ctx context.Context, completed bool) bool
}

// SystemTheme reports the surrounding terminal's preference.
type SystemTheme interface {
	Dark() bool
}
