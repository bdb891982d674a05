package dto

type ThemeOutput struct {
	Theme string
	// Saved is false when the theme comes from the terminal background.
	Saved bool
}

type SetThemeOutput struct {
	Theme string
	Saved bool
}

type TourOutput struct {
	Completed bool
}
