package dto

type Progress struct {
	Level    int
	Duration int
}

type EvaluateInput struct {
	Sessions []Progress
}

type EvaluateOutput struct {
	Unlocked      []string
	NewlyUnlocked []string
}

type BadgeOutput struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Unlocked    bool
}

// UnlockedEvent is the payload of badges.changed.
type UnlockedEvent struct {
	IDs []string
}
