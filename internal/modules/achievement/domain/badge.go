package domain

const (
	// DefaultDuration stands in for sessions saved without a duration.
	DefaultDuration = 30
	CenturyMinutes  = 6000
)

// Progress is the part of a session that badges look at.
type Progress struct {
	Level    int
	Duration int
}

type Snapshot struct {
	Sessions  []Progress
	TimerUses int
}

type Predicate func(Snapshot) bool

type Badge struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Predicate   Predicate
}

var definitions = []Badge{
	{ID: "first_session", Name: "First Step", Icon: "leaf", Description: "Complete your first session", Predicate: FirstSession},
	{ID: "five_sessions", Name: "On Fire", Icon: "fire", Description: "Complete 5 sessions", Predicate: FiveSessions},
	{ID: "ten_sessions", Name: "Dedicated", Icon: "dumbbell", Description: "Complete 10 sessions", Predicate: TenSessions},
	{ID: "level_two", Name: "Level Master", Icon: "chart-line", Description: "Reach level 2", Predicate: LevelTwo},
	{ID: "hundred_hours", Name: "Century", Icon: "trophy", Description: "100+ hours studied", Predicate: HundredHours},
	{ID: "speed_runner", Name: "Speed Runner", Icon: "bolt", Description: "Use timer for 5+ sessions", Predicate: SpeedRunner},
}

// Definitions returns the badges in display order.
func Definitions() []Badge {
	out := make([]Badge, len(definitions))
	copy(out, definitions)
	return out
}

func Lookup(id string) (Badge, bool) {
	for _, b := range definitions {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

func CompletedCount(s Snapshot) int {
	n := 0
	for _, p := range s.Sessions {
		if p.Level > 0 {
			n++
		}
	}
	return n
}

// StudiedMinutes sums the duration of completed sessions.
func StudiedMinutes(s Snapshot) int {
	total := 0
	for _, p := range s.Sessions {
		if p.Level <= 0 {
			continue
		}
		if p.Duration > 0 {
			total += p.Duration
		} else {
			total += DefaultDuration
		}
	}
	return total
}

func FirstSession(s Snapshot) bool { return CompletedCount(s) >= 1 }
func FiveSessions(s Snapshot) bool { return CompletedCount(s) >= 5 }
func TenSessions(s Snapshot) bool  { return CompletedCount(s) >= 10 }

func LevelTwo(s Snapshot) bool {
	for _, p := range s.Sessions {
		if p.Level >= 2 {
			return true
		}
	}
	return false
}

func HundredHours(s Snapshot) bool { return StudiedMinutes(s) >= CenturyMinutes }
func SpeedRunner(s Snapshot) bool  { return s.TimerUses >= 5 }
