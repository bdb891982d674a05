package service

import (
	"strings"

	"studyplanner/internal/modules/session/domain"
	"studyplanner/internal/platform/civil"
	"studyplanner/internal/platform/clock"
	"studyplanner/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewSessionService(clock clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clock, idGen: idGen}
}

func (s *SessionService) Today() civil.Date {
	return clock.Today(s.clock)
}

// Build validates user input and returns a new, not yet completed session.
func (s *SessionService) Build(subject string, date civil.Date, at string, duration int, notes string, tags []string) (domain.Session, error) {
	session := domain.Session{
		Subject:  strings.TrimSpace(subject),
		Date:     date,
		Time:     strings.TrimSpace(at),
		Duration: duration,
		Notes:    strings.TrimSpace(notes),
		Tags:     domain.NormalizeTags(tags),
	}
	if err := domain.ValidateNew(session, s.Today()); err != nil {
		return domain.Session{}, err
	}
	session.ID = s.idGen.New()
	session.CreatedAt = s.clock.Now()
	return session, nil
}

// Sample returns the two starter sessions offered to new users.
func (s *SessionService) Sample() []domain.Session {
	today := s.Today()
	now := s.clock.Now()
	return []domain.Session{
		{
			ID:        s.idGen.New(),
			Subject:   "Biology - Chapter 4: Cells",
			Date:      today,
			Time:      "18:00",
			Duration:  45,
			Notes:     "Focus on mitochondria and cell structure",
			Tags:      []string{"biology"},
			CreatedAt: now,
		},
		{
			ID:        s.idGen.New(),
			Subject:   "Spanish Vocabulary - Food",
			Date:      today.AddDays(1),
			Time:      "16:00",
			Duration:  60,
			Notes:     "Learn 20 new food-related words",
			Tags:      []string{"spanish", "vocabulary"},
			CreatedAt: now,
		},
	}
}
