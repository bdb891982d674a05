package out

import (
	"context"

	"studyplanner/internal/modules/session/domain"
	"studyplanner/internal/platform/activitylog"
	"studyplanner/internal/platform/events"
)

// SessionStore persists the whole collection. Load returns an empty slice
// when nothing was saved yet and an error wrapping ErrMalformedData when the
// stored blob cannot be trusted.
type SessionStore interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
}

// SessionArchive moves sessions in and out of files (json, csv, yaml).
type SessionArchive interface {
	Read(ctx context.Context, path, format string) ([]domain.Session, error)
	Write(ctx context.Context, path, format string, sessions []domain.Session) error
}

// NoteExporter writes one markdown note per session under dir.
type NoteExporter interface {
	Export(ctx context.Context, dir string, sessions []domain.Session) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type ActivityLog interface {
	Append(event activitylog.Event) error
}
