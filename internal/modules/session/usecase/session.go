package usecase

import (
	"context"
	"fmt"
	"log"
	"slices"

	"studyplanner/internal/modules/session/domain"
	sessiondto "studyplanner/internal/modules/session/dto"
	sessionin "studyplanner/internal/modules/session/port/in"
	sessionout "studyplanner/internal/modules/session/port/out"
	"studyplanner/internal/modules/session/service"
	"studyplanner/internal/platform/activitylog"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/events"
	"studyplanner/internal/platform/notify"
)

type Interactor struct {
	svc       *service.SessionService
	repo      *service.Repository
	archive   sessionout.SessionArchive
	notes     sessionout.NoteExporter
	publisher sessionout.EventPublisher
	activity  sessionout.ActivityLog
	notifier  notify.Notifier
}

func NewInteractor(
	svc *service.SessionService,
	repo *service.Repository,
	archive sessionout.SessionArchive,
	notes sessionout.NoteExporter,
	publisher sessionout.EventPublisher,
	activity sessionout.ActivityLog,
	notifier notify.Notifier,
) sessionin.Usecase {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Interactor{svc: svc, repo: repo, archive: archive, notes: notes, publisher: publisher, activity: activity, notifier: notifier}
}

func (i *Interactor) Load(ctx context.Context) (sessiondto.LoadOutput, error) {
	count := i.repo.Load(ctx)
	i.publish(ctx, "load", nil)
	return sessiondto.LoadOutput{Count: count}, nil
}

func (i *Interactor) AddSession(ctx context.Context, input sessiondto.AddInput) (sessiondto.AddOutput, error) {
	session, err := i.svc.Build(input.Subject, input.Date, input.Time, input.Duration, input.Notes, input.Tags)
	if err != nil {
		return sessiondto.AddOutput{}, err
	}
	saved := i.repo.Add(ctx, session)
	i.record(activitylog.Event{Event: activitylog.EventSessionAdded, SessionID: session.ID, Subject: session.Subject, NextDate: session.Date.String()})
	i.publish(ctx, "add", []string{session.ID})
	if saved {
		i.notifier.Notify(notify.Success, "Session added successfully!")
	}
	return sessiondto.AddOutput{Session: toOutput(session), Saved: saved}, nil
}

func (i *Interactor) CompleteSession(ctx context.Context, id string) (sessiondto.CompleteOutput, error) {
	updated, found, saved := i.repo.Complete(ctx, id, i.svc.Today())
	if !found {
		return sessiondto.CompleteOutput{}, nil
	}
	i.record(activitylog.Event{
		Event:     activitylog.EventSessionCompleted,
		SessionID: updated.ID,
		Subject:   updated.Subject,
		Level:     updated.Level,
		NextDate:  updated.Date.String(),
	})
	i.publish(ctx, "complete", []string{updated.ID})
	i.notifier.Notify(notify.Success, "Session completed! Next review: "+updated.Date.String())
	return sessiondto.CompleteOutput{
		Session:      toOutput(updated),
		Changed:      true,
		IntervalDays: domain.IntervalDays(updated.Level),
		Saved:        saved,
	}, nil
}

func (i *Interactor) RemoveSession(ctx context.Context, id string) (sessiondto.RemoveOutput, error) {
	found, saved := i.repo.Remove(ctx, id)
	if !found {
		return sessiondto.RemoveOutput{ID: id}, nil
	}
	i.record(activitylog.Event{Event: activitylog.EventSessionRemoved, SessionID: id})
	i.publish(ctx, "remove", []string{id})
	i.notifier.Notify(notify.Info, "Session deleted")
	return sessiondto.RemoveOutput{ID: id, Changed: true, Saved: saved}, nil
}

func (i *Interactor) ImportSessions(ctx context.Context, input sessiondto.ImportInput) (sessiondto.ImportOutput, error) {
	if input.Path == "" {
		return sessiondto.ImportOutput{}, fmt.Errorf("%w: import path is required", apperrors.ErrInvalidInput)
	}
	if i.archive == nil {
		return sessiondto.ImportOutput{}, fmt.Errorf("session archive is not configured")
	}
	incoming, err := i.archive.Read(ctx, input.Path, input.Format)
	if err != nil {
		return sessiondto.ImportOutput{}, err
	}
	out := i.importSessions(ctx, incoming, "import")
	if out.Added > 0 {
		i.notifier.Notify(notify.Success, fmt.Sprintf("Imported %d sessions", out.Added))
	}
	return out, nil
}

func (i *Interactor) LoadSample(ctx context.Context) (sessiondto.ImportOutput, error) {
	out := i.importSessions(ctx, i.svc.Sample(), "sample")
	i.notifier.Notify(notify.Success, "Sample sessions loaded!")
	return out, nil
}

func (i *Interactor) importSessions(ctx context.Context, incoming []domain.Session, reason string) sessiondto.ImportOutput {
	added, saved := i.repo.Import(ctx, incoming)
	if len(added) > 0 {
		i.record(activitylog.Event{Event: activitylog.EventSessionsImported, Count: len(added), Data: map[string]any{"source": reason}})
		i.publish(ctx, reason, added)
	}
	return sessiondto.ImportOutput{Read: len(incoming), Added: len(added), Saved: saved}
}

func (i *Interactor) ExportSessions(ctx context.Context, input sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	if input.Path == "" {
		return sessiondto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	sessions, err := i.filtered(input.Filter)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	if input.Format == sessiondto.FormatMarkdown {
		if i.notes == nil {
			return sessiondto.ExportOutput{}, fmt.Errorf("note exporter is not configured")
		}
		paths, err := i.notes.Export(ctx, input.Path, sessions)
		if err != nil {
			return sessiondto.ExportOutput{}, err
		}
		return sessiondto.ExportOutput{Paths: paths, Count: len(sessions)}, nil
	}
	if i.archive == nil {
		return sessiondto.ExportOutput{}, fmt.Errorf("session archive is not configured")
	}
	if err := i.archive.Write(ctx, input.Path, input.Format, sessions); err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return sessiondto.ExportOutput{Paths: []string{input.Path}, Count: len(sessions)}, nil
}

func (i *Interactor) ListSessions(_ context.Context, filter sessiondto.ListFilter) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.filtered(filter)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) GetSession(_ context.Context, id string) (sessiondto.SessionOutput, error) {
	s, ok := i.repo.Find(id)
	if !ok {
		return sessiondto.SessionOutput{}, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	}
	return toOutput(s), nil
}

func (i *Interactor) Tags(context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var tags []string
	for _, s := range i.repo.Sessions() {
		for _, raw := range s.Tags {
			tag := domain.NormalizeTag(raw)
			if _, ok := seen[tag]; ok || tag == "" {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags, nil
}

func (i *Interactor) filtered(input sessiondto.ListFilter) ([]domain.Session, error) {
	status, ok := domain.ParseStatus(input.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown filter %q", apperrors.ErrInvalidInput, input.Status)
	}
	filter := domain.Filter{Status: status, Tag: domain.NormalizeTag(input.Tag), Query: input.Query}
	today := i.svc.Today()
	var out []domain.Session
	for _, s := range i.repo.Sessions() {
		if filter.Matches(s, today) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (i *Interactor) publish(ctx context.Context, reason string, ids []string) {
	if i.publisher == nil {
		return
	}
	i.publisher.Publish(ctx, events.Event{Topic: events.SessionsChanged, Payload: sessiondto.ChangedEvent{Reason: reason, IDs: ids}})
}

func (i *Interactor) record(event activitylog.Event) {
	if i.activity == nil {
		return
	}
	if err := i.activity.Append(event); err != nil {
		log.Printf("activity log: %v", err)
	}
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	c := s.Clone()
	return sessiondto.SessionOutput{
		ID:            c.ID,
		Subject:       c.Subject,
		Date:          c.Date,
		Time:          c.Time,
		Duration:      c.Duration,
		Notes:         c.Notes,
		Tags:          c.Tags,
		Level:         c.Level,
		CompletedDate: c.CompletedDate,
		CreatedAt:     c.CreatedAt,
	}
}
