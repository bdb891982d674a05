package in

import (
	"context"
	"fmt"
	"strings"

	sessiondto "studyplanner/internal/modules/session/dto"
	sessionin "studyplanner/internal/modules/session/port/in"
	"studyplanner/internal/platform/civil"
	"studyplanner/internal/platform/clock"
	apperrors "studyplanner/internal/platform/errors"
)

type CLIHandler struct {
	usecase sessionin.Usecase
	clock   clock.Clock
}

func NewCLIHandler(usecase sessionin.Usecase, clk clock.Clock) CLIHandler {
	return CLIHandler{usecase: usecase, clock: clk}
}

// ParseDate accepts YYYY-MM-DD, "today", "tomorrow" and "+N" (days from today).
func (h CLIHandler) ParseDate(value string) (civil.Date, error) {
	today := clock.Today(h.clock)
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "" || v == "today":
		return today, nil
	case v == "tomorrow":
		return today.AddDays(1), nil
	case strings.HasPrefix(v, "+"):
		var n int
		if _, err := fmt.Sscanf(v, "+%d", &n); err != nil || n < 0 {
			return civil.Date{}, fmt.Errorf("%w: invalid relative date %q", apperrors.ErrInvalidInput, value)
		}
		return today.AddDays(n), nil
	}
	d, err := civil.Parse(v)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return d, nil
}

func (h CLIHandler) Add(ctx context.Context, subject, date, at string, duration int, notes string, tags []string) (sessiondto.AddOutput, error) {
	d, err := h.ParseDate(date)
	if err != nil {
		return sessiondto.AddOutput{}, err
	}
	return h.usecase.AddSession(ctx, sessiondto.AddInput{Subject: subject, Date: d, Time: at, Duration: duration, Notes: notes, Tags: tags})
}

func (h CLIHandler) List(ctx context.Context, status, tag, query string) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx, sessiondto.ListFilter{Status: status, Tag: tag, Query: query})
}

func (h CLIHandler) Get(ctx context.Context, id string) (sessiondto.SessionOutput, error) {
	return h.usecase.GetSession(ctx, id)
}

func (h CLIHandler) Complete(ctx context.Context, id string) (sessiondto.CompleteOutput, error) {
	return h.usecase.CompleteSession(ctx, id)
}

func (h CLIHandler) Remove(ctx context.Context, id string) (sessiondto.RemoveOutput, error) {
	return h.usecase.RemoveSession(ctx, id)
}

func (h CLIHandler) Import(ctx context.Context, path, format string) (sessiondto.ImportOutput, error) {
	return h.usecase.ImportSessions(ctx, sessiondto.ImportInput{Path: path, Format: format})
}

func (h CLIHandler) Export(ctx context.Context, path, format, status, tag string) (sessiondto.ExportOutput, error) {
	return h.usecase.ExportSessions(ctx, sessiondto.ExportInput{Path: path, Format: format, Filter: sessiondto.ListFilter{Status: status, Tag: tag}})
}

func (h CLIHandler) Sample(ctx context.Context) (sessiondto.ImportOutput, error) {
	return h.usecase.LoadSample(ctx)
}

func (h CLIHandler) Tags(ctx context.Context) ([]string, error) {
	return h.usecase.Tags(ctx)
}
