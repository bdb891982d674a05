package activitylog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"studyplanner/internal/platform/activitylog"
)

func TestAppendStampsTimeAndReadsBack(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	logger, err := activitylog.NewLogger(filepath.Join(t.TempDir(), "nested", "activity.jsonl"), func() time.Time { return at })
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if err := logger.Append(activitylog.Event{Event: activitylog.EventSessionAdded, SessionID: "s-1", Subject: "Biology"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := logger.Append(activitylog.Event{Event: activitylog.EventSessionCompleted, SessionID: "s-1", Level: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].Time.Equal(at) || events[1].Level != 1 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestReadAllMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	logger, err := activitylog.NewLogger(filepath.Join(t.TempDir(), "activity.jsonl"), nil)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	events, err := logger.ReadAll()
	if err != nil || len(events) != 0 {
		t.Fatalf("expected empty log, got %v (%v)", events, err)
	}
}

func TestTailAndCorruptLine(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "activity.jsonl")
	logger, err := activitylog.NewLogger(path, nil)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	for i := 1; i <= 5; i++ {
		if err := logger.Append(activitylog.Event{Event: activitylog.EventTimerCompleted, Count: i}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	tail, err := logger.Tail(2)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(tail) != 2 || tail[0].Count != 4 || tail[1].Count != 5 {
		t.Fatalf("unexpected tail %+v", tail)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, _ = f.WriteString("{not json\n")
	_ = f.Close()
	if _, err := logger.ReadAll(); err == nil {
		t.Fatalf("corrupt line should fail to parse")
	}
}
