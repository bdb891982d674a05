// Package activitylog appends study activity as JSON lines to activity.jsonl.
package activitylog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event names.
const (
	EventSessionAdded     = "session_added"
	EventSessionCompleted = "session_completed"
	EventSessionRemoved   = "session_removed"
	EventSessionsImported = "sessions_imported"
	EventBadgeUnlocked    = "badge_unlocked"
	EventTimerCompleted   = "timer_completed"
)

// Event is a single line of the activity log.
type Event struct {
	Time      time.Time      `json:"time"`
	Event     string         `json:"event"`
	SessionID string         `json:"session,omitempty"`
	Subject   string         `json:"subject,omitempty"`
	Level     int            `json:"level,omitempty"`
	NextDate  string         `json:"next_date,omitempty"`
	BadgeID   string         `json:"badge,omitempty"`
	Count     int            `json:"count,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Logger writes append-only JSONL events to a file.
type Logger struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewLogger creates a Logger writing to path, creating its directory.
// An existing log is never truncated.
func NewLogger(path string, now func() time.Time) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create activity log directory: %w", err)
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Logger{path: path, now: now}, nil
}

func (l *Logger) Path() string { return l.path }

// Append writes one event. A zero Time is stamped with the logger's clock.
func (l *Logger) Append(event Event) error {
	if event.Time.IsZero() {
		event.Time = l.now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write activity event: %w", err)
	}
	return nil
}

// ReadAll parses every event. A missing file yields an empty slice.
func (l *Logger) ReadAll() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	var out []Event
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse activity line %d: %w", lineNum, err)
		}
		out = append(out, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read activity log: %w", err)
	}
	return out, nil
}

// Tail returns the last n events, oldest first.
func (l *Logger) Tail(n int) ([]Event, error) {
	all, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(all) {
		return all, nil
	}
	return all[len(all)-n:], nil
}
