package out

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"studyplanner/internal/modules/session/domain"
	"studyplanner/internal/platform/civil"
	apperrors "studyplanner/internal/platform/errors"
)

// record is the persisted and exported shape of a session.
type record struct {
	ID            string      `json:"id" yaml:"id"`
	Subject       string      `json:"subject" yaml:"subject"`
	Date          civil.Date  `json:"date" yaml:"date"`
	Time          string      `json:"time,omitempty" yaml:"time,omitempty"`
	Duration      int         `json:"duration" yaml:"duration"`
	Notes         string      `json:"notes" yaml:"notes"`
	Tags          []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Level         int         `json:"level" yaml:"level"`
	CompletedDate *civil.Date `json:"completedDate" yaml:"completedDate"`
	CreatedAt     time.Time   `json:"createdAt" yaml:"createdAt"`
}

type envelope struct {
	SchemaVersion int      `json:"schema_version" yaml:"schema_version"`
	Sessions      []record `json:"sessions" yaml:"sessions"`
}

var csvHeader = []string{"id", "subject", "date", "time", "duration", "notes", "tags", "level", "completedDate", "createdAt"}

func toRecord(s domain.Session) record {
	c := s.Clone()
	return record{
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

func (r record) session() domain.Session {
	return domain.Session{
		ID:            r.ID,
		Subject:       r.Subject,
		Date:          r.Date,
		Time:          r.Time,
		Duration:      r.Duration,
		Notes:         r.Notes,
		Tags:          slices.Clone(r.Tags),
		Level:         r.Level,
		CompletedDate: r.CompletedDate,
		CreatedAt:     r.CreatedAt,
	}
}

func fromRecords(records []record) ([]domain.Session, error) {
	sessions := make([]domain.Session, 0, len(records))
	for _, r := range records {
		s := r.session()
		if err := domain.ValidateStored(s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func toEnvelope(sessions []domain.Session) envelope {
	env := envelope{SchemaVersion: domain.SchemaVersion, Sessions: make([]record, 0, len(sessions))}
	for _, s := range sessions {
		env.Sessions = append(env.Sessions, toRecord(s))
	}
	return env
}

func EncodeJSON(sessions []domain.Session) ([]byte, error) {
	raw, err := json.Marshal(toEnvelope(sessions))
	if err != nil {
		return nil, fmt.Errorf("encode sessions: %w", err)
	}
	return raw, nil
}

// DecodeJSON accepts the versioned envelope and the legacy bare array.
func DecodeJSON(raw []byte) ([]domain.Session, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty session data", apperrors.ErrMalformedData)
	}
	var records []record
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedData, err)
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedData, err)
		}
		if env.SchemaVersion != domain.SchemaVersion {
			return nil, fmt.Errorf("%w: unsupported schema version %d", apperrors.ErrMalformedData, env.SchemaVersion)
		}
		records = env.Sessions
	default:
		return nil, fmt.Errorf("%w: unexpected session data", apperrors.ErrMalformedData)
	}
	return fromRecords(records)
}

func EncodeYAML(sessions []domain.Session) ([]byte, error) {
	raw, err := yaml.Marshal(toEnvelope(sessions))
	if err != nil {
		return nil, fmt.Errorf("encode sessions: %w", err)
	}
	return raw, nil
}

func DecodeYAML(raw []byte) ([]domain.Session, error) {
	var env envelope
	if err := yaml.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedData, err)
	}
	if env.SchemaVersion != domain.SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", apperrors.ErrMalformedData, env.SchemaVersion)
	}
	return fromRecords(env.Sessions)
}

// EncodeCSV writes one row per session; tags are joined with ";".
func EncodeCSV(sessions []domain.Session) ([]byte, error) {
	buf := bytes.Buffer{}
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	for _, s := range sessions {
		completed := ""
		if s.CompletedDate != nil {
			completed = s.CompletedDate.String()
		}
		row := []string{
			s.ID,
			s.Subject,
			s.Date.String(),
			s.Time,
			strconv.Itoa(s.Duration),
			s.Notes,
			strings.Join(s.Tags, ";"),
			strconv.Itoa(s.Level),
			completed,
			s.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encode csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeCSV(raw []byte) ([]domain.Session, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: csv header: %v", apperrors.ErrMalformedData, err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"id", "subject", "date"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: csv missing column %s", apperrors.ErrMalformedData, required)
		}
	}

	var records []record
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %v", apperrors.ErrMalformedData, line, err)
		}
		rec, err := csvRecord(columns, row)
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %v", apperrors.ErrMalformedData, line, err)
		}
		records = append(records, rec)
	}
	return fromRecords(records)
}

func csvRecord(columns map[string]int, row []string) (record, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}
	rec := record{ID: field("id"), Subject: field("subject"), Time: field("time"), Notes: field("notes")}
	var err error
	if rec.Date, err = civil.Parse(field("date")); err != nil {
		return record{}, err
	}
	if v := field("duration"); v != "" {
		if rec.Duration, err = strconv.Atoi(v); err != nil {
			return record{}, fmt.Errorf("duration: %w", err)
		}
	}
	if v := field("level"); v != "" {
		if rec.Level, err = strconv.Atoi(v); err != nil {
			return record{}, fmt.Errorf("level: %w", err)
		}
	}
	if v := field("tags"); v != "" {
		rec.Tags = strings.Split(v, ";")
	}
	if v := field("completedDate"); v != "" {
		d, err := civil.Parse(v)
		if err != nil {
			return record{}, err
		}
		rec.CompletedDate = &d
	}
	if v := field("createdAt"); v != "" {
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, v); err != nil {
			return record{}, fmt.Errorf("createdAt: %w", err)
		}
	}
	return rec, nil
}

// Encode dispatches on format (json, csv, yaml).
func Encode(format string, sessions []domain.Session) ([]byte, error) {
	switch format {
	case "json":
		return EncodeJSON(sessions)
	case "csv":
		return EncodeCSV(sessions)
	case "yaml":
		return EncodeYAML(sessions)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormat, format)
	}
}

func Decode(format string, raw []byte) ([]domain.Session, error) {
	switch format {
	case "json":
		return DecodeJSON(raw)
	case "csv":
		return DecodeCSV(raw)
	case "yaml":
		return DecodeYAML(raw)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormat, format)
	}
}
