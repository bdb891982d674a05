package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	sessionout "studyplanner/internal/modules/session/adapter/out"
	"studyplanner/internal/modules/session/domain"
	"studyplanner/internal/platform/civil"
	apperrors "studyplanner/internal/platform/errors"
)

func fixtures() []domain.Session {
	done := civil.MustParse("2026-02-01")
	return []domain.Session{
		{
			ID:        "s-open",
			Subject:   "Spanish, \"food\" words",
			Date:      civil.MustParse("2026-02-03"),
			Time:      "16:00",
			Duration:  60,
			Notes:     "line one\nline two",
			Tags:      []string{"spanish", "vocabulary"},
			CreatedAt: time.Date(2026, 1, 20, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:            "s-done",
			Subject:       "Biology",
			Date:          civil.MustParse("2026-02-05"),
			Duration:      45,
			Level:         2,
			CompletedDate: &done,
			CreatedAt:     time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestCodecsPreserveEveryField(t *testing.T) {
	t.Parallel()
	for _, format := range []string{"json", "csv", "yaml"} {
		raw, err := sessionout.Encode(format, fixtures())
		if err != nil {
			t.Fatalf("%s: encode: %v", format, err)
		}
		got, err := sessionout.Decode(format, raw)
		if err != nil {
			t.Fatalf("%s: decode: %v\n%s", format, err, raw)
		}
		want := fixtures()
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d sessions, got %d", format, len(want), len(got))
		}
		for i := range want {
			if !got[i].CreatedAt.Equal(want[i].CreatedAt) {
				t.Fatalf("%s: createdAt mismatch: %v vs %v", format, got[i].CreatedAt, want[i].CreatedAt)
			}
			got[i].CreatedAt, want[i].CreatedAt = time.Time{}, time.Time{}
			if !reflect.DeepEqual(got[i], want[i]) {
				t.Fatalf("%s: session %d mismatch:\n got %+v\nwant %+v", format, i, got[i], want[i])
			}
		}
	}
}

func TestDecodeKeepsTagsAsWritten(t *testing.T) {
	t.Parallel()
	csvRaw := "id,subject,date,duration,tags\ns-1,Cells,2026-02-03,30,Biology;biology\n"
	jsonRaw := `{"schema_version":1,"sessions":[{"id":"s-1","subject":"Cells","date":"2026-02-03","duration":30,"notes":"","tags":["Biology","biology"],"level":0,"completedDate":null,"createdAt":"2026-01-20T08:30:00Z"}]}`
	for format, raw := range map[string]string{"csv": csvRaw, "json": jsonRaw} {
		got, err := sessionout.Decode(format, []byte(raw))
		if err != nil {
			t.Fatalf("%s: decode: %v", format, err)
		}
		if len(got) != 1 || !reflect.DeepEqual(got[0].Tags, []string{"Biology", "biology"}) {
			t.Fatalf("%s: tags changed on decode: %+v", format, got)
		}
		again, err := sessionout.Encode(format, got)
		if err != nil {
			t.Fatalf("%s: encode: %v", format, err)
		}
		back, err := sessionout.Decode(format, again)
		if err != nil || !reflect.DeepEqual(back[0].Tags, got[0].Tags) {
			t.Fatalf("%s: tags did not round-trip: %v %+v", format, err, back)
		}
	}
}

func TestJSONEnvelopeShape(t *testing.T) {
	t.Parallel()
	raw, err := sessionout.EncodeJSON(fixtures()[:1])
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(raw)
	for _, fragment := range []string{`"schema_version":1`, `"completedDate":null`, `"date":"2026-02-03"`, `"createdAt":"2026-01-20T08:30:00Z"`} {
		if !strings.Contains(s, fragment) {
			t.Fatalf("expected %s in %s", fragment, s)
		}
	}
}

func TestDecodeRejectsUnknownFormatAndBadCSV(t *testing.T) {
	t.Parallel()
	if _, err := sessionout.Decode("xml", nil); !errors.Is(err, apperrors.ErrUnknownFormat) {
		t.Fatalf("expected unknown format, got %v", err)
	}
	if _, err := sessionout.DecodeCSV([]byte("subject,date\nx,2026-01-01\n")); !errors.Is(err, apperrors.ErrMalformedData) {
		t.Fatalf("expected missing id column error, got %v", err)
	}
	if _, err := sessionout.DecodeCSV([]byte("id,subject,date,duration\nx,Sub,2026-01-01,many\n")); !errors.Is(err, apperrors.ErrMalformedData) {
		t.Fatalf("expected bad duration error, got %v", err)
	}
}

func TestFileArchiveInfersFormat(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	archive := sessionout.NewFileArchive()
	path := filepath.Join(dir, "nested", "sessions.yml")
	if err := archive.Write(context.Background(), path, "", fixtures()); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := archive.Read(context.Background(), path, "")
	if err != nil || len(got) != 2 {
		t.Fatalf("read: %v (%d sessions)", err, len(got))
	}
	if _, err := archive.Read(context.Background(), filepath.Join(dir, "sessions.txt"), ""); !errors.Is(err, apperrors.ErrUnknownFormat) {
		t.Fatalf("expected unknown format, got %v", err)
	}
}

func TestMarkdownExportKeepsUserText(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	exporter := sessionout.NewMarkdownNoteExporter()
	sessions := fixtures()[1:]
	paths, err := exporter.Export(context.Background(), dir, sessions)
	if err != nil || len(paths) != 1 {
		t.Fatalf("export: %v %v", paths, err)
	}
	if filepath.Base(paths[0]) != "biology-s-done.md" {
		t.Fatalf("unexpected note name: %s", paths[0])
	}
	raw, _ := os.ReadFile(paths[0])
	if !strings.Contains(string(raw), "completed_date: \"2026-02-01\"") || !strings.Contains(string(raw), "- Level: 2") {
		t.Fatalf("unexpected note:\n%s", raw)
	}

	edited := strings.Replace(string(raw), "# Biology\n", "# Biology\n\nMy own summary.\n", 1)
	if err := os.WriteFile(paths[0], []byte(edited), 0o644); err != nil {
		t.Fatalf("edit note: %v", err)
	}
	sessions[0].Level = 3
	if _, err := exporter.Export(context.Background(), dir, sessions); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	raw, _ = os.ReadFile(paths[0])
	if !strings.Contains(string(raw), "My own summary.") || !strings.Contains(string(raw), "- Level: 3") || strings.Contains(string(raw), "- Level: 2") {
		t.Fatalf("re-export lost user text or kept stale block:\n%s", raw)
	}
}
