package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"studyplanner/internal/modules/session/domain"
	sessionout "studyplanner/internal/modules/session/port/out"
	"studyplanner/internal/platform/markdown"
	"studyplanner/internal/platform/slug"
)

type MarkdownNoteExporter struct{}

func NewMarkdownNoteExporter() sessionout.NoteExporter {
	return MarkdownNoteExporter{}
}

type noteMeta struct {
	SchemaVersion int      `yaml:"schema_version"`
	ID            string   `yaml:"id"`
	Subject       string   `yaml:"subject"`
	Date          string   `yaml:"date"`
	Time          string   `yaml:"time,omitempty"`
	Duration      int      `yaml:"duration_minutes"`
	Level         int      `yaml:"level"`
	CompletedDate string   `yaml:"completed_date,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
}

// Export writes <dir>/<subject-slug>-<id prefix>.md for each session. Text
// the user added outside the generated block of an existing note is kept.
func (MarkdownNoteExporter) Export(_ context.Context, dir string, sessions []domain.Session) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create notes dir: %w", err)
	}
	paths := make([]string, 0, len(sessions))
	for _, s := range sessions {
		path := filepath.Join(dir, noteName(s))
		body := "# " + s.Subject + "\n"
		existing, err := os.ReadFile(path)
		switch {
		case err == nil:
			_, oldBody, splitErr := markdown.SplitFrontmatter(string(existing))
			if splitErr != nil {
				return paths, fmt.Errorf("read note %s: %w", path, splitErr)
			}
			body = strings.TrimPrefix(oldBody, "\n")
		case !errors.Is(err, fs.ErrNotExist):
			return paths, fmt.Errorf("read note %s: %w", path, err)
		}

		rendered, err := markdown.RenderFrontmatter(metaFor(s), markdown.ReplaceManagedBlock(body, summary(s)))
		if err != nil {
			return paths, err
		}
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return paths, fmt.Errorf("write note: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func noteName(s domain.Session) string {
	prefix := s.ID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%s-%s.md", slug.Make(s.Subject), slug.Make(prefix))
}

func metaFor(s domain.Session) noteMeta {
	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            s.ID,
		Subject:       s.Subject,
		Date:          s.Date.String(),
		Time:          s.Time,
		Duration:      s.Duration,
		Level:         s.Level,
		Tags:          s.Tags,
	}
	if s.CompletedDate != nil {
		meta.CompletedDate = s.CompletedDate.String()
	}
	return meta
}

func summary(s domain.Session) string {
	var b strings.Builder
	if s.Completed() {
		fmt.Fprintf(&b, "- Next review: %s\n", s.Date)
		fmt.Fprintf(&b, "- Level: %d\n", s.Level)
	} else {
		fmt.Fprintf(&b, "- Scheduled: %s %s\n", s.Date, s.Time)
	}
	fmt.Fprintf(&b, "- Duration: %d minutes\n", s.Duration)
	if s.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Notes)
	}
	return b.String()
}
