package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studyplanner/internal/modules/session/domain"
	sessionout "studyplanner/internal/modules/session/port/out"
	apperrors "studyplanner/internal/platform/errors"
)

type FileArchive struct{}

func NewFileArchive() sessionout.SessionArchive {
	return FileArchive{}
}

// FormatFromPath maps a file extension to an archive format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("%w: cannot infer format of %s", apperrors.ErrUnknownFormat, path)
	}
}

func (FileArchive) Read(_ context.Context, path, format string) ([]domain.Session, error) {
	format, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	sessions, err := Decode(format, raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return sessions, nil
}

func (FileArchive) Write(_ context.Context, path, format string, sessions []domain.Session) error {
	format, err := resolveFormat(path, format)
	if err != nil {
		return err
	}
	raw, err := Encode(format, sessions)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

func resolveFormat(path, format string) (string, error) {
	if format == "" {
		return FormatFromPath(path)
	}
	return strings.ToLower(format), nil
}
