package out

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/sqlitedb"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type SQLiteResourceIndex struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteResourceIndex(ctx context.Context, db *sql.DB) (libraryout.ResourceIndex, error) {
	if err := sqlitedb.ApplyMigrations(ctx, db, migrationFS, "migrations"); err != nil {
		return nil, fmt.Errorf("migrate resource index: %w", err)
	}
	return &SQLiteResourceIndex{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *SQLiteResourceIndex) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM resource_tags`); err != nil {
		return fmt.Errorf("reset resource tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM resources`); err != nil {
		return fmt.Errorf("reset resources: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteResourceIndex) Upsert(ctx context.Context, resource domain.Resource) error {
	tags, err := json.Marshal(nonNil(resource.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	const stmt = `
INSERT INTO resources (id, kind, title, url, source, description, author, stats, youtube_id, tags, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  kind=excluded.kind,
  title=excluded.title,
  url=excluded.url,
  source=excluded.source,
  description=excluded.description,
  author=excluded.author,
  stats=excluded.stats,
  youtube_id=excluded.youtube_id,
  tags=excluded.tags,
  updated_at=excluded.updated_at;
`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	_, err = tx.ExecContext(ctx, stmt,
		resource.ID,
		string(resource.Kind),
		resource.Title,
		resource.URL,
		resource.Source,
		resource.Description,
		resource.Author,
		resource.Stats,
		resource.YouTubeID,
		string(tags),
		s.now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert resource: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM resource_tags WHERE resource_id = ?`, resource.ID); err != nil {
		return fmt.Errorf("clear resource tags: %w", err)
	}
	for _, tag := range resource.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO resource_tags (resource_id, tag) VALUES (?, ?)`, resource.ID, tag); err != nil {
			return fmt.Errorf("insert resource tag: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

const resourceColumns = `id, kind, title, url, source, description, author, stats, youtube_id, tags`

func (s *SQLiteResourceIndex) Get(ctx context.Context, id string) (domain.Resource, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id)
	resource, err := scanResource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Resource{}, fmt.Errorf("resource %s: %w", id, apperrors.ErrNotFound)
	}
	return resource, err
}

// Search matches query against title, source, description and tags. Results
// are ordered by title.
func (s *SQLiteResourceIndex) Search(ctx context.Context, query, tag string, kind domain.Kind, limit int) ([]domain.Resource, error) {
	var (
		where []string
		args  []any
	)
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		where = append(where, `lower(title || ' ' || source || ' ' || description || ' ' || tags) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q)+"%")
	}
	if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
		where = append(where, `EXISTS (SELECT 1 FROM resource_tags rt WHERE rt.resource_id = resources.id AND rt.tag = ?)`)
		args = append(args, t)
	}
	if kind != "" {
		where = append(where, `kind = ?`)
		args = append(args, string(kind))
	}
	stmt := `SELECT ` + resourceColumns + ` FROM resources`
	if len(where) > 0 {
		stmt += ` WHERE ` + strings.Join(where, ` AND `)
	}
	stmt += ` ORDER BY title COLLATE NOCASE, id`
	if limit > 0 {
		stmt += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}
	defer rows.Close()
	var out []domain.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return out, nil
}

func (s *SQLiteResourceIndex) Tags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tag FROM resource_tags ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResource(row scanner) (domain.Resource, error) {
	var (
		resource domain.Resource
		kind     string
		tags     string
	)
	err := row.Scan(
		&resource.ID,
		&kind,
		&resource.Title,
		&resource.URL,
		&resource.Source,
		&resource.Description,
		&resource.Author,
		&resource.Stats,
		&resource.YouTubeID,
		&tags,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Resource{}, err
		}
		return domain.Resource{}, fmt.Errorf("scan resource: %w", err)
	}
	resource.Kind = domain.Kind(kind)
	if err := json.Unmarshal([]byte(tags), &resource.Tags); err != nil {
		return domain.Resource{}, fmt.Errorf("decode tags of %s: %w", resource.ID, err)
	}
	return resource, nil
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
