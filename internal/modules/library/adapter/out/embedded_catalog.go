package out

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
	"studyplanner/internal/platform/slug"
)

//go:embed catalog/tutorials.json
var bundledCatalog []byte

type catalogFile struct {
	Tutorials []catalogEntry `json:"tutorials"`
	Channels  []catalogEntry `json:"channels"`
	Videos    []catalogEntry `json:"videos"`
}

type catalogEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	Channel     string   `json:"channel"`
	YouTubeID   string   `json:"youtubeId"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

type JSONCatalog struct {
	raw []byte
}

// NewEmbeddedCatalog serves the tutorials.json compiled into the binary.
func NewEmbeddedCatalog() libraryout.Catalog {
	return &JSONCatalog{raw: bundledCatalog}
}

// NewFileCatalog reads a catalog with the same layout from fsys.
func NewFileCatalog(fsys fs.FS, name string) (libraryout.Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return &JSONCatalog{raw: raw}, nil
}

func (c *JSONCatalog) Load(_ context.Context) ([]domain.Resource, error) {
	var file catalogFile
	if err := json.Unmarshal(c.raw, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make([]domain.Resource, 0, len(file.Tutorials)+len(file.Channels)+len(file.Videos))
	for _, entry := range file.Tutorials {
		out = append(out, entry.resource(domain.KindTutorial, entry.Source))
	}
	for _, entry := range file.Channels {
		out = append(out, entry.resource(domain.KindChannel, firstNonEmpty(entry.Source, "YouTube")))
	}
	for _, entry := range file.Videos {
		out = append(out, entry.resource(domain.KindVideo, firstNonEmpty(entry.Channel, entry.Source, "YouTube")))
	}
	for _, resource := range out {
		if err := resource.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", resource.Title, err)
		}
	}
	return out, nil
}

func (e catalogEntry) resource(kind domain.Kind, source string) domain.Resource {
	id := strings.TrimSpace(e.ID)
	switch {
	case id != "":
	case e.YouTubeID != "":
		id = "youtube-" + e.YouTubeID
	default:
		id = string(kind) + "-" + slug.Make(e.Title)
	}
	resource := domain.Resource{
		ID:          id,
		Title:       strings.TrimSpace(e.Title),
		URL:         strings.TrimSpace(e.URL),
		Source:      source,
		Kind:        kind,
		Tags:        e.Tags,
		Description: e.Description,
		YouTubeID:   e.YouTubeID,
	}
	if resource.URL == "" && resource.YouTubeID != "" {
		resource.URL = domain.WatchURL(resource.YouTubeID)
	}
	return resource
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
