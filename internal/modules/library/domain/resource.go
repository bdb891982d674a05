package domain

import (
	"fmt"
	"net/url"
	"strings"
)

type Kind string

const (
	KindTutorial   Kind = "tutorial"
	KindChannel    Kind = "channel"
	KindVideo      Kind = "video"
	KindArticle    Kind = "article"
	KindRepository Kind = "repository"
	KindFeed       Kind = "feed"
)

// DefaultScheduleMinutes is used when a resource is scheduled without a duration.
const DefaultScheduleMinutes = 30

type Resource struct {
	ID          string
	Title       string
	URL         string
	Source      string
	Kind        Kind
	Tags        []string
	Description string
	Author      string
	Stats       string
	YouTubeID   string
}

func (k Kind) Validate() error {
	switch k {
	case KindTutorial, KindChannel, KindVideo, KindArticle, KindRepository, KindFeed:
		return nil
	default:
		return fmt.Errorf("unsupported resource kind %q", string(k))
	}
}

func (r Resource) Validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.URL) == "" && r.YouTubeID == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

// Link is where the resource opens: the watch page for videos, URL otherwise.
func (r Resource) Link() string {
	if r.YouTubeID != "" {
		return WatchURL(r.YouTubeID)
	}
	return r.URL
}

func (r Resource) Icon() string {
	return IconForTags(r.Tags)
}

// Matches reports whether r carries tag (case-insensitive) and contains
// query in its title, source, tags or description. Empty arguments match.
func (r Resource) Matches(query, tag string) bool {
	if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
		found := false
		for _, t := range r.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	hay := strings.ToLower(r.Title + " " + r.Source + " " + strings.Join(r.Tags, " ") + " " + r.Description)
	return strings.Contains(hay, query)
}

func WatchURL(youtubeID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(youtubeID)
}

func ThumbnailURL(youtubeID string) string {
	return "https://img.youtube.com/vi/" + url.PathEscape(youtubeID) + "/hqdefault.jpg"
}

var tagIcons = map[string]string{
	"javascript":    "js-square",
	"js":            "js-square",
	"react":         "code-branch",
	"vue":           "code-branch",
	"node.js":       "server",
	"nodejs":        "server",
	"python":        "python",
	"tutorial":      "play",
	"courses":       "graduation-cap",
	"course":        "graduation-cap",
	"reference":     "book",
	"articles":      "newspaper",
	"article":       "newspaper",
	"fullstack":     "layer-group",
	"docker":        "cube",
	"kubernetes":    "cubes",
	"aws":           "cloud",
	"devops":        "cogs",
	"it":            "cogs",
	"cybersecurity": "shield-alt",
	"security":      "shield-alt",
	"design":        "palette",
	"css":           "paint-brush",
	"html":          "code",
	"database":      "database",
	"web":           "globe",
	"frontend":      "desktop",
	"backend":       "server",
	"cloud":         "cloud",
	"networking":    "network-wired",
	"projects":      "code",
	"csharp":        "hashtag",
	"gaming":        "gamepad",
	"testing":       "check-square",
	"performance":   "running",
	"computing":     "laptop-code",
}

// DefaultIcon is returned when no tag has a dedicated icon.
const DefaultIcon = "book-open"

// IconForTags returns the icon of the first tag that has one.
func IconForTags(tags []string) string {
	for _, tag := range tags {
		if icon, ok := tagIcons[strings.ToLower(strings.TrimSpace(tag))]; ok {
			return icon
		}
	}
	return DefaultIcon
}

// Preview is what a resource page says about itself.
type Preview struct {
	URL         string
	Title       string
	Description string
	Image       string
}

// WatchItem is one saved entry of the watchlist.
type WatchItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Thumb string `json:"thumb"`
}

// WatchItem keys videos by their YouTube id, everything else by id or URL.
func (r Resource) WatchItem() WatchItem {
	key := r.YouTubeID
	if key == "" {
		key = r.ID
	}
	if key == "" {
		key = r.URL
	}
	item := WatchItem{ID: key, Title: r.Title, URL: r.Link()}
	if r.YouTubeID != "" {
		item.Thumb = ThumbnailURL(r.YouTubeID)
	}
	return item
}

// AddWatchItem puts item first unless its id is already listed.
func AddWatchItem(list []WatchItem, item WatchItem) ([]WatchItem, bool) {
	for _, existing := range list {
		if existing.ID == item.ID {
			return list, false
		}
	}
	out := make([]WatchItem, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...), true
}

func RemoveWatchItem(list []WatchItem, id string) ([]WatchItem, bool) {
	out := make([]WatchItem, 0, len(list))
	removed := false
	for _, item := range list {
		if item.ID == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
