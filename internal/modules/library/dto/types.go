package dto

import "studyplanner/internal/platform/civil"

// Provider names accepted by FetchInput.
const (
	ProviderDevto  = "devto"
	ProviderGitHub = "github"
	ProviderFeed   = "feed"
)

type ResourceOutput struct {
	ID          string
	Title       string
	URL         string
	Source      string
	Kind        string
	Tags        []string
	Description string
	Author      string
	Stats       string
	Icon        string
	Thumbnail   string
}

type SearchInput struct {
	Query string
	Tag   string
	Kind  string
	Limit int
}

type ReindexOutput struct {
	Count int
}

// FetchInput asks a provider for resources. Query is a tag for Dev.to, a
// search term for GitHub and a feed URL for feeds.
type FetchInput struct {
	Provider string
	Query    string
	Max      int
}

type FetchOutput struct {
	Resources []ResourceOutput
	Indexed   int
}

type PreviewOutput struct {
	URL         string
	Title       string
	Description string
	Image       string
}

type ScheduleInput struct {
	ResourceID string
	Date       civil.Date
	Time       string
	Duration   int
}

type ScheduleOutput struct {
	SessionID string
	Subject   string
	Date      civil.Date
	Saved     bool
}

type WatchItemOutput struct {
	ID    string
	Title string
	URL   string
	Thumb string
}

type WatchlistOutput struct {
	Items   []WatchItemOutput
	Changed bool
	Saved   bool
}
