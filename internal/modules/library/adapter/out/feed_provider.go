package out

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
	"studyplanner/internal/platform/slug"
)

type FeedProvider struct {
	httpClient *http.Client
	parser     *gofeed.Parser
}

// NewFeedProvider reads RSS, Atom and JSON feeds. The query passed to
// Fetch is the feed URL.
func NewFeedProvider(httpClient *http.Client) libraryout.Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FeedProvider{httpClient: httpClient, parser: gofeed.NewParser()}
}

func (p *FeedProvider) Name() string { return "Feed" }

func (p *FeedProvider) Fetch(ctx context.Context, feedURL string, max int) ([]domain.Resource, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, fmt.Errorf("feed url is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(b))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("status=%d: %s", resp.StatusCode, msg)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, err
	}
	feed, err := p.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = feedURL
	}
	if max <= 0 {
		max = 20
	}
	out := make([]domain.Resource, 0, min(max, len(feed.Items)))
	for _, item := range feed.Items {
		if len(out) == max {
			break
		}
		link := strings.TrimSpace(item.Link)
		if link == "" || strings.TrimSpace(item.Title) == "" {
			continue
		}
		key := strings.TrimSpace(item.GUID)
		if key == "" {
			key = link
		}
		tags := make([]string, 0, len(item.Categories)+1)
		for _, category := range item.Categories {
			if c := strings.TrimSpace(category); c != "" {
				tags = append(tags, strings.ToLower(c))
			}
		}
		tags = append(tags, "articles")
		author := ""
		if item.Author != nil {
			author = strings.TrimSpace(item.Author.Name)
		}
		out = append(out, domain.Resource{
			ID:          "feed-" + slug.Make(key),
			Title:       strings.TrimSpace(item.Title),
			URL:         link,
			Source:      source,
			Kind:        domain.KindFeed,
			Tags:        tags,
			Description: strings.TrimSpace(item.Description),
			Author:      author,
		})
	}
	return out, nil
}
