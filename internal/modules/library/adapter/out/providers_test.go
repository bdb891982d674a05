package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	libraryout "studyplanner/internal/modules/library/adapter/out"
	"studyplanner/internal/modules/library/domain"
)

func TestDevtoClientMapsArticles(t *testing.T) {
	t.Parallel()
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 42, "title": "Go generics", "url": "https://dev.to/a/go", "description": "d", "tag_list": ["go", "beginners"], "user": {"name": "Ada"}},
			{"id": 7, "title": "Untagged", "url": "https://dev.to/a/u", "tag_list": [], "user": {}}
		]`))
	}))
	defer server.Close()

	client := libraryout.NewDevtoClient(server.Client(), server.URL)
	got, err := client.Fetch(context.Background(), "go", 50)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/api/articles" || !strings.Contains(gotQuery, "per_page=30") || !strings.Contains(gotQuery, "tag=go") {
		t.Fatalf("unexpected request %s?%s", gotPath, gotQuery)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(got))
	}
	first := got[0]
	if first.ID != "devto-42" || first.Source != "Dev.to" || first.Author != "Ada" || first.Kind != domain.KindArticle {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.Tags[0] != "go" || first.Tags[1] != "tutorial" {
		t.Fatalf("unexpected tags: %v", first.Tags)
	}
	if got[1].Tags[0] != "articles" || got[1].Author != "Unknown" {
		t.Fatalf("fallbacks not applied: %+v", got[1])
	}
}

func TestDevtoClientReportsHTTPErrors(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()
	_, err := libraryout.NewDevtoClient(server.Client(), server.URL).Fetch(context.Background(), "", 5)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGitHubClientSearchesAwesomeRepos(t *testing.T) {
	t.Parallel()
	var gotQ, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"items": [
			{"id": 1, "name": "awesome-go", "html_url": "https://github.com/avelino/awesome-go", "description": "", "stargazers_count": 120, "forks_count": 11, "owner": {"login": "avelino"}}
		]}`))
	}))
	defer server.Close()

	client := libraryout.NewGitHubClient(server.Client(), server.URL, "secret")
	got, err := client.Fetch(context.Background(), "go", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotQ != "go topic:awesome sort:stars" {
		t.Fatalf("unexpected query %q", gotQ)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("token not sent: %q", gotAuth)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 repo, got %d", len(got))
	}
	repo := got[0]
	if repo.ID != "github-1" || repo.Title != "awesome-go" || repo.Description != "No description" || repo.Author != "avelino" {
		t.Fatalf("unexpected mapping: %+v", repo)
	}
	if repo.Stats != "⭐ 120 | 🍴 11" {
		t.Fatalf("unexpected stats %q", repo.Stats)
	}
}

func TestFeedProviderParsesRSS(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Go Blog</title><link>https://go.dev/blog</link>
<item><title>Range functions</title><link>https://go.dev/blog/range-functions</link><guid>range-functions</guid><category>Go</category><description>Iterators</description></item>
<item><title>No link</title></item>
<item><title>Second</title><link>https://go.dev/blog/second</link></item>
</channel></rss>`))
	}))
	defer server.Close()

	got, err := libraryout.NewFeedProvider(server.Client()).Fetch(context.Background(), server.URL, 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected max to cap results at 1, got %d", len(got))
	}
	item := got[0]
	if item.Source != "Go Blog" || item.Kind != domain.KindFeed || item.ID != "feed-range-functions" {
		t.Fatalf("unexpected mapping: %+v", item)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "go" || item.Tags[1] != "articles" {
		t.Fatalf("unexpected tags: %v", item.Tags)
	}
}

func TestFeedProviderRequiresURL(t *testing.T) {
	t.Parallel()
	if _, err := libraryout.NewFeedProvider(nil).Fetch(context.Background(), " ", 5); err == nil {
		t.Fatalf("empty feed url should fail")
	}
}

func TestHTMLPreviewExtractsMetadata(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "Caf\xe9" is Latin-1 for Café.
		_, _ = w.Write([]byte("<html><head><title>Caf\xe9 Guide</title>" +
			`<meta property="og:description" content="Fallback description">` +
			`<meta property="og:image" content="/img/cover.png">` +
			"</head><body></body></html>"))
	}))
	defer server.Close()

	preview, err := libraryout.NewHTMLPreviewClient(server.Client()).Preview(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.Title != "Café Guide" {
		t.Fatalf("charset not decoded: %q", preview.Title)
	}
	if preview.Description != "Fallback description" {
		t.Fatalf("expected og:description fallback, got %q", preview.Description)
	}
	if preview.Image != server.URL+"/img/cover.png" {
		t.Fatalf("image not resolved: %q", preview.Image)
	}
}

func TestHTMLPreviewRejectsNonHTTP(t *testing.T) {
	t.Parallel()
	if _, err := libraryout.NewHTMLPreviewClient(nil).Preview(context.Background(), "file:///etc/passwd"); err == nil {
		t.Fatalf("non-http url should fail")
	}
}
