package out

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
)

type GitHubClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewGitHubClient searches repositories. token is optional and only raises
// the rate limit.
func NewGitHubClient(httpClient *http.Client, baseURL, token string) libraryout.Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GitHubClient{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/"), token: strings.TrimSpace(token)}
}

func (c *GitHubClient) Name() string { return "GitHub" }

type githubSearch struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// Fetch searches curated "awesome" repositories matching query, most starred first.
func (c *GitHubClient) Fetch(ctx context.Context, query string, max int) ([]domain.Resource, error) {
	if strings.TrimSpace(query) == "" {
		query = "awesome"
	}
	params := url.Values{}
	params.Set("q", query+" topic:awesome sort:stars")
	params.Set("per_page", strconv.Itoa(perPage(max)))
	endpoint := c.baseURL + "/search/repositories?" + params.Encode()

	header := http.Header{}
	header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	var payload githubSearch
	if err := getJSON(ctx, c.httpClient, endpoint, header, &payload); err != nil {
		return nil, fmt.Errorf("search repositories: %w", err)
	}
	out := make([]domain.Resource, 0, len(payload.Items))
	for _, r := range payload.Items {
		description := r.Description
		if description == "" {
			description = "No description"
		}
		author := r.Owner.Login
		if author == "" {
			author = "Unknown"
		}
		out = append(out, domain.Resource{
			ID:          "github-" + strconv.FormatInt(r.ID, 10),
			Title:       r.Name,
			URL:         r.HTMLURL,
			Source:      "GitHub",
			Kind:        domain.KindRepository,
			Tags:        []string{"github", "repository", "open-source"},
			Description: description,
			Author:      author,
			Stats:       fmt.Sprintf("⭐ %d | 🍴 %d", r.Stars, r.Forks),
		})
	}
	return out, nil
}
