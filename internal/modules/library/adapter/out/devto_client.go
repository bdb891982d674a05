package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
)

// maxPerPage is the largest page either remote API is asked for.
const maxPerPage = 30

type DevtoClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewDevtoClient(httpClient *http.Client, baseURL string) libraryout.Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DevtoClient{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *DevtoClient) Name() string { return "Dev.to" }

type devtoArticle struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	TagList     []string `json:"tag_list"`
	User        struct {
		Name string `json:"name"`
	} `json:"user"`
}

// Fetch lists recent articles tagged query.
func (c *DevtoClient) Fetch(ctx context.Context, query string, max int) ([]domain.Resource, error) {
	if strings.TrimSpace(query) == "" {
		query = "javascript"
	}
	params := url.Values{}
	params.Set("tag", query)
	params.Set("per_page", strconv.Itoa(perPage(max)))
	endpoint := c.baseURL + "/api/articles?" + params.Encode()

	var articles []devtoArticle
	if err := getJSON(ctx, c.httpClient, endpoint, nil, &articles); err != nil {
		return nil, fmt.Errorf("request articles: %w", err)
	}
	out := make([]domain.Resource, 0, len(articles))
	for _, a := range articles {
		tag := "articles"
		if len(a.TagList) > 0 {
			tag = a.TagList[0]
		}
		author := a.User.Name
		if author == "" {
			author = "Unknown"
		}
		out = append(out, domain.Resource{
			ID:          "devto-" + strconv.FormatInt(a.ID, 10),
			Title:       a.Title,
			URL:         a.URL,
			Source:      "Dev.to",
			Kind:        domain.KindArticle,
			Tags:        []string{tag, "tutorial"},
			Description: a.Description,
			Author:      author,
		})
	}
	return out, nil
}

func perPage(max int) int {
	if max <= 0 {
		max = 20
	}
	return min(maxPerPage, max)
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		req.Header[key] = values
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 5*1024*1024)).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
