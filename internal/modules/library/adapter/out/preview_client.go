package out

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
)

type HTMLPreviewClient struct {
	httpClient *http.Client
}

func NewHTMLPreviewClient(httpClient *http.Client) libraryout.PreviewFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTMLPreviewClient{httpClient: httpClient}
}

// Preview reads the page title, description and og:image of target.
func (c *HTMLPreviewClient) Preview(ctx context.Context, target string) (domain.Preview, error) {
	base, err := url.Parse(strings.TrimSpace(target))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return domain.Preview{}, fmt.Errorf("preview %q: not an http url", target)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return domain.Preview{}, err
	}
	req.Header.Set("Accept", "text/html")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Preview{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Preview{}, fmt.Errorf("network response not ok: %d", resp.StatusCode)
	}
	body, err := charset.NewReader(io.LimitReader(resp.Body, 2*1024*1024), resp.Header.Get("Content-Type"))
	if err != nil {
		return domain.Preview{}, fmt.Errorf("decode charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return domain.Preview{}, fmt.Errorf("parse html: %w", err)
	}

	preview := domain.Preview{
		URL:   base.String(),
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && strings.TrimSpace(desc) != "" {
		preview.Description = strings.TrimSpace(desc)
	} else if desc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		preview.Description = strings.TrimSpace(desc)
	}
	if img, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && strings.TrimSpace(img) != "" {
		preview.Image = resolve(base, strings.TrimSpace(img))
	}
	return preview, nil
}

func resolve(base *url.URL, ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
