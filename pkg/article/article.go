// Package article pulls readable text out of a web page so it can be analyzed.
package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/nerview/nerview/pkg/models"
)

// maxPageSize caps how much of a page is downloaded.
const maxPageSize = 5 << 20

type Article struct {
	Title    string
	Byline   string
	SiteName string
	Text     string
}

// Fetcher downloads pages and extracts their main text.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher(httpClient *http.Client) *Fetcher {
	return &Fetcher{httpClient: httpClient}
}

// Fetch downloads rawURL and returns its readable content. Only http and
// https URLs are accepted.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, models.NewBadRequestError(fmt.Sprintf("invalid article URL %q", rawURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, ErrForbiddenAddress) {
			return nil, models.NewBadRequestError(
				fmt.Sprintf("article URL %q points to a private or local address", rawURL),
			)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", parsedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: status %d", parsedURL, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", parsedURL, err)
	}

	article, err := readability.FromReader(bytes.NewReader(bodyBytes), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	return &Article{
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Text:     strings.TrimSpace(article.TextContent),
	}, nil
}
