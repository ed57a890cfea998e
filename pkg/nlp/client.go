// Package nlp talks to the entity analysis service.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nerview/nerview/config"
	"github.com/nerview/nerview/internal"
	"github.com/nerview/nerview/pkg/highlight"
	"github.com/nerview/nerview/pkg/models"
)

var log = internal.GetLogger()

var validate = validator.New()

// maxResponseSize caps how much of an upstream reply is read.
const maxResponseSize = 10 << 20

var _ models.EntityAnalyzer = &Client{}

// Client calls the analysis service's /analyze and /health endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.NLPConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: NewRetryableHTTPClient(cfg.RetryMax, cfg.Timeout),
	}
}

// NewClientWithHTTPClient is used by tests to inject a plain client.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Analyze sends text to the analysis service. Every failure is returned as a
// models.AnalysisError, including replies whose spans don't fit the text.
func (c *Client) Analyze(ctx context.Context, text string) (*models.AnalyzeResponse, error) {
	jsonBody, err := json.Marshal(models.AnalyzeRequest{Text: text})
	if err != nil {
		return nil, models.NewAnalysisError(err)
	}

	var response models.AnalyzeResponse
	if err := c.do(ctx, http.MethodPost, "/analyze", jsonBody, &response); err != nil {
		return nil, models.NewAnalysisError(err)
	}

	if err := validate.Struct(response); err != nil {
		return nil, models.NewAnalysisError(fmt.Errorf("invalid analyze response: %w", err))
	}

	if err := highlight.Validate(text, response.Entities); err != nil {
		return nil, models.NewAnalysisError(err)
	}

	if response.Entities == nil {
		response.Entities = []models.Entity{}
	}
	if response.Counts == nil {
		response.Counts = models.Counts{}
	}

	log.Debugf("nlp client received %d entities", len(response.Entities))

	return &response, nil
}

// Health calls the service's liveness probe and returns its decoded body.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var body map[string]any
	if err := c.do(ctx, http.MethodGet, "/health", nil, &body); err != nil {
		return nil, fmt.Errorf("nlp health check failed: %w", err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}
