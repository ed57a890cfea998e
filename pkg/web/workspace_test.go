package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerview/nerview/config"
	"github.com/nerview/nerview/pkg/analysis"
	"github.com/nerview/nerview/pkg/article"
	"github.com/nerview/nerview/pkg/models"
	"github.com/nerview/nerview/pkg/store"
)

type fakeAnalyzer struct {
	response *models.AnalyzeResponse
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (*models.AnalyzeResponse, error) {
	return f.response, f.err
}

func (f *fakeAnalyzer) Health(_ context.Context) (map[string]any, error) {
	return map[string]any{"status": "ok"}, nil
}

type fakeFetcher struct {
	article *article.Article
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (*article.Article, error) {
	return f.article, f.err
}

var obamaResponse = &models.AnalyzeResponse{
	Entities: []models.Entity{
		{Text: "Barack Obama", Label: "PER", Start: 0, End: 12},
		{Text: "United States", Label: "GPE", Start: 43, End: 56},
	},
	Counts: models.Counts{"PER": 1, "GPE": 1},
}

func newTestRouter(t *testing.T, analyzer models.EntityAnalyzer, fetcher ArticleFetcher) *chi.Mux {
	t.Helper()
	cfg := config.NewDefaultConfig()
	appState := &models.AppState{
		Analyzer:      analyzer,
		AnalysisStore: store.NewMemoryStore(&config.StoreConfig{MaxAnalyses: 10, TTL: time.Minute}),
		Config:        cfg,
	}
	h := NewHandlers(analysis.NewService(appState), fetcher, cfg.Analysis.MaxTextLength)

	router := chi.NewRouter()
	router.Get("/", h.IndexHandler)
	router.Post("/analyze", h.AnalyzeHandler)
	router.Get("/analyses/{analysisId}", h.AnalysisHandler)
	router.Post("/fetch", h.FetchHandler)
	return router
}

func postForm(router http.Handler, path string, values url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestIndexHandler(t *testing.T) {
	router := newTestRouter(t, &fakeAnalyzer{}, &fakeFetcher{})

	res := get(router, "/")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Analyze Text")
	assert.Contains(t, body, "Analyzing...")
	assert.Contains(t, body, `hx-disabled-elt="find button[type='submit']"`)
	assert.Contains(t, body, "to get started!")
	assert.NotContains(t, body, analysis.SampleText)

	res = get(router, "/?sample=true")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), analysis.SampleText)
}

func TestAnalyzeHandler(t *testing.T) {
	router := newTestRouter(t, &fakeAnalyzer{response: obamaResponse}, &fakeFetcher{})
	form := url.Values{"text": {analysis.SampleText}}

	t.Run("full page redirects to the analysis", func(t *testing.T) {
		res := postForm(router, "/analyze", form, false)
		require.Equal(t, http.StatusSeeOther, res.Code)

		location := res.Header().Get("Location")
		require.True(t, strings.HasPrefix(location, "/analyses/"))

		page := get(router, location)
		require.Equal(t, http.StatusOK, page.Code)
		body := page.Body.String()
		assert.Contains(t, body, `<mark class="entity ent-person" title="PER">Barack Obama</mark>`)
		assert.Contains(t, body, "<span> was the 44th President of the </span>")
		assert.Contains(t, body, "People: 1")
		assert.Contains(t, body, "Places (1)")
		assert.Contains(t, body, "raw-response")
		assert.NotContains(t, body, "to get started!")
	})

	t.Run("htmx renders the results partial", func(t *testing.T) {
		res := postForm(router, "/analyze", form, true)
		require.Equal(t, http.StatusOK, res.Code)
		assert.NotContains(t, res.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, res.Body.String(), "Detected Entities")
		assert.True(t, strings.HasPrefix(res.Header().Get("HX-Push-Url"), "/analyses/"))
	})

	t.Run("blank text", func(t *testing.T) {
		res := postForm(router, "/analyze", url.Values{"text": {"   "}}, false)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Contains(t, res.Body.String(), "text is required")
	})
}

func TestAnalyzeHandlerFailure(t *testing.T) {
	router := newTestRouter(
		t,
		&fakeAnalyzer{err: errors.New("connection refused")},
		&fakeFetcher{},
	)

	res := postForm(router, "/analyze", url.Values{"text": {"some text"}}, false)
	assert.Equal(t, http.StatusBadGateway, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Failed to analyze text. Make sure the analysis service is running.")
	assert.NotContains(t, body, "connection refused")
	assert.Contains(t, body, "some text", "the editor keeps the submitted text")

	res = postForm(router, "/analyze", url.Values{"text": {"some text"}}, true)
	assert.Equal(t, http.StatusOK, res.Code, "htmx only swaps 2xx responses")
	assert.Contains(t, res.Body.String(), models.AnalysisFailedMessage)
}

func TestAnalyzeHandlerNoEntities(t *testing.T) {
	router := newTestRouter(
		t,
		&fakeAnalyzer{response: &models.AnalyzeResponse{Entities: []models.Entity{}, Counts: models.Counts{}}},
		&fakeFetcher{},
	)

	res := postForm(router, "/analyze", url.Values{"text": {"nothing here"}}, true)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "to get started!")
}

func TestAnalysisHandlerSelection(t *testing.T) {
	router := newTestRouter(t, &fakeAnalyzer{response: obamaResponse}, &fakeFetcher{})

	location := postForm(router, "/analyze", url.Values{"text": {analysis.SampleText}}, false).
		Header().Get("Location")

	res := get(router, location+"?selected=Barack+Obama")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, `<mark class="entity ent-person is-selected" title="PER">Barack Obama</mark>`)
	assert.Contains(t, body, `<mark class="entity ent-loc" title="GPE">United States</mark>`)
	// the selected entry links back to the unselected view
	assert.Contains(t, body, `href="`+location+`"`)
}

func TestAnalysisHandlerExpired(t *testing.T) {
	router := newTestRouter(t, &fakeAnalyzer{}, &fakeFetcher{})

	res := get(router, "/analyses/7a0f1d9c-2e0e-4cd4-a4a6-3c4f0e0d8f11")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "This analysis has expired.")

	res = get(router, "/analyses/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "text/html; charset=utf-8", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Body.String(), "This analysis link is not valid.")
	assert.Contains(t, res.Body.String(), "<!DOCTYPE html>")
}

func TestFetchHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := newTestRouter(t, &fakeAnalyzer{}, &fakeFetcher{article: &article.Article{
			Title:    "Election night",
			SiteName: "Example News",
			Text:     "Barack Obama won the election.",
		}})

		res := postForm(router, "/fetch", url.Values{"url": {"https://example.com/a"}}, true)
		require.Equal(t, http.StatusOK, res.Code)
		body := res.Body.String()
		assert.Contains(t, body, "Barack Obama won the election.")
		assert.Contains(t, body, "Election night")
		assert.Contains(t, body, "(Example News)")
	})

	t.Run("bad url", func(t *testing.T) {
		router := newTestRouter(t, &fakeAnalyzer{}, &fakeFetcher{
			err: models.NewBadRequestError("url must use http or https"),
		})

		res := postForm(router, "/fetch", url.Values{"url": {"ftp://example.com"}}, false)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Contains(t, res.Body.String(), "url must use http or https")
	})

	t.Run("upstream failure", func(t *testing.T) {
		router := newTestRouter(t, &fakeAnalyzer{}, &fakeFetcher{err: errors.New("dial tcp: timeout")})

		res := postForm(router, "/fetch", url.Values{"url": {"https://example.com"}}, false)
		assert.Equal(t, http.StatusInternalServerError, res.Code)
		assert.Contains(t, res.Body.String(), "Failed to load the article.")
	})
}
