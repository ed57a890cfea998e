package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nerview/nerview/pkg/analysis"
	"github.com/nerview/nerview/pkg/article"
	"github.com/nerview/nerview/pkg/models"
	"github.com/nerview/nerview/pkg/server/handlertools"
)

// Workspace is the data behind the single analysis page: the editor, any
// error message, and the results once a text has been analyzed.
type Workspace struct {
	Text          string
	Error         string
	Source        *article.Article
	View          *models.AnalysisView
	TotalEntities int
	RawResponse   template.HTML
	MaxTextLength int
}

func (ws *Workspace) HasResults() bool {
	return ws.View != nil && len(ws.View.Entities) > 0
}

// ArticleFetcher is satisfied by *article.Fetcher.
type ArticleFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*article.Article, error)
}

type Handlers struct {
	service       *analysis.Service
	fetcher       ArticleFetcher
	maxTextLength int
}

func NewHandlers(service *analysis.Service, fetcher ArticleFetcher, maxTextLength int) *Handlers {
	return &Handlers{
		service:       service,
		fetcher:       fetcher,
		maxTextLength: maxTextLength,
	}
}

func (h *Handlers) workspacePage(path string, ws *Workspace) *Page {
	ws.MaxTextLength = h.maxTextLength
	return NewPage(
		"Named Entity Recognition",
		"Paste text and instantly extract names, places, organizations, and more!",
		path,
		WorkspaceTemplates,
		ws,
	)
}

// userMessage is what the page shows for err. Analysis failures always get
// the same generic message.
func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrAnalysisFailed):
		return models.AnalysisFailedMessage
	case errors.Is(err, models.ErrBadRequest):
		return err.Error()
	case errors.Is(err, models.ErrNotFound):
		return "This analysis has expired. Paste the text again to re-analyze it."
	default:
		return "Something went wrong. Please try again."
	}
}

// IndexHandler renders the empty editor. ?sample=true pre-fills the sample text.
func (h *Handlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	ws := &Workspace{}
	if sample, _ := handlertools.BoolFromQuery(r, "sample"); sample {
		ws.Text = analysis.SampleText
	}
	h.workspacePage("", ws).Render(w, r)
}

// AnalyzeHandler analyzes the submitted form text. Full page submits are
// redirected to the analysis so a reload doesn't re-submit.
func (h *Handlers) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	text := r.PostFormValue("text")

	view, err := h.service.Analyze(r.Context(), text)
	if err != nil {
		log.Errorf("web analyze failed: %s", err)
		ws := &Workspace{Text: text, Error: userMessage(err)}
		h.workspacePage("", ws).WithStatus(handlertools.StatusFromError(err)).Render(w, r)
		return
	}

	path := "/analyses/" + view.UUID.String()
	if !isHTMXRequest(r) {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	h.renderView(w, r, path, view)
}

// AnalysisHandler renders a stored analysis with the ?selected entity text.
func (h *Handlers) AnalysisHandler(w http.ResponseWriter, r *http.Request) {
	analysisUUID, err := uuid.Parse(chi.URLParam(r, "analysisId"))
	if err != nil {
		ws := &Workspace{Error: "This analysis link is not valid. Paste the text again to analyze it."}
		h.workspacePage("", ws).WithStatus(http.StatusBadRequest).Render(w, r)
		return
	}

	view, err := h.service.View(r.Context(), analysisUUID, r.URL.Query().Get("selected"))
	if err != nil {
		ws := &Workspace{Error: userMessage(err)}
		h.workspacePage("", ws).WithStatus(handlertools.StatusFromError(err)).Render(w, r)
		return
	}

	h.renderView(w, r, r.URL.RequestURI(), view)
}

func (h *Handlers) renderView(
	w http.ResponseWriter,
	r *http.Request,
	path string,
	view *models.AnalysisView,
) {
	ws := &Workspace{
		Text:          view.Text,
		View:          view,
		TotalEntities: len(view.Entities),
	}

	raw, err := HighlightJSON(models.AnalyzeResponse{Entities: view.Entities, Counts: view.Counts})
	if err != nil {
		log.Warnf("failed to highlight raw response: %s", err)
	} else {
		ws.RawResponse = template.HTML(raw) //nolint:gosec // chroma escapes the source
	}

	h.workspacePage(path, ws).Render(w, r)
}

// FetchHandler fills the editor with the readable text of the page at ?url.
func (h *Handlers) FetchHandler(w http.ResponseWriter, r *http.Request) {
	rawURL := r.PostFormValue("url")

	a, err := h.fetcher.Fetch(r.Context(), rawURL)
	if err != nil {
		log.Errorf("failed to fetch article %q: %s", rawURL, err)
		ws := &Workspace{Error: "Failed to load the article. Check the URL and try again."}
		if errors.Is(err, models.ErrBadRequest) {
			ws.Error = err.Error()
		}
		h.workspacePage("", ws).WithStatus(handlertools.StatusFromError(err)).Render(w, r)
		return
	}

	ws := &Workspace{Text: a.Text, Source: a}
	if err := h.service.ValidateText(a.Text); err != nil {
		ws.Error = userMessage(err)
	}
	h.workspacePage("", ws).Render(w, r)
}
