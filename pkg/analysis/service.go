// Package analysis runs texts through the entity analyzer and keeps the
// results around long enough to re-render them with a new selection.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nerview/nerview/internal"
	"github.com/nerview/nerview/pkg/highlight"
	"github.com/nerview/nerview/pkg/models"
)

var log = internal.GetLogger()

const SampleText = "Barack Obama was the 44th President of the United States."

type Service struct {
	analyzer      models.EntityAnalyzer
	store         models.AnalysisStore
	maxTextLength int
}

func NewService(appState *models.AppState) *Service {
	return &Service{
		analyzer:      appState.Analyzer,
		store:         appState.AnalysisStore,
		maxTextLength: appState.Config.Analysis.MaxTextLength,
	}
}

// ValidateText rejects blank texts, invalid UTF-8 and texts longer than the
// configured limit.
func (s *Service) ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewBadRequestError("text is required")
	}
	if !utf8.ValidString(text) {
		return models.NewBadRequestError("text is not valid UTF-8")
	}
	if s.maxTextLength > 0 && utf8.RuneCountInString(text) > s.maxTextLength {
		return models.NewBadRequestError(
			fmt.Sprintf("text is longer than %d characters", s.maxTextLength),
		)
	}
	return nil
}

// Analyze sends text to the analyzer, stores the result and returns it
// rendered with no selection.
func (s *Service) Analyze(ctx context.Context, text string) (*models.AnalysisView, error) {
	if err := s.ValidateText(text); err != nil {
		return nil, err
	}

	response, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		if !errors.Is(err, models.ErrAnalysisFailed) {
			err = models.NewAnalysisError(err)
		}
		return nil, err
	}

	analysis := &models.Analysis{
		Text:     text,
		Entities: response.Entities,
		Counts:   response.Counts,
	}

	view, err := highlight.Render(analysis, "")
	if err != nil {
		return nil, models.NewAnalysisError(err)
	}

	if err := s.store.Put(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	log.Debugf(
		"analysis %s: %d characters, %d entities",
		analysis.UUID, utf8.RuneCountInString(text), len(analysis.Entities),
	)

	return view, nil
}

// View re-renders a stored analysis with selected as the selected entity text.
func (s *Service) View(
	ctx context.Context,
	analysisUUID uuid.UUID,
	selected string,
) (*models.AnalysisView, error) {
	analysis, err := s.store.Get(ctx, analysisUUID)
	if err != nil {
		return nil, err
	}

	view, err := highlight.Render(analysis, selected)
	if err != nil {
		return nil, models.NewAnalysisError(err)
	}

	return view, nil
}

// Health reports the analyzer's liveness body, or nil when it is unreachable.
func (s *Service) Health(ctx context.Context) map[string]any {
	body, err := s.analyzer.Health(ctx)
	if err != nil {
		log.Warnf("analysis service health check failed: %v", err)
		return nil
	}
	return body
}
