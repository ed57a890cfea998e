package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Analysis is the result of analyzing one text. It lives in memory only.
type Analysis struct {
	UUID      uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Entities  []Entity  `json:"entities"`
	Counts    Counts    `json:"counts"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisView is an Analysis rendered for display with a given selection.
type AnalysisView struct {
	*Analysis
	Selected string        `json:"selected,omitempty"`
	Segments []Segment     `json:"segments"`
	Groups   []EntityGroup `json:"groups"`
	Summary  []LabelCount  `json:"summary"`
}

// EntityAnalyzer extracts entities from text via the analysis service.
type EntityAnalyzer interface {
	Analyze(ctx context.Context, text string) (*AnalyzeResponse, error)
	Health(ctx context.Context) (map[string]any, error)
}

// AnalysisStore keeps recent analyses so pages can be re-rendered.
type AnalysisStore interface {
	Put(ctx context.Context, analysis *Analysis) error
	Get(ctx context.Context, analysisUUID uuid.UUID) (*Analysis, error)
	Count() int
}
