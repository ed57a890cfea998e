package highlight

import (
	"github.com/nerview/nerview/pkg/models"
)

// Render builds the display view of an analysis for the given selection.
func Render(analysis *models.Analysis, selected string) (*models.AnalysisView, error) {
	segments, err := Segment(analysis.Text, analysis.Entities, selected)
	if err != nil {
		return nil, err
	}

	groups := Group(analysis.Entities)

	return &models.AnalysisView{
		Analysis: analysis,
		Selected: selected,
		Segments: segments,
		Groups:   groups,
		Summary:  Summarize(groups, analysis.Counts),
	}, nil
}
