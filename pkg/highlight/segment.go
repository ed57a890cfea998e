// Package highlight turns an analyzed text and its entity spans into
// renderable segments, and groups entities for list display.
package highlight

import (
	"fmt"
	"sort"

	"github.com/nerview/nerview/pkg/models"
)

// SpanError reports an entity whose offsets fall outside the text or are inverted.
type SpanError struct {
	Entity     models.Entity
	TextLength int
}

func (e *SpanError) Error() string {
	return fmt.Sprintf(
		"entity %q (%s) has span [%d,%d) outside text of length %d",
		e.Entity.Text, e.Entity.Label, e.Entity.Start, e.Entity.End, e.TextLength,
	)
}

func (e *SpanError) Unwrap() error {
	return models.ErrInvalidSpan
}

// OverlapError reports two entities whose spans intersect.
type OverlapError struct {
	First  models.Entity
	Second models.Entity
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"entity %q [%d,%d) overlaps entity %q [%d,%d)",
		e.First.Text, e.First.Start, e.First.End,
		e.Second.Text, e.Second.Start, e.Second.End,
	)
}

func (e *OverlapError) Unwrap() error {
	return models.ErrOverlappingSpans
}

// sortedSpans returns a copy of entities ordered by start offset.
// Ties keep the service's order.
func sortedSpans(entities []models.Entity) []models.Entity {
	sorted := make([]models.Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

func validateSorted(textLength int, sorted []models.Entity) error {
	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > textLength {
			return &SpanError{Entity: e, TextLength: textLength}
		}
		if i > 0 && e.Start < sorted[i-1].End {
			return &OverlapError{First: sorted[i-1], Second: e}
		}
	}
	return nil
}

// Validate checks that every span lies within text and that no two spans overlap.
// Offsets are in characters, not bytes.
func Validate(text string, entities []models.Entity) error {
	return validateSorted(len([]rune(text)), sortedSpans(entities))
}

// Segment splits text into plain and entity segments in text order. The
// concatenated segment contents always equal text. An entity segment is
// marked selected when the entity's text equals selected exactly; an empty
// selected marks nothing. Zero-length spans are valid but produce no segment.
func Segment(text string, entities []models.Entity, selected string) ([]models.Segment, error) {
	runes := []rune(text)
	sorted := sortedSpans(entities)
	if err := validateSorted(len(runes), sorted); err != nil {
		return nil, err
	}

	segments := make([]models.Segment, 0, 2*len(sorted)+1)
	cursor := 0
	for _, e := range sorted {
		// nothing to highlight; the text around it is emitted as usual
		if e.Start == e.End {
			continue
		}
		if e.Start > cursor {
			segments = append(segments, models.Segment{
				Kind:    models.SegmentKindText,
				Content: string(runes[cursor:e.Start]),
			})
		}
		segments = append(segments, models.Segment{
			Kind:     models.SegmentKindEntity,
			Content:  string(runes[e.Start:e.End]),
			Label:    e.Label,
			Selected: selected != "" && e.Text == selected,
		})
		cursor = e.End
	}

	if cursor < len(runes) {
		segments = append(segments, models.Segment{
			Kind:    models.SegmentKindText,
			Content: string(runes[cursor:]),
		})
	}

	return segments, nil
}
