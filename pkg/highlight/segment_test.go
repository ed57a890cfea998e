package highlight

import (
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerview/nerview/pkg/models"
)

func textSeg(content string) models.Segment {
	return models.Segment{Kind: models.SegmentKindText, Content: content}
}

func entitySeg(content, label string, selected bool) models.Segment {
	return models.Segment{
		Kind:     models.SegmentKindEntity,
		Content:  content,
		Label:    label,
		Selected: selected,
	}
}

func concat(segments []models.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Content)
	}
	return b.String()
}

func TestSegment(t *testing.T) {
	obama := models.Entity{Text: "Barack Obama", Label: "PER", Start: 0, End: 12}
	us := models.Entity{Text: "the United States", Label: "GPE", Start: 39, End: 56}
	fortyFourth := models.Entity{Text: "44th", Label: "ORDINAL", Start: 21, End: 25}
	sample := "Barack Obama was the 44th President of the United States."

	tests := []struct {
		name     string
		text     string
		entities []models.Entity
		selected string
		want     []models.Segment
	}{
		{
			name:     "leading entity",
			text:     "Barack Obama was President.",
			entities: []models.Entity{obama},
			want: []models.Segment{
				entitySeg("Barack Obama", "PER", false),
				textSeg(" was President."),
			},
		},
		{
			name: "no entities",
			text: "nothing to see here",
			want: []models.Segment{textSeg("nothing to see here")},
		},
		{
			name: "empty text",
			text: "",
			want: []models.Segment{},
		},
		{
			name:     "entity covers whole text",
			text:     "Barack Obama",
			entities: []models.Entity{obama},
			selected: "Barack Obama",
			want:     []models.Segment{entitySeg("Barack Obama", "PER", true)},
		},
		{
			name:     "unsorted spans",
			text:     sample,
			entities: []models.Entity{us, obama, fortyFourth},
			selected: "44th",
			want: []models.Segment{
				entitySeg("Barack Obama", "PER", false),
				textSeg(" was the "),
				entitySeg("44th", "ORDINAL", true),
				textSeg(" President of "),
				entitySeg("the United States", "GPE", false),
				textSeg("."),
			},
		},
		{
			name: "adjacent spans",
			text: "NewYork",
			entities: []models.Entity{
				{Text: "York", Label: "GPE", Start: 3, End: 7},
				{Text: "New", Label: "GPE", Start: 0, End: 3},
			},
			want: []models.Segment{
				entitySeg("New", "GPE", false),
				entitySeg("York", "GPE", false),
			},
		},
		{
			name:     "selection is case sensitive",
			text:     "Barack Obama",
			entities: []models.Entity{obama},
			selected: "barack obama",
			want:     []models.Segment{entitySeg("Barack Obama", "PER", false)},
		},
		{
			name: "zero-length span is skipped",
			text: "abc",
			entities: []models.Entity{
				{Text: "b", Label: "MISC", Start: 1, End: 1},
			},
			want: []models.Segment{textSeg("abc")},
		},
		{
			name: "zero-length span next to an entity",
			text: "New York",
			entities: []models.Entity{
				{Text: "New York", Label: "GPE", Start: 0, End: 8},
				{Text: "York", Label: "GPE", Start: 8, End: 8},
			},
			want: []models.Segment{entitySeg("New York", "GPE", false)},
		},
		{
			name:     "character offsets",
			text:     "Café in Zürich, Köln.",
			entities: []models.Entity{{Text: "Zürich", Label: "GPE", Start: 8, End: 14}},
			want: []models.Segment{
				textSeg("Café in "),
				entitySeg("Zürich", "GPE", false),
				textSeg(", Köln."),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Segment(tt.text, tt.entities, tt.selected)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, concat(got))
		})
	}
}

func TestSegmentDoesNotReorderInput(t *testing.T) {
	entities := []models.Entity{
		{Text: "b", Label: "X", Start: 2, End: 3},
		{Text: "a", Label: "X", Start: 0, End: 1},
	}
	_, err := Segment("a b", entities, "")
	require.NoError(t, err)
	assert.Equal(t, "b", entities[0].Text)
}

func TestSegmentInvalidSpans(t *testing.T) {
	tests := []struct {
		name     string
		entities []models.Entity
		target   error
	}{
		{
			name:     "end past text",
			entities: []models.Entity{{Text: "Obama", Label: "PER", Start: 7, End: 40}},
			target:   models.ErrInvalidSpan,
		},
		{
			name:     "negative start",
			entities: []models.Entity{{Text: "x", Label: "PER", Start: -1, End: 2}},
			target:   models.ErrInvalidSpan,
		},
		{
			name:     "inverted",
			entities: []models.Entity{{Text: "x", Label: "PER", Start: 5, End: 2}},
			target:   models.ErrInvalidSpan,
		},
		{
			name: "overlap",
			entities: []models.Entity{
				{Text: "Barack Obama", Label: "PER", Start: 0, End: 12},
				{Text: "Obama", Label: "PER", Start: 7, End: 12},
			},
			target: models.ErrOverlappingSpans,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := Segment("Barack Obama was President.", tt.entities, "")
			assert.Nil(t, segments)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Error(t, Validate("Barack Obama was President.", tt.entities))
		})
	}

	var overlap *OverlapError
	err := Validate("Barack Obama", []models.Entity{
		{Text: "Obama", Label: "PER", Start: 7, End: 12},
		{Text: "Barack Obama", Label: "PER", Start: 0, End: 12},
	})
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, "Barack Obama", overlap.First.Text)
	assert.Equal(t, "Obama", overlap.Second.Text)
}

// randomSpans picks non-overlapping spans over text, returned in random order.
func randomSpans(faker *gofakeit.Faker, text string) []models.Entity {
	runes := []rune(text)
	var spans []models.Entity
	cursor := 0
	for cursor < len(runes) {
		start := faker.IntRange(cursor, len(runes))
		end := faker.IntRange(start, len(runes))
		if end == start {
			break
		}
		spans = append(spans, models.Entity{
			Text:  string(runes[start:end]),
			Label: faker.RandomString([]string{"PER", "ORG", "GPE", "DATE"}),
			Start: start,
			End:   end,
		})
		cursor = end
	}
	faker.ShuffleAnySlice(spans)
	return spans
}

func TestSegmentReconstructsText(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		text := faker.Sentence(faker.IntRange(1, 20))
		spans := randomSpans(faker, text)

		segments, err := Segment(text, spans, "")
		require.NoError(t, err)
		require.Equal(t, text, concat(segments))

		entityCount := 0
		for j, s := range segments {
			assert.NotEmpty(t, s.Content, "segment %d of %q is empty", j, text)
			if s.IsEntity() {
				entityCount++
			} else if j > 0 {
				assert.True(t, segments[j-1].IsEntity(), "consecutive text segments in %q", text)
			}
		}
		assert.Equal(t, len(spans), entityCount)
	}
}
