package models

// Entity is a labeled span of analyzed text. Start and End are character
// (Unicode code point) offsets into the analyzed text, End exclusive.
type Entity struct {
	Text  string `json:"text"  validate:"required"`
	Label string `json:"label" validate:"required"`
	Start int    `json:"start" validate:"gte=0"`
	End   int    `json:"end"   validate:"gtefield=Start"`
}

// Counts maps an entity label to the number of entities with that label.
// It is reported by the analysis service and never recomputed.
type Counts map[string]int

type SegmentKind string

const (
	SegmentKindText   SegmentKind = "text"
	SegmentKindEntity SegmentKind = "entity"
)

// Segment is a contiguous run of rendered text, either plain or an entity.
type Segment struct {
	Kind     SegmentKind `json:"kind"`
	Content  string      `json:"content"`
	Label    string      `json:"label,omitempty"`
	Selected bool        `json:"selected,omitempty"`
}

func (s Segment) IsEntity() bool {
	return s.Kind == SegmentKindEntity
}

// EntityGroup holds the distinct entity texts seen for one label.
type EntityGroup struct {
	Label string   `json:"label"`
	Texts []string `json:"texts"`
}

// LabelCount is one entry of an ordered counts summary.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AnalyzeRequest is the body sent to the analysis service and accepted by
// the analyze API.
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
}

// AnalyzeResponse is the analysis service's reply.
type AnalyzeResponse struct {
	Entities []Entity `json:"entities" validate:"dive"`
	Counts   Counts   `json:"counts"`
}
