package highlight

import (
	"sort"

	"github.com/nerview/nerview/pkg/models"
)

// Groups is an ordered label -> distinct texts mapping.
type Groups []models.EntityGroup

// Get returns the texts recorded for label, or nil.
func (g Groups) Get(label string) []string {
	for _, group := range g {
		if group.Label == label {
			return group.Texts
		}
	}
	return nil
}

// Group collects entity texts per label. Labels and texts keep the order
// in which they first appear; repeated texts under a label collapse.
func Group(entities []models.Entity) Groups {
	groups := Groups{}
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})

	for _, e := range entities {
		i, ok := index[e.Label]
		if !ok {
			i = len(groups)
			index[e.Label] = i
			seen[e.Label] = make(map[string]struct{})
			groups = append(groups, models.EntityGroup{Label: e.Label, Texts: []string{}})
		}
		if _, dup := seen[e.Label][e.Text]; dup {
			continue
		}
		seen[e.Label][e.Text] = struct{}{}
		groups[i].Texts = append(groups[i].Texts, e.Text)
	}

	return groups
}

// Summarize orders counts for display: labels in group order first, then
// any labels only present in counts, alphabetically.
func Summarize(groups Groups, counts models.Counts) []models.LabelCount {
	summary := make([]models.LabelCount, 0, len(counts))
	listed := make(map[string]struct{}, len(counts))

	for _, group := range groups {
		count, ok := counts[group.Label]
		if !ok {
			continue
		}
		summary = append(summary, models.LabelCount{Label: group.Label, Count: count})
		listed[group.Label] = struct{}{}
	}

	rest := make([]string, 0, len(counts)-len(listed))
	for label := range counts {
		if _, ok := listed[label]; !ok {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	for _, label := range rest {
		summary = append(summary, models.LabelCount{Label: label, Count: counts[label]})
	}

	return summary
}

// Toggle returns the selection after clicking clicked: clicking the current
// selection clears it, anything else selects it.
func Toggle(current, clicked string) string {
	if current == clicked {
		return ""
	}
	return clicked
}
