package web

// LabelStyle is how an entity label is shown: a readable group name and a
// CSS class for its highlight color.
type LabelStyle struct {
	Name  string
	Class string
}

const defaultLabelClass = "ent-other"

// labelStyles covers the CoNLL, OntoNotes and WNUT label sets.
var labelStyles = map[string]LabelStyle{
	"PER":           {Name: "People", Class: "ent-person"},
	"PERSON":        {Name: "People", Class: "ent-person"},
	"ORG":           {Name: "Organizations", Class: "ent-org"},
	"CORPORATION":   {Name: "Organizations", Class: "ent-org"},
	"LOC":           {Name: "Locations", Class: "ent-loc"},
	"LOCATION":      {Name: "Locations", Class: "ent-loc"},
	"GPE":           {Name: "Places", Class: "ent-loc"},
	"MISC":          {Name: "Miscellaneous", Class: "ent-misc"},
	"DATE":          {Name: "Dates", Class: "ent-misc"},
	"MONEY":         {Name: "Money", Class: "ent-money"},
	"PRODUCT":       {Name: "Products", Class: "ent-product"},
	"GROUP":         {Name: "Groups", Class: "ent-group"},
	"CREATIVE-WORK": {Name: "Creative Works", Class: "ent-work"},
}

type LegendEntry struct {
	Name  string
	Class string
}

var legend = []LegendEntry{
	{Name: "Person", Class: "ent-person"},
	{Name: "Organization", Class: "ent-org"},
	{Name: "Location", Class: "ent-loc"},
	{Name: "Misc", Class: "ent-misc"},
}

// labelName returns the display name for label, or label itself when unknown.
func labelName(label string) string {
	if style, ok := labelStyles[label]; ok {
		return style.Name
	}
	return label
}

func labelClass(label string) string {
	if style, ok := labelStyles[label]; ok {
		return style.Class
	}
	return defaultLabelClass
}
