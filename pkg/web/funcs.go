package web

import (
	"html/template"
	"net/url"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/getzep/sprig/v3"

	"github.com/nerview/nerview/pkg/highlight"
	"github.com/nerview/nerview/pkg/models"
)

// returns 0 when b is 0
func percent(a, b int) int {
	if b == 0 {
		return 0
	}
	return int(float32(a) / float32(b) * 100)
}

func charCount(s string) string {
	return humanize.Comma(int64(utf8.RuneCountInString(s)))
}

// selectionURL is the link for clicking text in the entity list of view.
func selectionURL(view *models.AnalysisView, text string) string {
	path := "/analyses/" + view.UUID.String()
	selected := highlight.Toggle(view.Selected, text)
	if selected == "" {
		return path
	}
	return path + "?" + url.Values{"selected": {selected}}.Encode()
}

func templateFuncs() template.FuncMap {
	funcs := template.FuncMap(sprig.FuncMap())
	custom := template.FuncMap{
		"LabelName":    labelName,
		"LabelClass":   labelClass,
		"Legend":       func() []LegendEntry { return legend },
		"SelectionURL": selectionURL,
		"CharCount":    charCount,
		"Percent":      percent,
		"TimeAgo":      humanize.Time,
	}
	for name, fn := range custom {
		funcs[name] = fn
	}
	return funcs
}
