package web

import (
	"bytes"
	"html/template"
	"net/http"
	"regexp"
	"strings"
)

func NewPage(
	title, subTitle, path string,
	templates []string,
	data interface{},
) *Page {
	return &Page{
		Title:     title,
		SubTitle:  subTitle,
		Templates: templates,
		Path:      path,
		Slug:      slugify(title),
		Status:    http.StatusOK,
		Data:      data,
	}
}

type Page struct {
	Title     string
	SubTitle  string
	Templates []string
	Path      string
	Slug      string
	Status    int
	Data      interface{}
}

// WithStatus sets the status written for full page loads. htmx only swaps
// 2xx responses, so partial renders always use 200.
func (p *Page) WithStatus(status int) *Page {
	p.Status = status
	return p
}

func (p *Page) Render(w http.ResponseWriter, r *http.Request) {
	// If HX-Request header is set, render content template only
	// If the page was loaded directly, render full layout
	if isHTMXRequest(r) {
		p.render(w, "Content", p.Templates, http.StatusOK)
	} else {
		templates := append(append([]string{}, LayoutTemplates...), p.Templates...)
		p.render(w, "Layout", templates, p.Status)
	}
}

func (p *Page) render(w http.ResponseWriter, name string, templates []string, status int) {
	tmpl, err := template.New(p.Title).Funcs(templateFuncs()).ParseFS(
		TemplatesFS,
		templates...,
	)
	if err != nil {
		log.Errorf("Failed to parse template: %s", err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	// Execute into a buffer so a failing template doesn't leave a half-written page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		log.Errorf("Failed to execute template: %s", err)
		http.Error(w, "Failed to execute template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if p.Path != "" {
		w.Header().Set("HX-Push-Url", p.Path)
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

var nonAlpha = regexp.MustCompile("[^a-zA-Z]+")

// slugify converts a string to an alpha-only lowercase string
func slugify(s string) string {
	return strings.ToLower(nonAlpha.ReplaceAllString(s, ""))
}
