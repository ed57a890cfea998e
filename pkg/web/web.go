// Package web serves the server-rendered analysis UI.
package web

import (
	"embed"

	"github.com/nerview/nerview/internal"
)

var log = internal.GetLogger()

//go:embed static/*
var StaticFS embed.FS

//go:embed templates/*
var TemplatesFS embed.FS

var LayoutTemplates = []string{
	"templates/pages/layout.html",
}

var WorkspaceTemplates = []string{
	"templates/pages/workspace.html",
	"templates/components/*.html",
}
