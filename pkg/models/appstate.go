package models

import (
	"github.com/nerview/nerview/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	Analyzer      EntityAnalyzer
	AnalysisStore AnalysisStore
	Config        *config.Config
}
