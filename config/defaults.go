package config

import (
	"time"

	"dario.cat/mergo"
)

const (
	DefaultNLPServerURL   = "http://localhost:8000"
	DefaultNLPTimeout     = 30 * time.Second
	DefaultMaxTextLength  = 100_000
	DefaultMaxAnalyses    = 100
	DefaultStoreTTL       = 30 * time.Minute
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 5 << 20 // 5MB
	DefaultLogLevel       = "info"
	DefaultOTelEndpoint   = "localhost:4318"
)

func defaultConfig() Config {
	return Config{
		NLP: NLPConfig{
			ServerURL: DefaultNLPServerURL,
			Timeout:   DefaultNLPTimeout,
		},
		Analysis: AnalysisConfig{
			MaxTextLength: DefaultMaxTextLength,
		},
		Store: StoreConfig{
			MaxAnalyses: DefaultMaxAnalyses,
			TTL:         DefaultStoreTTL,
		},
		Server: ServerConfig{
			Port:           DefaultServerPort,
			MaxRequestSize: DefaultMaxRequestSize,
			WebEnabled:     true,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		OTel: OTelConfig{
			Endpoint: DefaultOTelEndpoint,
		},
	}
}

// ApplyDefaults fills any zero-valued field of cfg with its default.
// Booleans can't be told apart from an explicit false, so WebEnabled is
// set through viper defaults instead.
func ApplyDefaults(cfg *Config) error {
	defaults := defaultConfig()
	defaults.Server.WebEnabled = false
	return mergo.Merge(cfg, defaults)
}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := defaultConfig()
	return &cfg
}
