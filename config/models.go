package config

import "time"

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	NLP      NLPConfig      `mapstructure:"nlp"      yaml:"nlp"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Store    StoreConfig    `mapstructure:"store"    yaml:"store"`
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Log      LogConfig      `mapstructure:"log"      yaml:"log"`
	Auth     AuthConfig     `mapstructure:"auth"     yaml:"auth"`
	OTel     OTelConfig     `mapstructure:"otel"     yaml:"otel"`
}

// NLPConfig points at the entity analysis service.
type NLPConfig struct {
	ServerURL string        `mapstructure:"server_url" yaml:"server_url"`
	Timeout   time.Duration `mapstructure:"timeout"    yaml:"timeout"    jsonschema:"type=string"`
	RetryMax  int           `mapstructure:"retry_max"  yaml:"retry_max"`
}

type AnalysisConfig struct {
	MaxTextLength int `mapstructure:"max_text_length" yaml:"max_text_length"`
}

// StoreConfig bounds the in-memory analysis store. Analyses are evicted
// oldest first once MaxAnalyses is reached, and expire after TTL.
type StoreConfig struct {
	MaxAnalyses int           `mapstructure:"max_analyses" yaml:"max_analyses"`
	TTL         time.Duration `mapstructure:"ttl"          yaml:"ttl"          jsonschema:"type=string"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"             yaml:"host"`
	Port           int    `mapstructure:"port"             yaml:"port"`
	MaxRequestSize int64  `mapstructure:"max_request_size" yaml:"max_request_size"`
	WebEnabled     bool   `mapstructure:"web_enabled"      yaml:"web_enabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"   yaml:"secret"`
	Required bool   `mapstructure:"required" yaml:"required"`
}

type OTelConfig struct {
	Enabled  bool   `mapstructure:"enabled"  yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}
