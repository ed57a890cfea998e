package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nerview/nerview/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = internal.GetLogger()

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config file is not an error when no path was given explicitly.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix("NERVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment variables take precedence over config file
	loadDotEnv()

	v.SetDefault("server.web_enabled", true)
	for _, key := range []string{
		"nlp.server_url",
		"nlp.timeout",
		"nlp.retry_max",
		"analysis.max_text_length",
		"store.max_analyses",
		"store.ttl",
		"server.host",
		"server.port",
		"server.max_request_size",
		"log.level",
		"auth.secret",
		"auth.required",
		"otel.enabled",
		"otel.endpoint",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warn("config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}

// Dump renders the config as YAML. The auth secret is redacted.
func Dump(cfg *Config) ([]byte, error) {
	redacted := *cfg
	if redacted.Auth.Secret != "" {
		redacted.Auth.Secret = "<redacted>"
	}
	return yaml.Marshal(&redacted)
}
