// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config is the server configuration.
type Config struct {
	Addr        string   `env:"SETTLEUP_ADDR"         envDefault:":8080"`
	DBPath      string   `env:"SETTLEUP_DB_PATH"      envDefault:"./data/settleup.db"`
	LogLevel    string   `env:"LOG_LEVEL"             envDefault:"info"`
	CORSOrigins []string `env:"SETTLEUP_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	OpenAIKey       string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"           envDefault:"https://api.openai.com/v1"`
	ParseModel      string        `env:"SETTLEUP_PARSE_MODEL"      envDefault:"gpt-4o-mini"`
	TranslateModel  string        `env:"SETTLEUP_TRANSLATE_MODEL"  envDefault:"gpt-4o"`
	TranscribeModel string        `env:"SETTLEUP_TRANSCRIBE_MODEL" envDefault:"whisper-1"`
	TargetLanguage  string        `env:"SETTLEUP_TARGET_LANGUAGE"  envDefault:"en"`
	MatchThreshold  int           `env:"SETTLEUP_MATCH_THRESHOLD"  envDefault:"80"`
	UpstreamTimeout time.Duration `env:"SETTLEUP_UPSTREAM_TIMEOUT" envDefault:"60s"`

	OTelEndpoint   string `env:"SETTLEUP_OTEL_ENDPOINT"`
	MetricsEnabled bool   `env:"SETTLEUP_METRICS_ENABLED" envDefault:"true"`
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MatchThreshold < 1 || c.MatchThreshold > 100 {
		return fmt.Errorf("SETTLEUP_MATCH_THRESHOLD must be between 1 and 100, got %d", c.MatchThreshold)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("SETTLEUP_UPSTREAM_TIMEOUT must not be negative, got %s", c.UpstreamTimeout)
	}
	if _, err := language.Parse(c.TargetLanguage); err != nil {
		return fmt.Errorf("SETTLEUP_TARGET_LANGUAGE %q: %w", c.TargetLanguage, err)
	}
	return nil
}

// Language returns the parsed translation target. Load has validated it.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.TargetLanguage)
	if err != nil {
		return language.English
	}
	return tag
}

// UpstreamEnabled reports whether an OpenAI key is configured.
func (c Config) UpstreamEnabled() bool {
	return c.OpenAIKey != ""
}
