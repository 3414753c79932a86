package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"horse.fit/lingo/internal/detect"
	"horse.fit/lingo/internal/language"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DefaultLanguage string `envconfig:"DETECT_DEFAULT_LANGUAGE" default:"en"`
	MaxTextChars    int    `envconfig:"DETECT_MAX_TEXT_CHARS" default:"2000"`

	// Stage tunables. The defaults worked in informal testing; nothing
	// deeper backs them.
	StatisticalEnabled   bool    `envconfig:"DETECT_STATISTICAL_ENABLED" default:"true"`
	StatisticalThreshold float64 `envconfig:"DETECT_STATISTICAL_THRESHOLD" default:"0.85"`
	StatisticalFloor     float64 `envconfig:"DETECT_STATISTICAL_FLOOR" default:"0.85"`
	HeuristicThreshold   float64 `envconfig:"DETECT_HEURISTIC_THRESHOLD" default:"0.75"`
	RemoteGate           float64 `envconfig:"DETECT_REMOTE_GATE" default:"0.7"`

	// Remote model transport. The remote stage stays disabled until an
	// endpoint or API key is configured.
	RemoteEndpoint string        `envconfig:"REMOTE_MODEL_ENDPOINT" default:""`
	RemoteAPIKey   string        `envconfig:"REMOTE_MODEL_API_KEY" default:""`
	RemoteModel    string        `envconfig:"REMOTE_MODEL_NAME" default:"gpt-4o-mini"`
	RemoteTimeout  time.Duration `envconfig:"REMOTE_MODEL_TIMEOUT" default:"20s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, ok := language.Parse(c.DefaultLanguage); !ok {
		return fmt.Errorf("DETECT_DEFAULT_LANGUAGE %q is not a supported language", c.DefaultLanguage)
	}
	if c.MaxTextChars < 1 {
		return fmt.Errorf("DETECT_MAX_TEXT_CHARS must be >= 1")
	}
	for name, value := range map[string]float64{
		"DETECT_STATISTICAL_THRESHOLD": c.StatisticalThreshold,
		"DETECT_STATISTICAL_FLOOR":     c.StatisticalFloor,
		"DETECT_HEURISTIC_THRESHOLD":   c.HeuristicThreshold,
		"DETECT_REMOTE_GATE":           c.RemoteGate,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", name, value)
		}
	}
	if c.StatisticalThreshold < c.StatisticalFloor {
		return fmt.Errorf("DETECT_STATISTICAL_THRESHOLD (%v) cannot be below DETECT_STATISTICAL_FLOOR (%v)",
			c.StatisticalThreshold, c.StatisticalFloor)
	}
	if c.RemoteTimeout <= 0 {
		return fmt.Errorf("REMOTE_MODEL_TIMEOUT must be positive")
	}
	return nil
}

// DefaultLanguageCode returns the validated default language.
func (c *Config) DefaultLanguageCode() language.Code {
	code, ok := language.Parse(c.DefaultLanguage)
	if !ok {
		return language.Default
	}
	return code
}

// RemoteConfigured reports whether the remote stage has a transport to
// talk to.
func (c *Config) RemoteConfigured() bool {
	return strings.TrimSpace(c.RemoteEndpoint) != "" || strings.TrimSpace(c.RemoteAPIKey) != ""
}

// DetectorOptions maps the configuration onto engine options, minus the
// providers, which depend on runtime wiring.
func (c *Config) DetectorOptions() detect.Options {
	return detect.Options{
		DefaultLanguage:      c.DefaultLanguageCode(),
		StatisticalThreshold: c.StatisticalThreshold,
		StatisticalFloor:     c.StatisticalFloor,
		HeuristicThreshold:   c.HeuristicThreshold,
		RemoteGate:           c.RemoteGate,
	}
}
