package config

import (
	"testing"
	"time"

	"horse.fit/lingo/internal/language"
)

func validConfig() Config {
	return Config{
		Environment:          "local",
		LogLevel:             "info",
		DefaultLanguage:      "en",
		MaxTextChars:         2000,
		StatisticalEnabled:   true,
		StatisticalThreshold: 0.85,
		StatisticalFloor:     0.85,
		HeuristicThreshold:   0.75,
		RemoteGate:           0.7,
		RemoteModel:          "gpt-4o-mini",
		RemoteTimeout:        20 * time.Second,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	mutations := map[string]func(*Config){
		"unsupported default language": func(c *Config) { c.DefaultLanguage = "ru" },
		"blank default language":       func(c *Config) { c.DefaultLanguage = " " },
		"threshold above one":          func(c *Config) { c.HeuristicThreshold = 1.5 },
		"negative gate":                func(c *Config) { c.RemoteGate = -0.1 },
		"threshold below floor":        func(c *Config) { c.StatisticalThreshold = 0.5 },
		"zero max text":                func(c *Config) { c.MaxTextChars = 0 },
		"zero remote timeout":          func(c *Config) { c.RemoteTimeout = 0 },
	}

	for name, mutate := range mutations {
		cfg := validConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", name)
		}
	}
}

func TestDefaultLanguageCodeNormalizesTags(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.DefaultLanguage = "EN_us"
	if got := cfg.DefaultLanguageCode(); got != language.English {
		t.Fatalf("unexpected code: %q", got)
	}
}

func TestRemoteConfigured(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if cfg.RemoteConfigured() {
		t.Fatal("remote must be unconfigured by default")
	}
	cfg.RemoteAPIKey = "sk-test"
	if !cfg.RemoteConfigured() {
		t.Fatal("API key must enable the remote stage")
	}

	cfg = validConfig()
	cfg.RemoteEndpoint = "http://127.0.0.1:8845/v1"
	if !cfg.RemoteConfigured() {
		t.Fatal("endpoint must enable the remote stage")
	}
}

func TestDetectorOptionsMapping(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.DefaultLanguage = "ja"
	cfg.RemoteGate = 0.6

	opts := cfg.DetectorOptions()
	if opts.DefaultLanguage != language.Japanese {
		t.Fatalf("unexpected default language: %q", opts.DefaultLanguage)
	}
	if opts.RemoteGate != 0.6 {
		t.Fatalf("unexpected remote gate: %v", opts.RemoteGate)
	}
	if opts.Subword != nil || opts.Chat != nil {
		t.Fatal("providers are wired at runtime, not from config")
	}
}
