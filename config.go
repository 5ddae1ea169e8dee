package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment at startup.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Gemini is only used when a project is set.
	ProjectID string `env:"GCP_PROJECT_ID"`
	Region    string `env:"GCP_REGION" envDefault:"europe-west1"`
	Model     string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	LayoutFile      string        `env:"MAGICSQUARE_LAYOUT"`
	Debounce        time.Duration `env:"MAGICSQUARE_DEBOUNCE" envDefault:"300ms"`
	MinConfidence   float64       `env:"MAGICSQUARE_MIN_CONFIDENCE" envDefault:"0.6"`
	ClassifyRPS     float64       `env:"MAGICSQUARE_CLASSIFY_RPS" envDefault:"5"`
	ClassifyBurst   int           `env:"MAGICSQUARE_CLASSIFY_BURST" envDefault:"10"`
	ClassifyTimeout time.Duration `env:"MAGICSQUARE_CLASSIFY_TIMEOUT" envDefault:"15s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfig parses the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
		return Config{}, fmt.Errorf("MAGICSQUARE_MIN_CONFIDENCE must be within 0..1, got %v", cfg.MinConfidence)
	}
	if cfg.Debounce <= 0 {
		return Config{}, fmt.Errorf("MAGICSQUARE_DEBOUNCE must be positive, got %v", cfg.Debounce)
	}
	return cfg, nil
}

// SchedulerConfig returns the recognition settings of cfg.
func (c Config) SchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Debounce:      c.Debounce,
		MinConfidence: c.MinConfidence,
		Timeout:       c.ClassifyTimeout,
	}
}

// Gemini returns the classifier settings of cfg.
func (c Config) Gemini() GeminiConfig {
	return GeminiConfig{ProjectID: c.ProjectID, Region: c.Region, Model: c.Model}
}
