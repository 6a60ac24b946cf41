package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"quiz-runner/internal/domain"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		ID  string `yaml:"id"`
		TTL string `yaml:"ttl"`
	} `yaml:"bank"`
	Quiz struct {
		Count          int    `yaml:"count"`
		Mode           string `yaml:"mode"`
		ShuffleOptions *bool  `yaml:"shuffle_options"`
		ShowExplain    *bool  `yaml:"show_explain"`
		AllowReview    *bool  `yaml:"allow_review"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BankID returns the configured bank identifier or "default".
func (c Config) BankID() string {
	if c.Bank.ID == "" {
		return "default"
	}
	return c.Bank.ID
}

// QuizDefaults maps the quiz section onto session settings, filling the
// original runner's defaults: 10 questions, random order, everything on.
func (c Config) QuizDefaults() domain.Settings {
	s := domain.Settings{
		Count:          c.Quiz.Count,
		Mode:           domain.SelectionMode(c.Quiz.Mode),
		ShuffleOptions: boolOr(c.Quiz.ShuffleOptions, true),
		ShowExplain:    boolOr(c.Quiz.ShowExplain, true),
		AllowReview:    boolOr(c.Quiz.AllowReview, true),
	}
	if s.Count < 1 {
		s.Count = 10
	}
	return s.Normalized()
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
