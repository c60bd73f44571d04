package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptConfig tunes the outreach message prompt and the generation budget.
type PromptConfig struct {
	ProductName     string  `yaml:"product_name"`
	ProductPitch    string  `yaml:"product_pitch"`
	Tone            string  `yaml:"tone"`
	MinWords        int     `yaml:"min_words"`
	MaxWords        int     `yaml:"max_words"`
	MaxTokens       int     `yaml:"max_tokens"`
	Temperature     float64 `yaml:"temperature"`
	MaxMessageRunes int     `yaml:"max_message_runes"`
	Fallback        string  `yaml:"fallback_message"`
}

// DefaultPromptConfig returns the built-in prompt settings.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		ProductName:     "OutFlo",
		ProductPitch:    "helps teams automate their outreach and book more meetings",
		Tone:            "warm, professional and conversational",
		MinWords:        50,
		MaxWords:        70,
		MaxTokens:       300,
		Temperature:     0.7,
		MaxMessageRunes: 600,
		Fallback:        "Hi there! I came across your profile and thought OutFlo could help you streamline outreach and book more meetings. Let's connect!",
	}
}

// LoadPromptFile reads a YAML file on top of the defaults. Keys missing from the
// file keep their default value.
func LoadPromptFile(path string) (PromptConfig, error) {
	cfg := DefaultPromptConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return PromptConfig{}, fmt.Errorf("read prompt config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PromptConfig{}, fmt.Errorf("parse prompt config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return PromptConfig{}, fmt.Errorf("invalid prompt config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings are usable for generation.
func (p PromptConfig) Validate() error {
	switch {
	case p.ProductName == "":
		return errors.New("product_name must not be empty")
	case p.MinWords <= 0 || p.MaxWords < p.MinWords:
		return fmt.Errorf("word range %d-%d is invalid", p.MinWords, p.MaxWords)
	case p.MaxTokens <= 0:
		return errors.New("max_tokens must be positive")
	case p.Temperature < 0 || p.Temperature > 1:
		return errors.New("temperature must be between 0 and 1")
	case p.MaxMessageRunes <= 0:
		return errors.New("max_message_runes must be positive")
	case p.Fallback == "":
		return errors.New("fallback_message must not be empty")
	}
	return nil
}
