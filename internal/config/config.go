package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the TalentScout assistant.
type Config struct {
	Assistant    AssistantConfig
	AI           AIConfig
	ExitKeywords []string
	Store        StoreConfig
}

// AssistantConfig holds the user-facing copy shown by the chat TUI.
type AssistantConfig struct {
	Title    string
	Greeting string
	ThankYou string
}

// AIConfig controls the OpenAI question-generation layer.
type AIConfig struct {
	BaseURL string        // defaults to https://api.openai.com/v1
	Model   string        // OpenAI model identifier, e.g. "gpt-4o-mini"
	APIKey  string        // expanded from env var by Load
	Timeout time.Duration // per-request timeout
}

// StoreConfig controls session persistence.
type StoreConfig struct {
	Path string // SQLite database path
}

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultModel         = "gpt-4o-mini"
	defaultTimeout       = 30 * time.Second
	defaultStorePath     = "sessions.db"

	defaultTitle = "TalentScout Hiring Assistant"

	defaultGreeting = `Welcome to TalentScout!

I'm your AI-powered hiring assistant here to help you through the technical
screening process. I'll collect some basic information about you and then
assess your technical skills through relevant questions based on your tech
stack.

Let's get started!`

	defaultThankYou = `Thank you for your time! Your responses have been recorded.
Our hiring team will review your information and get back to you soon.

Good luck!`
)

var defaultExitKeywords = []string{"exit", "quit", "bye", "goodbye", "stop"}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Assistant    rawAssistantConfig `yaml:"assistant"`
	AI           rawAIConfig        `yaml:"ai"`
	ExitKeywords []string           `yaml:"exit_keywords"`
	Store        rawStoreConfig     `yaml:"store"`
}

type rawAssistantConfig struct {
	Title    string `yaml:"title"`
	Greeting string `yaml:"greeting"`
	ThankYou string `yaml:"thank_you"`
}

type rawAIConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

type rawStoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no config file exists. The
// API key falls back to the OPENAI_API_KEY environment variable.
func Default() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Title:    defaultTitle,
			Greeting: defaultGreeting,
			ThankYou: defaultThankYou,
		},
		AI: AIConfig{
			BaseURL: defaultOpenAIBaseURL,
			Model:   defaultModel,
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Timeout: defaultTimeout,
		},
		ExitKeywords: defaultExitKeywords,
		Store:        StoreConfig{Path: defaultStorePath},
	}
}

// Load reads and parses the YAML config file at path, fills defaults, and
// validates the result. A missing file is not an error: the defaults apply,
// with the API key taken from OPENAI_API_KEY.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables so secrets stay out of the file.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Assistant.Title != "" {
		cfg.Assistant.Title = raw.Assistant.Title
	}
	if raw.Assistant.Greeting != "" {
		cfg.Assistant.Greeting = raw.Assistant.Greeting
	}
	if raw.Assistant.ThankYou != "" {
		cfg.Assistant.ThankYou = raw.Assistant.ThankYou
	}

	if raw.AI.BaseURL != "" {
		cfg.AI.BaseURL = raw.AI.BaseURL
	}
	if raw.AI.Model != "" {
		cfg.AI.Model = raw.AI.Model
	}
	if raw.AI.APIKey != "" {
		cfg.AI.APIKey = raw.AI.APIKey
	}
	if raw.AI.Timeout != "" {
		timeout, err := time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
		cfg.AI.Timeout = timeout
	}

	if len(raw.ExitKeywords) > 0 {
		cfg.ExitKeywords = raw.ExitKeywords
	}
	if raw.Store.Path != "" {
		cfg.Store.Path = raw.Store.Path
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	for _, kw := range cfg.ExitKeywords {
		if kw == "" {
			return fmt.Errorf("exit_keywords must not contain empty entries")
		}
	}
	return nil
}

// RequireAPIKey enforces the one startup credential. Called by commands
// that reach the LLM; a missing key is fatal at startup.
func (c *Config) RequireAPIKey() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required: set it in the config file or export OPENAI_API_KEY")
	}
	return nil
}
