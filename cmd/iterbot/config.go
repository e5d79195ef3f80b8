package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the CLI's YAML configuration file.
//
// Example:
//
//	model: llama3.2
//	ollama_url: http://localhost:11434
//	max_iterations: 15
//	custom_system_prompt: "Always show your work."
//	searxng_url: http://localhost:8080/search
type Config struct {
	// Model is the Ollama model name.
	Model string `yaml:"model"`

	// OllamaURL is the Ollama server base URL. Empty uses the default.
	OllamaURL string `yaml:"ollama_url"`

	// MaxIterations is the agent's iteration budget. Zero uses the default.
	MaxIterations int `yaml:"max_iterations"`

	// CustomSystemPrompt is appended to the ReAct system prompt.
	CustomSystemPrompt string `yaml:"custom_system_prompt"`

	// MaxCustomPromptSize bounds the custom prompt length. Zero uses the
	// default.
	MaxCustomPromptSize int `yaml:"max_custom_prompt_size"`

	// SearXNGURL enables the search_web tool when set.
	SearXNGURL string `yaml:"searxng_url"`

	// Timezones enables the get_timezone_aware_time tool.
	Timezones bool `yaml:"timezones"`
}

// LoadConfig reads and parses a YAML config file. A missing path returns the
// zero Config so the CLI works with defaults out of the box.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
