package models

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// DefaultOllamaModel is the model used when none is specified.
const DefaultOllamaModel = "llama3.2"

// OllamaConfig configures the Ollama-backed model.
type OllamaConfig struct {
	// Model is the Ollama model name, e.g. "llama3.2".
	Model string

	// ServerURL is the Ollama server base URL. Empty uses the client's
	// default (http://localhost:11434).
	ServerURL string

	// CallOptions are applied to every Chat call.
	CallOptions []llms.CallOption
}

// NewOllama creates an iterbot.Model backed by a local Ollama server.
//
//	model, err := models.NewOllama(models.OllamaConfig{Model: "llama3.2"})
func NewOllama(cfg OllamaConfig) (*LCG, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}

	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, err
	}
	return NewLCG(llm, cfg.CallOptions...), nil
}
