// Package models provides iterbot.Model implementations backed by
// LangChainGo, so any provider LangChainGo supports (Ollama, OpenAI,
// Anthropic, ...) can drive the agent loop.
package models

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
)

// ErrNoChoices is returned when the underlying model responds without any
// content choices.
var ErrNoChoices = errors.New("models: model returned no choices")

// LCG wraps a LangChainGo llms.Model and implements iterbot.Model.
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLCG(llm, llms.WithTemperature(0))
type LCG struct {
	model llms.Model
	opts  []llms.CallOption
}

// NewLCG creates an LCG wrapper. The given call options are applied to every
// Chat call.
func NewLCG(model llms.Model, opts ...llms.CallOption) *LCG {
	return &LCG{model: model, opts: opts}
}

// Unwrap returns the underlying llms.Model.
func (m *LCG) Unwrap() llms.Model {
	return m.model
}

// Chat sends the history to the model and returns the first choice's text.
func (m *LCG) Chat(ctx context.Context, messages []llms.MessageContent) (string, error) {
	response, err := m.model.GenerateContent(ctx, messages, m.opts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", ErrNoChoices
	}
	return response.Choices[0].Content, nil
}
