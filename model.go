package iterbot

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Model is the inference boundary. The agent only ever needs the top-level
// response text for one chat completion over the full conversation history;
// streaming, token accounting, and retries are the implementation's concern.
//
// See the models subpackage for implementations backed by LangChainGo
// (Ollama, or any llms.Model).
type Model interface {
	// Chat sends the ordered, role-tagged history to the model and returns
	// the response text. An error here is fatal to the run and propagates
	// out of [Agent.Run] unchanged.
	Chat(ctx context.Context, messages []llms.MessageContent) (string, error)
}

// ChatFunc adapts a function into a [Model]. Useful for tests and for
// wrapping inference clients without a named type.
type ChatFunc func(ctx context.Context, messages []llms.MessageContent) (string, error)

// Chat implements Model.
func (f ChatFunc) Chat(ctx context.Context, messages []llms.MessageContent) (string, error) {
	return f(ctx, messages)
}

// Compile-time check that ChatFunc implements Model.
var _ Model = (ChatFunc)(nil)
