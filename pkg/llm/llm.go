package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned by providers when the model answered without any text.
var ErrEmptyCompletion = errors.New("model returned no generated text")

// Request is a single system/user prompt pair sent to a chat model.
type Request struct {
	// Operation labels the call for logs and metrics (e.g. "questions", "score").
	Operation    string
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ChatModelFunc adapts a plain function to ChatModel.
type ChatModelFunc func(ctx context.Context, req Request) (string, error)

func (f ChatModelFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
