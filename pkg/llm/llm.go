package llm

import "context"

// Request is a single chat completion call.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	// JSONOnly requests the provider's strict-JSON response mode when supported.
	JSONOnly bool
}

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Complete(ctx context.Context, req Request) (string, error)
}
