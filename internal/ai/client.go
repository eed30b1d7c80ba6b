package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a chat-style LLM backend. Chat returns the model text together
// with the raw provider response for audit logging.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}
