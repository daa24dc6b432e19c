// Package llm provides the text-generation client abstraction, its
// Anthropic implementation, provider error classification, model
// selection, and the question validator.
package llm

import "context"

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one provider-agnostic conversation message.
type Message struct {
	Role    Role
	Content string
}

// GenerateRequest is a single non-streaming generation call.
type GenerateRequest struct {
	Model     string
	System    string
	Messages  []Message
	MaxTokens int
}

// StreamCallbacks receive streamed output. OnText is called per text
// delta; OnError is called at most once, after which the stream ends.
type StreamCallbacks struct {
	OnText  func(text string)
	OnError func(err error)
}

// Client is the text-generation seam the orchestrator and scoring
// pipeline depend on. Implementations must be safe for sequential use
// from a single goroutine; that is all the loop requires.
type Client interface {
	// Generate returns the complete text of one model response.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Stream generates a response, delivering text deltas through cb,
	// and returns the accumulated full text.
	Stream(ctx context.Context, req GenerateRequest, cb StreamCallbacks) (string, error)

	// CountTokens returns the provider's exact input token count for
	// the request. An error means the count is unavailable, not that
	// the request is invalid.
	CountTokens(ctx context.Context, req GenerateRequest) (int, error)
}
