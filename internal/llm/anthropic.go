package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// Model tiers. The conversation model carries routine question turns;
// the deep model handles the first analysis of each code file.
const (
	DefaultConversationModel = "claude-haiku-4-5-20251001"
	DefaultDeepModel         = "claude-sonnet-4-6"

	// MaxOutputTokens bounds every generation. Questions are short.
	MaxOutputTokens = 1024
)

// ErrMissingAPIKey indicates no credential was configured at all.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

// AnthropicClient implements Client against the Anthropic Messages API.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient creates a client with an explicit API key.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{client: anthropic.NewClient(apiKey)}
}

// NewAnthropicClientFromEnv reads ANTHROPIC_API_KEY from the
// environment. Returns ErrMissingAPIKey when unset or blank.
func NewAnthropicClientFromEnv() (*AnthropicClient, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewAnthropicClient(apiKey), nil
}

func buildRequest(req GenerateRequest) anthropic.MessagesRequest {
	msgs := make([]anthropic.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := anthropic.RoleUser
		if m.Role == RoleAssistant {
			role = anthropic.RoleAssistant
		}
		msgs = append(msgs, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(m.Content)},
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = MaxOutputTokens
	}

	out := anthropic.MessagesRequest{
		Model:     anthropic.Model(req.Model),
		Messages:  msgs,
		MaxTokens: maxTokens,
	}
	if req.System != "" {
		out.MultiSystem = []anthropic.MessageSystemPart{{Type: "text", Text: req.System}}
	}
	return out
}

// Generate implements Client.Generate.
func (c *AnthropicClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	resp, err := c.client.CreateMessages(ctx, buildRequest(req))
	if err != nil {
		return "", wrapProviderError(err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text.WriteString(*block.Text)
		}
	}
	return text.String(), nil
}

// Stream implements Client.Stream. Text deltas are forwarded to
// cb.OnText as they arrive; the accumulated text is returned so
// callers never need to reassemble it.
func (c *AnthropicClient) Stream(ctx context.Context, req GenerateRequest, cb StreamCallbacks) (string, error) {
	var text strings.Builder
	var streamErr error

	streamReq := anthropic.MessagesStreamRequest{MessagesRequest: buildRequest(req)}

	streamReq.OnContentBlockDelta = func(delta anthropic.MessagesEventContentBlockDeltaData) {
		if delta.Delta.Type == "text_delta" && delta.Delta.Text != nil {
			text.WriteString(*delta.Delta.Text)
			if cb.OnText != nil {
				cb.OnText(*delta.Delta.Text)
			}
		}
	}

	streamReq.OnError = func(errResp anthropic.ErrorResponse) {
		if errResp.Error != nil {
			streamErr = fmt.Errorf("stream error: %s", errResp.Error.Message)
		} else {
			streamErr = fmt.Errorf("stream error")
		}
	}

	if _, err := c.client.CreateMessagesStream(ctx, streamReq); err != nil {
		wrapped := wrapProviderError(err)
		if cb.OnError != nil {
			cb.OnError(wrapped)
		}
		return "", wrapped
	}
	if streamErr != nil {
		wrapped := wrapProviderError(streamErr)
		if cb.OnError != nil {
			cb.OnError(wrapped)
		}
		return "", wrapped
	}
	return text.String(), nil
}

// CountTokens implements Client.CountTokens using the provider's
// count-tokens endpoint.
func (c *AnthropicClient) CountTokens(ctx context.Context, req GenerateRequest) (int, error) {
	resp, err := c.client.CountTokens(ctx, buildRequest(req))
	if err != nil {
		return 0, wrapProviderError(err)
	}
	return resp.InputTokens, nil
}
