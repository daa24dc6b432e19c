// Package core orchestrates a debugging session: the interactive
// question loop and the context-window manager that keeps long
// conversations inside the model's budget.
package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nietzschian/nietzschian/internal/llm"
	"github.com/nietzschian/nietzschian/internal/session"
)

const (
	maxContextTokens    = 200_000
	thresholdRatio      = 0.8
	tokenThreshold      = int(maxContextTokens * thresholdRatio)
	charsPerToken       = 4
	preserveRecentTurns = 8
)

const summarySystemPrompt = `You are a precise conversation summarizer. Compress the following debug session turns into a single paragraph that preserves:
- The developer's key hypotheses (stated and rejected)
- Observable behaviors (guessing without evidence, checking assumptions, etc.)
- The current state of understanding at the end of these turns
- Any files or code elements mentioned

Do not editorialize. Do not add new information. Output only the summary paragraph.`

// ContextManager watches conversation size and compacts old turns
// into a rolling summary when the estimate crosses the threshold.
type ContextManager struct {
	client llm.Client
	model  string
	logger *zap.Logger
}

// NewContextManager creates a manager that summarizes with the given
// model.
func NewContextManager(client llm.Client, model string, logger *zap.Logger) *ContextManager {
	return &ContextManager{client: client, model: model, logger: logger}
}

// BuildMessages converts transcript turns into conversation messages,
// question as assistant and response as user, skipping empty fields.
func BuildMessages(turns []session.Turn) []llm.Message {
	var messages []llm.Message
	for _, turn := range turns {
		if turn.Question != "" {
			messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: turn.Question})
		}
		if turn.Response != "" {
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: turn.Response})
		}
	}
	return messages
}

// EstimateTokens approximates the token footprint of a prompt and
// message set at four characters per token, rounded up.
func EstimateTokens(systemPrompt string, messages []llm.Message) int {
	total := len(systemPrompt)
	for _, m := range messages {
		total += len(m.Content)
	}
	return (total + charsPerToken - 1) / charsPerToken
}

// ShouldSummarize reports whether an estimate exceeds the threshold.
// The threshold itself does not trigger compaction.
func ShouldSummarize(estimatedTokens int) bool {
	return estimatedTokens > tokenThreshold
}

// SummarizeOldTurns compresses all but the most recent turns into a
// summary paragraph, folding in any existing summary. Transcripts at
// or under the preserved-turn count come back unchanged.
func (m *ContextManager) SummarizeOldTurns(ctx context.Context, turns []session.Turn, existingSummary string) (string, []session.Turn, error) {
	if len(turns) <= preserveRecentTurns {
		return existingSummary, turns, nil
	}

	oldTurns := turns[:len(turns)-preserveRecentTurns]
	recentTurns := turns[len(turns)-preserveRecentTurns:]

	var turnsText strings.Builder
	for i, t := range oldTurns {
		if i > 0 {
			turnsText.WriteString("\n\n")
		}
		fmt.Fprintf(&turnsText, "Turn %d:\nQuestion: %s\nDeveloper: %s", t.TurnNumber, t.Question, t.Response)
	}

	toSummarize := turnsText.String()
	if existingSummary != "" {
		toSummarize = fmt.Sprintf("Previous summary: %s\n\nNew turns to incorporate:\n%s", existingSummary, turnsText.String())
	}

	summary, err := m.client.Generate(ctx, llm.GenerateRequest{
		Model:    m.model,
		System:   summarySystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: toSummarize}},
	})
	if err != nil {
		return "", nil, fmt.Errorf("summarization failed: %w", err)
	}
	return summary, recentTurns, nil
}

// CheckAndCompact estimates the conversation size and compacts when
// needed. The cheap estimate is verified with an exact provider count
// before summarizing; if the exact count fits, nothing changes. A
// failed count proceeds on the estimate, and a failed summarization
// leaves the transcript untouched. Both are logged, never fatal.
func (m *ContextManager) CheckAndCompact(ctx context.Context, systemPrompt string, turns []session.Turn, existingSummary string) ([]session.Turn, string) {
	messages := BuildMessages(turns)
	estimated := EstimateTokens(systemPrompt, messages)
	if !ShouldSummarize(estimated) {
		return turns, existingSummary
	}

	exact, err := m.client.CountTokens(ctx, llm.GenerateRequest{
		Model:    m.model,
		System:   systemPrompt,
		Messages: messages,
	})
	if err != nil {
		m.logger.Warn("token count unavailable, compacting on estimate",
			zap.Int("estimated_tokens", estimated), zap.Error(err))
	} else if exact <= tokenThreshold {
		return turns, existingSummary
	}

	summary, recent, err := m.SummarizeOldTurns(ctx, turns, existingSummary)
	if err != nil {
		m.logger.Warn("compaction skipped", zap.Error(err))
		return turns, existingSummary
	}

	m.logger.Debug("compacted conversation",
		zap.Int("turns_before", len(turns)), zap.Int("turns_after", len(recent)))
	return recent, summary
}
