// Package scoring analyzes finished sessions: tagging observable
// debugging behaviors, scoring skill dimensions, and aggregating
// cross-session growth.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nietzschian/nietzschian/internal/llm"
	"github.com/nietzschian/nietzschian/internal/session"
)

const taggerSystemPrompt = `You are a debugging behavior analyst. Given a debug session transcript, tag each developer response with observable reasoning behaviors.

For each turn, output ONLY a JSON array of behavior tags. Each tag must be one of:
- "guessed-without-evidence" (developer made assumption without checking data)
- "checked-logs" (developer referenced logs, data, or evidence)
- "questioned-assumption" (developer challenged their own or others' assumptions)
- "assumed-without-checking" (developer accepted something without verification)
- "narrowed-scope" (developer effectively narrowed down the problem space)
- "went-broad-unnecessarily" (developer expanded scope without justification)
- "asked-for-answer" (developer asked the tool for a direct answer)

Respond with valid JSON only. Format:
[{"turnNumber": 1, "tags": ["tag1", "tag2"]}, ...]`

// DimensionForTag maps a behavior tag to the skill dimension it
// scores against. Unknown tags count toward evidence gathering.
func DimensionForTag(tag string) session.Dimension {
	switch tag {
	case "guessed-without-evidence", "checked-logs":
		return session.DimensionEvidenceGathering
	case "questioned-assumption", "assumed-without-checking", "asked-for-answer":
		return session.DimensionAssumptionChecking
	case "narrowed-scope", "went-broad-unnecessarily":
		return session.DimensionRootCauseSpeed
	}
	return session.DimensionEvidenceGathering
}

type taggedTurn struct {
	TurnNumber int      `json:"turnNumber"`
	Tags       []string `json:"tags"`
}

// TagBehaviors runs the behavior tagger over a finished transcript.
// An empty transcript yields no tags without a model call. Transport
// and parse failures are returned; the caller treats tagging as
// best-effort.
func TagBehaviors(ctx context.Context, client llm.Client, model string, transcript []session.Turn) ([]session.BehaviorTag, error) {
	if len(transcript) == 0 {
		return []session.BehaviorTag{}, nil
	}

	var formatted strings.Builder
	for i, t := range transcript {
		if i > 0 {
			formatted.WriteString("\n\n")
		}
		fmt.Fprintf(&formatted, "Turn %d:\nQuestion: %s\nDeveloper: %s", t.TurnNumber, t.Question, t.Response)
	}

	response, err := client.Generate(ctx, llm.GenerateRequest{
		Model:    model,
		System:   taggerSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: formatted.String()}},
	})
	if err != nil {
		return nil, fmt.Errorf("behavior tagging failed: %w", err)
	}

	var parsed []taggedTurn
	if err := json.Unmarshal([]byte(extractJSONArray(response)), &parsed); err != nil {
		return nil, fmt.Errorf("behavior tagger returned unparseable output: %w", err)
	}

	var tags []session.BehaviorTag
	for _, entry := range parsed {
		for _, tag := range entry.Tags {
			tags = append(tags, session.BehaviorTag{
				TurnNumber: entry.TurnNumber,
				Tag:        tag,
				Dimension:  DimensionForTag(tag),
			})
		}
	}
	return tags, nil
}

// extractJSONArray trims any prose the model wrapped around the JSON
// array.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
