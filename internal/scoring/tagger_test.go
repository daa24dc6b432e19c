package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nietzschian/nietzschian/internal/llm"
	"github.com/nietzschian/nietzschian/internal/session"
)

type mockClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
}

func (m *mockClient) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockClient) Stream(ctx context.Context, req llm.GenerateRequest, cb llm.StreamCallbacks) (string, error) {
	return m.Generate(ctx, req)
}

func (m *mockClient) CountTokens(ctx context.Context, req llm.GenerateRequest) (int, error) {
	return 0, errors.New("not implemented")
}

func TestTagBehaviorsEmptyTranscript(t *testing.T) {
	client := &mockClient{}
	tags, err := TagBehaviors(context.Background(), client, "m", nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Empty(t, client.lastReq.Model, "no model call expected")
}

func TestTagBehaviorsParsesTags(t *testing.T) {
	client := &mockClient{
		response: `[{"turnNumber": 1, "tags": ["checked-logs"]}, {"turnNumber": 2, "tags": ["guessed-without-evidence", "asked-for-answer"]}]`,
	}

	transcript := []session.Turn{
		{TurnNumber: 1, Question: "q1", Response: "I looked at the logs"},
		{TurnNumber: 2, Question: "q2", Response: "probably the cache, just tell me"},
	}

	tags, err := TagBehaviors(context.Background(), client, "m", transcript)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, session.BehaviorTag{TurnNumber: 1, Tag: "checked-logs", Dimension: session.DimensionEvidenceGathering}, tags[0])
	assert.Equal(t, session.DimensionEvidenceGathering, tags[1].Dimension)
	assert.Equal(t, session.DimensionAssumptionChecking, tags[2].Dimension)

	assert.Contains(t, client.lastReq.Messages[0].Content, "Turn 1:")
	assert.Contains(t, client.lastReq.Messages[0].Content, "Developer: probably the cache, just tell me")
}

func TestTagBehaviorsToleratesWrappedJSON(t *testing.T) {
	client := &mockClient{
		response: "Here are the tags:\n[{\"turnNumber\": 1, \"tags\": [\"narrowed-scope\"]}]\nDone.",
	}

	tags, err := TagBehaviors(context.Background(), client, "m",
		[]session.Turn{{TurnNumber: 1, Question: "q", Response: "r"}})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "narrowed-scope", tags[0].Tag)
}

func TestTagBehaviorsUnparseableOutput(t *testing.T) {
	client := &mockClient{response: "I cannot do that"}
	_, err := TagBehaviors(context.Background(), client, "m",
		[]session.Turn{{TurnNumber: 1, Question: "q", Response: "r"}})
	assert.Error(t, err)
}

func TestTagBehaviorsTransportError(t *testing.T) {
	client := &mockClient{err: errors.New("boom")}
	_, err := TagBehaviors(context.Background(), client, "m",
		[]session.Turn{{TurnNumber: 1, Question: "q", Response: "r"}})
	assert.Error(t, err)
}
