package core

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nietzschian/nietzschian/internal/llm"
	"github.com/nietzschian/nietzschian/internal/session"
	"github.com/nietzschian/nietzschian/internal/ui"
)

func newTestLoop(t *testing.T, client llm.Client, input string) (*Loop, *bytes.Buffer) {
	t.Helper()
	t.Setenv("ANTHROPIC_MODEL", "")
	t.Setenv("ANTHROPIC_DEEP_MODEL", "")

	var out bytes.Buffer
	loop := NewLoop(client, llm.NewModelSelector(), ui.NewRenderer(&out), zap.NewNop(), strings.NewReader(input))
	loop.readFile = func(string) (string, bool) { return "", false }
	return loop, &out
}

func TestLoopExitCommand(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{"What changed before the crash?"}}
	loop, out := newTestLoop(t, client, "exit\n")

	sess := session.New("it crashes on boot", session.IntensityNietzsche)
	outcome, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeAbandoned, outcome)

	require.Len(t, sess.Transcript, 1)
	assert.Equal(t, "What changed before the crash?", sess.Transcript[0].Question)
	assert.Equal(t, session.ResponseExited, sess.Transcript[0].Response)
	assert.Contains(t, out.String(), "Nietzschian Debugger")
	assert.Contains(t, out.String(), "[Turn 1]")
}

func TestLoopSolveCommands(t *testing.T) {
	for _, command := range []string{"solved", "found it", "SOLVED"} {
		client := &scriptedClient{generateResponses: []string{"Opening question?"}}
		loop, _ := newTestLoop(t, client, command+"\n")

		sess := session.New("p", session.IntensityNietzsche)
		outcome, err := loop.Run(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, session.OutcomeSolved, outcome, "command %q", command)
		require.Len(t, sess.Transcript, 1)
		assert.Equal(t, session.ResponseSolved, sess.Transcript[0].Response)
	}
}

func TestLoopEmptyInputIgnored(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{"Opening question?"}}
	loop, _ := newTestLoop(t, client, "\n   \nquit\n")

	sess := session.New("p", session.IntensityNietzsche)
	outcome, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeAbandoned, outcome)
	require.Len(t, sess.Transcript, 1)
}

func TestLoopEndOfInputAbandonsWithoutSentinel(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{"Opening question?"}}
	loop, _ := newTestLoop(t, client, "")

	sess := session.New("p", session.IntensityNietzsche)
	outcome, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeAbandoned, outcome)
	assert.Empty(t, sess.Transcript)
}

func TestLoopInterruptAbandons(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{"Opening question?"}}
	loop, _ := newTestLoop(t, client, "first answer\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := session.New("p", session.IntensityNietzsche)
	outcome, err := loop.Run(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeAbandoned, outcome)
	assert.Empty(t, sess.Transcript)
}

func TestLoopGiveUpLifelineThenGaveUp(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{
		"Opening question?",
		"One last question: what haven't you looked at?",
	}}
	loop, out := newTestLoop(t, client, "i give up\ni give up\n")

	sess := session.New("p", session.IntensityNietzsche)
	outcome, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeAbandoned, outcome)

	require.Len(t, sess.Transcript, 2)
	assert.Equal(t, "i give up", sess.Transcript[0].Response)
	assert.Equal(t, session.ResponseGaveUp, sess.Transcript[1].Response)
	assert.Equal(t, "One last question: what haven't you looked at?", sess.Transcript[1].Question)
	assert.Contains(t, out.String(), "[Lifeline — one more question before you go]")

	// The lifeline call carries the explicit final plea.
	lifelineReq := client.generateCalls[1]
	last := lifelineReq.Messages[len(lifelineReq.Messages)-1]
	assert.Equal(t, "I give up. I cannot figure this out.", last.Content)
}

func TestLoopNormalTurnFlow(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{
		"Opening question?",
		"What does the log say at that timestamp?",
	}}
	loop, out := newTestLoop(t, client, "the request times out after 30s\nsolved\n")

	sess := session.New("p", session.IntensityNietzsche)
	outcome, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeSolved, outcome)

	require.Len(t, sess.Transcript, 2)
	assert.Equal(t, "the request times out after 30s", sess.Transcript[0].Response)
	assert.Equal(t, session.ResponseSolved, sess.Transcript[1].Response)
	assert.Contains(t, out.String(), "[Turn 2]")

	// Second generation sees the conversation so far.
	req := client.generateCalls[1]
	assert.Equal(t, "p", req.Messages[0].Content)
	assert.Equal(t, "Opening question?", req.Messages[1].Content)
	assert.Equal(t, "the request times out after 30s", req.Messages[2].Content)
	assert.Contains(t, req.System, "Turn: 2")
}

func TestLoopQuoteSuggestionFlowsIntoPrompt(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{
		"Opening question?",
		"Why do you want the answer handed to you?",
	}}
	loop, _ := newTestLoop(t, client, "just tell me the answer\nexit\n")

	sess := session.New("p", session.IntensityNietzsche)
	_, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)

	req := client.generateCalls[1]
	assert.Contains(t, req.System, "<suggested_quote>")

	// The suggested quote is recorded on the turn it accompanied.
	require.Len(t, sess.Transcript, 2)
	assert.NotNil(t, sess.Transcript[1].QuoteUsed)
}

func TestLoopFileDetectionEnrichesContext(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{
		"Opening question?",
		"What is on line 3?",
	}}
	loop, _ := newTestLoop(t, client, "the bug is in ./server/router.go\nexit\n")
	loop.readFile = func(path string) (string, bool) {
		if path == "./server/router.go" {
			return "1: package server", true
		}
		return "", false
	}

	sess := session.New("p", session.IntensityNietzsche)
	_, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, []string{"./server/router.go"}, sess.CodeFiles)
	req := client.generateCalls[1]
	assert.Contains(t, req.System, "--- File: ./server/router.go ---")

	// First file analysis upgrades the model tier.
	require.Len(t, sess.Transcript, 2)
	assert.Equal(t, llm.DefaultDeepModel, sess.Transcript[1].Model)
}

func TestLoopInitialFileDetection(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{"Opening question?"}}
	loop, _ := newTestLoop(t, client, "exit\n")
	loop.readFile = func(path string) (string, bool) { return "1: content", true }

	sess := session.New("crash in ./main.go on start", session.IntensityNietzsche)
	_, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, []string{"./main.go"}, sess.CodeFiles)
	opening := client.generateCalls[0]
	assert.Contains(t, opening.System, "--- File: ./main.go ---")
	assert.Equal(t, llm.DefaultDeepModel, opening.Model)
	require.Len(t, sess.Transcript, 1)
	assert.Equal(t, llm.DefaultDeepModel, sess.Transcript[0].Model)
}

func TestLoopInvalidResponseFallsBack(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{
		"The fix is to flip the flag.", // invalid stream
		"The solution is the config.",  // invalid reprompt
	}}
	loop, _ := newTestLoop(t, client, "exit\n")

	sess := session.New("p", session.IntensityZarathustra)
	outcome, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeAbandoned, outcome)

	require.Len(t, sess.Transcript, 1)
	question := sess.Transcript[0].Question
	assert.Contains(t, []string{
		"You're avoiding the hard question. What are you afraid to find?",
		"Your hypothesis is untested. What would disprove it?",
		"Stop theorizing. What does the actual execution trace show you?",
	}, question)
}

func TestLoopInvalidResponseRepromptSucceeds(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{
		"The fix is to flip the flag.",
		"What makes you trust that flag's default?",
	}}
	loop, _ := newTestLoop(t, client, "exit\n")

	sess := session.New("p", session.IntensityNietzsche)
	_, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "What makes you trust that flag's default?", sess.Transcript[0].Question)
}

func TestLoopOpeningFailurePropagates(t *testing.T) {
	client := &scriptedClient{generateErr: errors.New("api down")}
	loop, _ := newTestLoop(t, client, "")

	sess := session.New("p", session.IntensityNietzsche)
	_, err := loop.Run(context.Background(), sess)
	assert.Error(t, err)
}

func TestLoopMidSessionFailureAbandons(t *testing.T) {
	client := &scriptedClient{generateResponses: []string{"Opening question?"}}
	loop, _ := newTestLoop(t, client, "an answer\n")

	sess := session.New("p", session.IntensityNietzsche)
	outcome, err := loop.Run(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, session.OutcomeAbandoned, outcome)
	require.Len(t, sess.Transcript, 1)
	assert.Equal(t, "an answer", sess.Transcript[0].Response)
}
