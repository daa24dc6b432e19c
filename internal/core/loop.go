package core

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/nietzschian/nietzschian/internal/llm"
	"github.com/nietzschian/nietzschian/internal/prompts"
	"github.com/nietzschian/nietzschian/internal/quotes"
	"github.com/nietzschian/nietzschian/internal/session"
	"github.com/nietzschian/nietzschian/internal/storage"
	"github.com/nietzschian/nietzschian/internal/ui"
)

var exitCommands = map[string]bool{"exit": true, "quit": true}
var solveCommands = map[string]bool{"solved": true, "found it": true}

const giveUpCommand = "i give up"

// Loop drives one interactive debugging session from the opening
// question to a terminal outcome.
type Loop struct {
	client   llm.Client
	models   *llm.ModelSelector
	ctxMgr   *ContextManager
	ui       *ui.Renderer
	logger   *zap.Logger
	input    io.Reader
	readFile func(string) (string, bool)
}

// NewLoop wires a session loop. Input is the user's line stream,
// normally stdin.
func NewLoop(client llm.Client, models *llm.ModelSelector, renderer *ui.Renderer, logger *zap.Logger, input io.Reader) *Loop {
	return &Loop{
		client:   client,
		models:   models,
		ctxMgr:   NewContextManager(client, models.Conversation(), logger),
		ui:       renderer,
		logger:   logger,
		input:    input,
		readFile: storage.ReadCodeFile,
	}
}

// Run executes the session state machine. The returned error is
// non-nil only when the opening question cannot be generated; once the
// conversation is underway, failures degrade to an abandoned outcome
// instead of crashing mid-session.
func (l *Loop) Run(ctx context.Context, sess *session.Session) (session.Outcome, error) {
	lines := readLines(ctx, l.input)

	l.ui.SessionHeader(sess.Intensity)

	codeCtx := storage.NewCodeContext()
	initialPaths := storage.DetectFilePaths(sess.ProblemDescription)
	for _, path := range initialPaths {
		if content, ok := l.readFile(path); ok {
			codeCtx.Add(path, content)
			sess.AddCodeFile(path)
		}
	}

	model := l.models.Conversation()
	if len(initialPaths) > 0 {
		model = l.models.ForFiles(initialPaths)
	}

	rollingSummary := ""
	systemPrompt := prompts.SystemPrompt(prompts.Params{
		Intensity:          sess.Intensity,
		ProblemDescription: sess.ProblemDescription,
		CodeContext:        codeCtx.Format(),
		TurnNumber:         1,
	})

	opening, err := l.generateValidQuestion(ctx, systemPrompt,
		[]llm.Message{{Role: llm.RoleUser, Content: sess.ProblemDescription}},
		model, sess.Intensity)
	if err != nil {
		return session.OutcomeAbandoned, err
	}

	l.ui.NewLine()
	l.ui.TurnLabel(1)
	l.ui.Message(opening)
	l.ui.NewLine()

	currentQuestion := opening
	var pendingQuote *quotes.Quote

	// activeTurns is the conversation window sent to the model. It
	// tracks the transcript until compaction trims it; the transcript
	// itself is never shortened.
	var activeTurns []session.Turn
	lifelineOffered := false

	for {
		l.ui.Prompt()
		line, ok := nextLine(ctx, lines)
		if !ok {
			return session.OutcomeAbandoned, nil
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		switch {
		case exitCommands[lower]:
			sess.AddTurn(currentQuestion, session.ResponseExited, model, pendingQuote)
			return session.OutcomeAbandoned, nil

		case solveCommands[lower]:
			sess.AddTurn(currentQuestion, session.ResponseSolved, model, pendingQuote)
			return session.OutcomeSolved, nil

		case lower == giveUpCommand && !lifelineOffered:
			lifelineOffered = true
			turn := sess.AddTurn(currentQuestion, trimmed, model, pendingQuote)
			activeTurns = append(activeTurns, turn)

			lifelinePrompt := prompts.SystemPrompt(prompts.Params{
				Intensity:          sess.Intensity,
				ProblemDescription: sess.ProblemDescription,
				CodeContext:        codeCtx.Format(),
				RollingSummary:     rollingSummary,
				TurnNumber:         len(sess.Transcript) + 1,
			})
			messages := l.conversationMessages(sess.ProblemDescription, activeTurns)
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: "I give up. I cannot figure this out."})

			model = l.models.Conversation()
			lifelineQ, err := l.generateValidQuestion(ctx, lifelinePrompt, messages, model, sess.Intensity)
			if err != nil {
				l.logger.Warn("lifeline question failed", zap.Error(err))
				return session.OutcomeAbandoned, nil
			}

			l.ui.NewLine()
			l.ui.LifelineLabel()
			l.ui.Message(lifelineQ)
			l.ui.NewLine()
			currentQuestion = lifelineQ
			pendingQuote = nil

		case lower == giveUpCommand:
			sess.AddTurn(currentQuestion, session.ResponseGaveUp, model, pendingQuote)
			return session.OutcomeAbandoned, nil

		default:
			turn := sess.AddTurn(currentQuestion, trimmed, model, pendingQuote)
			activeTurns = append(activeTurns, turn)

			newPaths := storage.DetectFilePaths(trimmed)
			for _, path := range newPaths {
				if codeCtx.Has(path) {
					continue
				}
				if content, ok := l.readFile(path); ok {
					codeCtx.Add(path, content)
					sess.AddCodeFile(path)
				}
			}

			activeTurns, rollingSummary = l.ctxMgr.CheckAndCompact(ctx, systemPrompt, activeTurns, rollingSummary)

			quote := quotes.Select(trimmed)
			suggested := ""
			if quote != nil {
				suggested = quote.Text
			}

			turnNumber := len(sess.Transcript) + 1
			systemPrompt = prompts.SystemPrompt(prompts.Params{
				Intensity:          sess.Intensity,
				ProblemDescription: sess.ProblemDescription,
				CodeContext:        codeCtx.Format(),
				RollingSummary:     rollingSummary,
				TurnNumber:         turnNumber,
				SuggestedQuote:     suggested,
			})

			model = l.models.Conversation()
			if len(newPaths) > 0 {
				model = l.models.ForFiles(newPaths)
			}

			messages := l.conversationMessages(sess.ProblemDescription, activeTurns)
			nextQuestion, err := l.generateValidQuestion(ctx, systemPrompt, messages, model, sess.Intensity)
			if err != nil {
				l.logger.Warn("question generation failed mid-session", zap.Error(err))
				return session.OutcomeAbandoned, nil
			}

			l.ui.NewLine()
			l.ui.TurnLabel(turnNumber)
			l.ui.Message(nextQuestion)
			l.ui.NewLine()
			currentQuestion = nextQuestion
			pendingQuote = quote
		}
	}
}

// generateValidQuestion streams a candidate question, validates it,
// reprompts once on policy violation, and falls back to a canned
// question if the rewrite also fails. Transport errors are returned.
func (l *Loop) generateValidQuestion(ctx context.Context, systemPrompt string, messages []llm.Message, model string, intensity session.Intensity) (string, error) {
	fullText, err := l.client.Stream(ctx, llm.GenerateRequest{
		Model:    model,
		System:   systemPrompt,
		Messages: messages,
	}, llm.StreamCallbacks{
		OnText: l.ui.StreamText,
	})
	l.ui.ClearLine()
	if err != nil {
		return "", err
	}

	valid, reason := llm.ValidateQuestion(fullText)
	if valid {
		return fullText, nil
	}
	l.logger.Debug("generated response rejected", zap.String("reason", reason))

	reprompted, err := llm.RepromptInvalid(ctx, l.client, l.models.Conversation(), systemPrompt, messages, fullText)
	if err != nil {
		return "", err
	}
	if reprompted != "" {
		return reprompted, nil
	}

	return llm.FallbackQuestion(intensity), nil
}

// conversationMessages rebuilds the message array from the problem
// description and the active turn window. Sentinel responses (bracket
// prefixed) are omitted.
func (l *Loop) conversationMessages(problem string, turns []session.Turn) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleUser, Content: problem}}
	for _, turn := range turns {
		messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: turn.Question})
		if turn.Response != "" && !strings.HasPrefix(turn.Response, "[") {
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: turn.Response})
		}
	}
	return messages
}

// readLines feeds input lines through a channel so the loop can select
// against cancellation while blocked on a read. The channel closes on
// end of input.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func nextLine(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		return line, ok
	}
}
