package llm

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"

	"github.com/nietzschian/nietzschian/internal/session"
)

// answerPatterns are phrasings that indicate the model handed over a
// solution instead of asking. Any match invalidates the response.
var answerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bthe fix is\b`),
	regexp.MustCompile(`(?i)\byou should change\b`),
	regexp.MustCompile(`(?i)\btry doing\b`),
	regexp.MustCompile(`(?i)\btry changing\b`),
	regexp.MustCompile(`(?i)\btry replacing\b`),
	regexp.MustCompile(`(?i)\bhere'?s (?:the|a) (?:fix|solution|answer)\b`),
	regexp.MustCompile(`(?i)\bto fix this\b`),
	regexp.MustCompile(`(?i)\bthe solution is\b`),
	regexp.MustCompile(`(?i)\bjust (?:change|replace|update|add|remove)\b`),
	regexp.MustCompile(`(?i)\byou need to (?:change|replace|update|add|remove)\b`),
}

// codeFixPattern matches fenced code blocks annotated as corrections.
var codeFixPattern = regexp.MustCompile("(?is)```.*?(?://\\s*fix|//\\s*changed|//\\s*updated|→|=>.*fix).*?```")

// ValidateQuestion checks a generated response against the
// questions-only policy. The reason is empty for valid responses.
func ValidateQuestion(response string) (valid bool, reason string) {
	if !containsQuestion(response) {
		return false, "response contains no question"
	}
	for _, p := range answerPatterns {
		if p.MatchString(response) {
			return false, fmt.Sprintf("response matches answer pattern: %s", p.String())
		}
	}
	if codeFixPattern.MatchString(response) {
		return false, "response contains a code fix block"
	}
	return true, ""
}

func containsQuestion(response string) bool {
	for _, r := range response {
		if r == '?' {
			return true
		}
	}
	return false
}

const repromptInstruction = "Your previous response contained a direct answer or solution. " +
	"Rewrite it as a question that leads the developer to discover this themselves. " +
	"You must ONLY ask questions — never provide fixes or answers."

// RepromptInvalid asks the model once to rewrite an invalid response
// as a question. Returns ("", nil) when the rewrite is also invalid,
// signaling the caller to fall back to a canned question.
func RepromptInvalid(ctx context.Context, client Client, model, systemPrompt string, messages []Message, invalidResponse string) (string, error) {
	repromptMessages := make([]Message, 0, len(messages)+2)
	repromptMessages = append(repromptMessages, messages...)
	repromptMessages = append(repromptMessages,
		Message{Role: RoleAssistant, Content: invalidResponse},
		Message{Role: RoleUser, Content: repromptInstruction},
	)

	rewritten, err := client.Generate(ctx, GenerateRequest{
		Model:    model,
		System:   systemPrompt,
		Messages: repromptMessages,
	})
	if err != nil {
		return "", err
	}
	if valid, _ := ValidateQuestion(rewritten); !valid {
		return "", nil
	}
	return rewritten, nil
}

var fallbackQuestions = map[session.Intensity][]string{
	session.IntensitySocrates: {
		"What do you think might be happening here? What have you observed so far?",
		"Have you considered looking at the error message more carefully? What does it tell you?",
		"What would you expect to see if everything was working correctly?",
	},
	session.IntensityNietzsche: {
		"What evidence do you have for that assumption? Have you actually verified it?",
		"You seem to be guessing. What does the data actually show?",
		"What's the simplest thing you haven't checked yet?",
	},
	session.IntensityZarathustra: {
		"You're avoiding the hard question. What are you afraid to find?",
		"Your hypothesis is untested. What would disprove it?",
		"Stop theorizing. What does the actual execution trace show you?",
	},
}

// FallbackQuestion returns a canned question matching the intensity.
// Unknown intensities get the nietzsche set.
func FallbackQuestion(intensity session.Intensity) string {
	questions, ok := fallbackQuestions[intensity]
	if !ok {
		questions = fallbackQuestions[session.IntensityNietzsche]
	}
	return questions[rand.Intn(len(questions))]
}
