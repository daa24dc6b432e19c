package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nietzschian/nietzschian/internal/quotes"
	"github.com/nietzschian/nietzschian/internal/session"
)

func TestSessionHeader(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.SessionHeader(session.IntensityZarathustra)

	assert.Contains(t, out.String(), "Nietzschian Debugger")
	assert.Contains(t, out.String(), "[Zarathustra mode]")
}

func TestTurnAndLifelineLabels(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.TurnLabel(7)
	r.LifelineLabel()

	assert.Contains(t, out.String(), "[Turn 7]")
	assert.Contains(t, out.String(), "[Lifeline — one more question before you go]")
}

func TestStreamTextAndClearLine(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.StreamText("partial")
	r.ClearLine()

	assert.Contains(t, out.String(), "partial")
	assert.Contains(t, out.String(), "\r\x1b[K")
}

func TestAPIKeyHelp(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.APIKeyHelp()

	assert.Contains(t, out.String(), "Missing API Key")
	assert.Contains(t, out.String(), "export ANTHROPIC_API_KEY=your-key-here")
	assert.Contains(t, out.String(), "https://console.anthropic.com/")
}

func TestQuote(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.Quote(quotes.Quote{Text: "No man was ever wise by chance.", Philosopher: "Seneca"})

	assert.Contains(t, out.String(), "No man was ever wise by chance.")
	assert.Contains(t, out.String(), "Seneca")
}
