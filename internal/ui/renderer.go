// Package ui renders terminal output: session headers, turn labels,
// streamed question text, and the closing growth display.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nietzschian/nietzschian/internal/quotes"
	"github.com/nietzschian/nietzschian/internal/session"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// Renderer writes styled output to a terminal stream.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// StreamText writes raw streamed model text without a trailing
// newline.
func (r *Renderer) StreamText(text string) {
	fmt.Fprint(r.out, text)
}

// ClearLine erases the current terminal line.
func (r *Renderer) ClearLine() {
	fmt.Fprint(r.out, "\r\x1b[K")
}

// NewLine writes a single blank line.
func (r *Renderer) NewLine() {
	fmt.Fprintln(r.out)
}

// Message writes a plain line.
func (r *Renderer) Message(msg string) {
	fmt.Fprintln(r.out, msg)
}

// Dim writes a faint line.
func (r *Renderer) Dim(msg string) {
	fmt.Fprintln(r.out, dimStyle.Render(msg))
}

// Error writes an error line.
func (r *Renderer) Error(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", errHeadStyle.Render("Error:"), redStyle.Render(msg))
}

// Warning writes a warning line.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.out, yellowStyle.Render(msg))
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, greenStyle.Render(msg))
}

// Quote writes a dimmed quote with attribution.
func (r *Renderer) Quote(q quotes.Quote) {
	fmt.Fprintf(r.out, "\n%s\n%s\n",
		dimStyle.Render(fmt.Sprintf("%q", q.Text)),
		dimStyle.Render(fmt.Sprintf(" — %s", q.Philosopher)))
}

// SessionHeader announces the tool and active intensity.
func (r *Renderer) SessionHeader(intensity session.Intensity) {
	label := titleCase(string(intensity))
	fmt.Fprintf(r.out, "\n%s %s\n\n",
		titleStyle.Render("Nietzschian Debugger"),
		dimStyle.Render(fmt.Sprintf("[%s mode]", label)))
}

// TurnLabel writes the dim turn marker.
func (r *Renderer) TurnLabel(n int) {
	r.Dim(fmt.Sprintf("[Turn %d]", n))
}

// LifelineLabel marks the single post-give-up question.
func (r *Renderer) LifelineLabel() {
	r.Dim("[Lifeline — one more question before you go]")
}

// Prompt writes the input prompt without a newline.
func (r *Renderer) Prompt() {
	fmt.Fprint(r.out, boldStyle.Render("> "))
}

// APIKeyHelp explains how to configure credentials.
func (r *Renderer) APIKeyHelp() {
	fmt.Fprintf(r.out, `
%s

Set your Anthropic API key to use the Nietzschian Debugger:

  %s

Get a key at: %s

`,
		errHeadStyle.Render("Missing API Key"),
		boldStyle.Render("export ANTHROPIC_API_KEY=your-key-here"),
		cyanStyle.Render("https://console.anthropic.com/"))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
