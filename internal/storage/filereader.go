package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// maxFileSize keeps single files well under context limits.
	maxFileSize = 100_000

	// Truncation shape for oversized files: opening lines keep the
	// imports and setup, trailing lines keep the most recent code.
	maxLinesForContext = 500
	headLines          = 100
	tailLines          = 400
)

// pathToken matches one whole candidate token: a path starting with
// '.', '~', or '/', with a 1-10 character extension.
var pathToken = regexp.MustCompile(`^[.~/][\w./\-]+\.\w{1,10}$`)

func isTokenBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '"', '\'', '`', '(', '[', '{':
		return true
	}
	return false
}

// DetectFilePaths extracts file-path-looking tokens from free text,
// deduplicated in order of first appearance. URLs and comment markers
// are excluded.
func DetectFilePaths(text string) []string {
	seen := make(map[string]struct{})
	var paths []string

	for _, token := range strings.FieldsFunc(text, isTokenBoundary) {
		token = strings.TrimRight(token, ",:;)}]")
		if token == "" || strings.HasPrefix(token, "//") || strings.HasPrefix(token, "http") {
			continue
		}
		if !pathToken.MatchString(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		paths = append(paths, token)
	}
	return paths
}

// ReadCodeFile reads a referenced file and returns its line-numbered
// content. Oversized files are truncated to head and tail sections.
// Any failure (missing file, directory, unreadable) returns ("",
// false); enrichment never aborts a session.
func ReadCodeFile(path string) (string, bool) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return "", false
	}

	if info.Size() > maxFileSize {
		return truncateToRelevantSection(string(content)), true
	}
	return addLineNumbers(string(content)), true
}

func addLineNumbers(content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", i+1, line)
	}
	return b.String()
}

func truncateToRelevantSection(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLinesForContext {
		return addLineNumbers(content)
	}

	omitted := len(lines) - headLines - tailLines
	truncated := make([]string, 0, headLines+tailLines+1)
	truncated = append(truncated, lines[:headLines]...)
	truncated = append(truncated, fmt.Sprintf("\n... (%d lines omitted) ...\n", omitted))
	truncated = append(truncated, lines[len(lines)-tailLines:]...)
	return addLineNumbers(strings.Join(truncated, "\n"))
}

// CodeContext accumulates referenced files in insertion order and
// formats them for the system prompt.
type CodeContext struct {
	paths    []string
	contents map[string]string
}

// NewCodeContext creates an empty code context.
func NewCodeContext() *CodeContext {
	return &CodeContext{contents: make(map[string]string)}
}

// Has reports whether a path was already added.
func (c *CodeContext) Has(path string) bool {
	_, ok := c.contents[path]
	return ok
}

// Add stores a file's prepared content. Re-adding a path replaces its
// content without changing its position.
func (c *CodeContext) Add(path, content string) {
	if !c.Has(path) {
		c.paths = append(c.paths, path)
	}
	c.contents[path] = content
}

// Len returns the number of stored files.
func (c *CodeContext) Len() int {
	return len(c.paths)
}

// Format renders all stored files as prompt sections, or "" when
// empty.
func (c *CodeContext) Format() string {
	if len(c.paths) == 0 {
		return ""
	}
	sections := make([]string, 0, len(c.paths))
	for _, path := range c.paths {
		sections = append(sections, fmt.Sprintf("--- File: %s ---\n%s", path, c.contents[path]))
	}
	return strings.Join(sections, "\n\n")
}
