package llm

import (
	"os"
	"sync"
)

// ModelSelector routes each turn to a model tier. The first time any
// given file appears in a turn, the deep model handles the analysis;
// later turns over the same files drop back to the conversation model.
type ModelSelector struct {
	conversationModel string
	deepModel         string

	mu       sync.Mutex
	analyzed map[string]struct{}
}

// NewModelSelector builds a selector with env overrides applied
// (ANTHROPIC_MODEL and ANTHROPIC_DEEP_MODEL).
func NewModelSelector() *ModelSelector {
	conversation := os.Getenv("ANTHROPIC_MODEL")
	if conversation == "" {
		conversation = DefaultConversationModel
	}
	deep := os.Getenv("ANTHROPIC_DEEP_MODEL")
	if deep == "" {
		deep = DefaultDeepModel
	}
	return &ModelSelector{
		conversationModel: conversation,
		deepModel:         deep,
		analyzed:          make(map[string]struct{}),
	}
}

// Conversation returns the routine-turn model.
func (s *ModelSelector) Conversation() string {
	return s.conversationModel
}

// ForFiles returns the model for a turn referencing the given files.
// Any file not yet analyzed promotes the turn to the deep model and
// marks every listed file as analyzed.
func (s *ModelSelector) ForFiles(paths []string) string {
	if len(paths) == 0 {
		return s.conversationModel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := false
	for _, p := range paths {
		if _, ok := s.analyzed[p]; !ok {
			fresh = true
		}
		s.analyzed[p] = struct{}{}
	}
	if fresh {
		return s.deepModel
	}
	return s.conversationModel
}

// Reset clears the analyzed-file memo.
func (s *ModelSelector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzed = make(map[string]struct{})
}
