// Package session defines the debugging session model: the turn
// ledger, skill scores, and behavior tags.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nietzschian/nietzschian/internal/quotes"
)

// SchemaVersion is bumped whenever the persisted session shape changes.
// The store fills missing fields from older documents with defaults.
const SchemaVersion = 1

// Intensity selects one of the three questioning personas.
type Intensity string

const (
	IntensitySocrates    Intensity = "socrates"
	IntensityNietzsche   Intensity = "nietzsche"
	IntensityZarathustra Intensity = "zarathustra"
)

// ParseIntensity validates a user-supplied intensity name.
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(s) {
	case IntensitySocrates, IntensityNietzsche, IntensityZarathustra:
		return Intensity(s), nil
	}
	return "", fmt.Errorf("invalid intensity %q (valid: socrates, nietzsche, zarathustra)", s)
}

// Outcome is the terminal state of a session.
type Outcome string

const (
	OutcomeSolved    Outcome = "solved"
	OutcomeAbandoned Outcome = "abandoned"
)

// Sentinel responses recorded for non-substantive final turns.
const (
	ResponseExited = "[exited]"
	ResponseSolved = "[solved]"
	ResponseGaveUp = "[gave up]"
)

// Dimension is one of the three tracked debugging skill dimensions.
type Dimension string

const (
	DimensionAssumptionChecking Dimension = "assumptionChecking"
	DimensionEvidenceGathering  Dimension = "evidenceGathering"
	DimensionRootCauseSpeed     Dimension = "rootCauseSpeed"
)

// SkillScores holds the three skill metrics, each in [1,10].
type SkillScores struct {
	AssumptionChecking int `json:"assumptionChecking"`
	EvidenceGathering  int `json:"evidenceGathering"`
	RootCauseSpeed     int `json:"rootCauseSpeed"`
}

// DefaultScores is the neutral baseline used before scoring runs and
// when scoring fails.
func DefaultScores() SkillScores {
	return SkillScores{AssumptionChecking: 5, EvidenceGathering: 5, RootCauseSpeed: 5}
}

// BehaviorTag records an observed debugging behavior on a specific turn
// together with the skill dimension it counts toward.
type BehaviorTag struct {
	TurnNumber int       `json:"turnNumber"`
	Tag        string    `json:"tag"`
	Dimension  Dimension `json:"dimension"`
}

// Turn is one question/response exchange. Turn numbers are 1-based and
// strictly increasing; turns are never reordered or removed.
type Turn struct {
	TurnNumber   int           `json:"turnNumber"`
	Question     string        `json:"question"`
	Response     string        `json:"response"`
	Model        string        `json:"model"`
	QuoteUsed    *quotes.Quote `json:"quoteUsed,omitempty"`
	BehaviorTags []string      `json:"behaviorTags"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Session is one debugging conversation. The loop owns it exclusively
// while interactive; after Finalize it is read-only input to scoring
// and display.
type Session struct {
	SchemaVersion        int           `json:"schemaVersion"`
	ID                   string        `json:"id"`
	Timestamp            time.Time     `json:"timestamp"`
	EndTimestamp         time.Time     `json:"endTimestamp"`
	ProblemDescription   string        `json:"problemDescription"`
	Intensity            Intensity     `json:"intensity"`
	Outcome              Outcome       `json:"outcome"`
	QuestionsToRootCause int           `json:"questionsToRootCause"`
	CodeFiles            []string      `json:"codeFiles"`
	Transcript           []Turn        `json:"transcript"`
	SkillScores          SkillScores   `json:"skillScores"`
	BehaviorTags         []BehaviorTag `json:"behaviorTags"`
}

// New creates a session with neutral defaults. Outcome starts as
// abandoned; only Finalize can change it.
func New(problemDescription string, intensity Intensity) *Session {
	return &Session{
		SchemaVersion:      SchemaVersion,
		ID:                 uuid.NewString(),
		Timestamp:          time.Now(),
		ProblemDescription: problemDescription,
		Intensity:          intensity,
		Outcome:            OutcomeAbandoned,
		CodeFiles:          []string{},
		Transcript:         []Turn{},
		SkillScores:        DefaultScores(),
		BehaviorTags:       []BehaviorTag{},
	}
}

// AddTurn appends a turn to the transcript. The turn number is always
// one past the prior transcript length.
func (s *Session) AddTurn(question, response, model string, quoteUsed *quotes.Quote) Turn {
	turn := Turn{
		TurnNumber:   len(s.Transcript) + 1,
		Question:     question,
		Response:     response,
		Model:        model,
		QuoteUsed:    quoteUsed,
		BehaviorTags: []string{},
		Timestamp:    time.Now(),
	}
	s.Transcript = append(s.Transcript, turn)
	s.QuestionsToRootCause = len(s.Transcript)
	return turn
}

// AddCodeFile records a referenced file path, deduplicated, preserving
// insertion order.
func (s *Session) AddCodeFile(path string) {
	for _, existing := range s.CodeFiles {
		if existing == path {
			return
		}
	}
	s.CodeFiles = append(s.CodeFiles, path)
}

// Finalize stamps the terminal outcome. Scores and tags are optional
// because scoring is best-effort.
func (s *Session) Finalize(outcome Outcome, scores *SkillScores, tags []BehaviorTag) {
	s.EndTimestamp = time.Now()
	s.Outcome = outcome
	if scores != nil {
		s.SkillScores = *scores
	}
	if tags != nil {
		s.BehaviorTags = tags
	}
}
