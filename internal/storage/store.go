// Package storage persists sessions as per-session JSON documents and
// reads referenced code files for prompt context.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nietzschian/nietzschian/internal/session"
)

// SessionsDir is the store location relative to the working directory.
const SessionsDir = ".nietzschian/sessions"

// Store handles persistence of sessions.
type Store struct {
	basePath string
}

// NewStore creates a store rooted at the given working directory.
func NewStore(workDir string) *Store {
	return &Store{basePath: filepath.Join(workDir, SessionsDir)}
}

// Save writes a session document, creating the directory as needed.
// Returns the path of the written file.
func (s *Store) Save(sess *session.Session) (string, error) {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create sessions directory: %w", err)
	}

	filename := filepath.Join(s.basePath, fmt.Sprintf("%s.json", sess.ID))
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write session file: %w", err)
	}
	return filename, nil
}

// Load retrieves one session by id, migrating older documents.
func (s *Store) Load(id string) (*session.Session, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, fmt.Sprintf("%s.json", id)))
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	migrate(&sess)
	return &sess, nil
}

// List returns all sessions in chronological order. Unreadable or
// corrupted files are skipped; a missing directory yields an empty
// list.
func (s *Store) List() ([]*session.Session, error) {
	entries, err := os.ReadDir(s.basePath)
	if os.IsNotExist(err) {
		return []*session.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions directory: %w", err)
	}

	var sessions []*session.Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			continue
		}

		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		migrate(&sess)
		sessions = append(sessions, &sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

// migrate fills fields that documents written before the current
// schema version lack. Migration is additive only.
func migrate(sess *session.Session) {
	if sess.SchemaVersion >= session.SchemaVersion {
		return
	}
	sess.SchemaVersion = session.SchemaVersion
	if sess.Timestamp.IsZero() {
		sess.Timestamp = time.Now()
	}
	if sess.EndTimestamp.IsZero() {
		sess.EndTimestamp = time.Now()
	}
	if sess.Intensity == "" {
		sess.Intensity = session.IntensityNietzsche
	}
	if sess.Outcome == "" {
		sess.Outcome = session.OutcomeAbandoned
	}
	if sess.CodeFiles == nil {
		sess.CodeFiles = []string{}
	}
	if sess.Transcript == nil {
		sess.Transcript = []session.Turn{}
	}
	if (sess.SkillScores == session.SkillScores{}) {
		sess.SkillScores = session.DefaultScores()
	}
	if sess.BehaviorTags == nil {
		sess.BehaviorTags = []session.BehaviorTag{}
	}
}
