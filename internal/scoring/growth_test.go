package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nietzschian/nietzschian/internal/session"
)

func sessionWithScores(outcome session.Outcome, assumption, evidence, speed int) *session.Session {
	s := session.New("p", session.IntensityNietzsche)
	s.Outcome = outcome
	s.SkillScores = session.SkillScores{
		AssumptionChecking: assumption,
		EvidenceGathering:  evidence,
		RootCauseSpeed:     speed,
	}
	return s
}

func TestComputeGrowthProfileNilForNoSessions(t *testing.T) {
	assert.Nil(t, ComputeGrowthProfile(nil))
}

func TestComputeGrowthProfileCounts(t *testing.T) {
	sessions := []*session.Session{
		sessionWithScores(session.OutcomeSolved, 6, 6, 6),
		sessionWithScores(session.OutcomeAbandoned, 4, 4, 4),
		sessionWithScores(session.OutcomeSolved, 5, 5, 5),
	}

	p := ComputeGrowthProfile(sessions)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.TotalSessions)
	assert.Equal(t, 2, p.SolvedCount)
	assert.Equal(t, 1, p.AbandonedCount)
	assert.Equal(t, session.SkillScores{AssumptionChecking: 5, EvidenceGathering: 5, RootCauseSpeed: 5}, p.AverageScores)
}

func TestTrendsStableWithFewSessions(t *testing.T) {
	p := ComputeGrowthProfile([]*session.Session{
		sessionWithScores(session.OutcomeSolved, 9, 9, 9),
	})
	require.NotNil(t, p)
	assert.Equal(t, TrendStable, p.RecentTrend.AssumptionChecking)
}

func TestTrendsCompareRecentBlockAgainstPrevious(t *testing.T) {
	var sessions []*session.Session
	// Previous block: five sessions at 3 / 8 / 5.
	for i := 0; i < 5; i++ {
		sessions = append(sessions, sessionWithScores(session.OutcomeAbandoned, 3, 8, 5))
	}
	// Recent block: five sessions at 6 / 5 / 6.
	for i := 0; i < 5; i++ {
		sessions = append(sessions, sessionWithScores(session.OutcomeSolved, 6, 5, 6))
	}

	p := ComputeGrowthProfile(sessions)
	require.NotNil(t, p)
	assert.Equal(t, TrendImproving, p.RecentTrend.AssumptionChecking)
	assert.Equal(t, TrendDeclining, p.RecentTrend.EvidenceGathering)
	// Delta of exactly +1 stays inside the stable band.
	assert.Equal(t, TrendStable, p.RecentTrend.RootCauseSpeed)
}

func TestTrendsPartialPreviousBlock(t *testing.T) {
	// Seven sessions: previous block is the first two, recent the last five.
	var sessions []*session.Session
	sessions = append(sessions,
		sessionWithScores(session.OutcomeAbandoned, 2, 5, 5),
		sessionWithScores(session.OutcomeAbandoned, 2, 5, 5),
	)
	for i := 0; i < 5; i++ {
		sessions = append(sessions, sessionWithScores(session.OutcomeSolved, 8, 5, 5))
	}

	p := ComputeGrowthProfile(sessions)
	require.NotNil(t, p)
	assert.Equal(t, TrendImproving, p.RecentTrend.AssumptionChecking)
	assert.Equal(t, TrendStable, p.RecentTrend.EvidenceGathering)
}
