package scoring

import (
	"math"

	"github.com/nietzschian/nietzschian/internal/session"
)

// Trend describes score movement between session blocks.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// TrendMap holds one trend per skill dimension.
type TrendMap struct {
	AssumptionChecking Trend `json:"assumptionChecking"`
	EvidenceGathering  Trend `json:"evidenceGathering"`
	RootCauseSpeed     Trend `json:"rootCauseSpeed"`
}

// GrowthProfile aggregates skill development across sessions.
type GrowthProfile struct {
	TotalSessions  int                 `json:"totalSessions"`
	SolvedCount    int                 `json:"solvedCount"`
	AbandonedCount int                 `json:"abandonedCount"`
	AverageScores  session.SkillScores `json:"averageScores"`
	RecentTrend    TrendMap            `json:"recentTrend"`
}

// ComputeGrowthProfile aggregates sessions in chronological order.
// Returns nil when there are no sessions.
func ComputeGrowthProfile(sessions []*session.Session) *GrowthProfile {
	if len(sessions) == 0 {
		return nil
	}

	solved := 0
	for _, s := range sessions {
		if s.Outcome == session.OutcomeSolved {
			solved++
		}
	}

	return &GrowthProfile{
		TotalSessions:  len(sessions),
		SolvedCount:    solved,
		AbandonedCount: len(sessions) - solved,
		AverageScores:  averageScores(sessions),
		RecentTrend:    computeTrends(sessions),
	}
}

func averageScores(sessions []*session.Session) session.SkillScores {
	if len(sessions) == 0 {
		return session.DefaultScores()
	}

	var sumAssumption, sumEvidence, sumSpeed int
	for _, s := range sessions {
		sumAssumption += s.SkillScores.AssumptionChecking
		sumEvidence += s.SkillScores.EvidenceGathering
		sumSpeed += s.SkillScores.RootCauseSpeed
	}

	n := float64(len(sessions))
	return session.SkillScores{
		AssumptionChecking: int(math.Round(float64(sumAssumption) / n)),
		EvidenceGathering:  int(math.Round(float64(sumEvidence) / n)),
		RootCauseSpeed:     int(math.Round(float64(sumSpeed) / n)),
	}
}

func computeTrends(sessions []*session.Session) TrendMap {
	stable := TrendMap{
		AssumptionChecking: TrendStable,
		EvidenceGathering:  TrendStable,
		RootCauseSpeed:     TrendStable,
	}
	if len(sessions) < 2 {
		return stable
	}

	recent := lastN(sessions, 5)
	previous := window(sessions, len(sessions)-10, len(sessions)-5)
	if len(previous) == 0 {
		return stable
	}

	recentAvg := averageScores(recent)
	previousAvg := averageScores(previous)

	return TrendMap{
		AssumptionChecking: trendOf(recentAvg.AssumptionChecking, previousAvg.AssumptionChecking),
		EvidenceGathering:  trendOf(recentAvg.EvidenceGathering, previousAvg.EvidenceGathering),
		RootCauseSpeed:     trendOf(recentAvg.RootCauseSpeed, previousAvg.RootCauseSpeed),
	}
}

// trendOf keeps a delta of exactly one inside the stable band.
func trendOf(recent, previous int) Trend {
	delta := recent - previous
	if delta > 1 {
		return TrendImproving
	}
	if delta < -1 {
		return TrendDeclining
	}
	return TrendStable
}

func lastN(s []*session.Session, n int) []*session.Session {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func window(s []*session.Session, from, to int) []*session.Session {
	if from < 0 {
		from = 0
	}
	if to < 0 {
		to = 0
	}
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return nil
	}
	return s[from:to]
}
