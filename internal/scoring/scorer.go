package scoring

import "github.com/nietzschian/nietzschian/internal/session"

var positiveTags = map[string]session.Dimension{
	"checked-logs":          session.DimensionEvidenceGathering,
	"questioned-assumption": session.DimensionAssumptionChecking,
	"narrowed-scope":        session.DimensionRootCauseSpeed,
}

var negativeTags = map[string]session.Dimension{
	"guessed-without-evidence": session.DimensionEvidenceGathering,
	"assumed-without-checking": session.DimensionAssumptionChecking,
	"asked-for-answer":         session.DimensionAssumptionChecking,
	"went-broad-unnecessarily": session.DimensionRootCauseSpeed,
}

const baseScore = 5

// ComputeSkillScores derives the three skill scores from behavior
// tags: base 5, +1 per positive tag, -1 per negative tag, clamped to
// [1,10]. Unknown tags are neutral.
func ComputeSkillScores(tags []session.BehaviorTag) session.SkillScores {
	scores := map[session.Dimension]int{
		session.DimensionAssumptionChecking: baseScore,
		session.DimensionEvidenceGathering:  baseScore,
		session.DimensionRootCauseSpeed:     baseScore,
	}

	for _, bt := range tags {
		if _, ok := positiveTags[bt.Tag]; ok {
			scores[bt.Dimension]++
		} else if _, ok := negativeTags[bt.Tag]; ok {
			scores[bt.Dimension]--
		}
	}

	return session.SkillScores{
		AssumptionChecking: clamp(scores[session.DimensionAssumptionChecking]),
		EvidenceGathering:  clamp(scores[session.DimensionEvidenceGathering]),
		RootCauseSpeed:     clamp(scores[session.DimensionRootCauseSpeed]),
	}
}

func clamp(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
