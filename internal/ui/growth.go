package ui

import (
	"fmt"
	"strings"

	"github.com/nietzschian/nietzschian/internal/quotes"
	"github.com/nietzschian/nietzschian/internal/scoring"
	"github.com/nietzschian/nietzschian/internal/session"
)

const (
	barFilled = "█"
	barEmpty  = "░"
	barLength = 10
)

func renderBar(score int) string {
	clamped := score
	if clamped < 1 {
		clamped = 1
	}
	if clamped > barLength {
		clamped = barLength
	}
	return strings.Repeat(barFilled, clamped) + strings.Repeat(barEmpty, barLength-clamped)
}

func scoreLabel(score int) string {
	switch {
	case score >= 8:
		return "strong"
	case score >= 5:
		return "moderate"
	default:
		return "weak"
	}
}

func trendIndicator(trend scoring.Trend) string {
	switch trend {
	case scoring.TrendImproving:
		return greenStyle.Render("improving")
	case scoring.TrendDeclining:
		return redStyle.Render("declining")
	default:
		return dimStyle.Render("stable")
	}
}

type dimensionRow struct {
	name  string
	score int
	trend scoring.Trend
}

func dimensionRows(scores session.SkillScores, profile *scoring.GrowthProfile) []dimensionRow {
	rows := []dimensionRow{
		{name: "Assumption-checking", score: scores.AssumptionChecking},
		{name: "Evidence-gathering", score: scores.EvidenceGathering},
		{name: "Root cause speed", score: scores.RootCauseSpeed},
	}
	if profile != nil {
		rows[0].trend = profile.RecentTrend.AssumptionChecking
		rows[1].trend = profile.RecentTrend.EvidenceGathering
		rows[2].trend = profile.RecentTrend.RootCauseSpeed
	}
	return rows
}

func renderRows(rows []dimensionRow, withTrends bool) []string {
	var lines []string
	for i, row := range rows {
		connector := "┣"
		if i == len(rows)-1 {
			connector = "┗"
		}
		line := fmt.Sprintf("%s %-22s %s  %s", connector, row.name, renderBar(row.score), scoreLabel(row.score))
		if withTrends && row.trend != "" && row.trend != scoring.TrendStable {
			line += " — " + trendIndicator(row.trend)
		}
		lines = append(lines, line)
	}
	return lines
}

// RenderGrowthScore formats the end-of-session display: outcome line,
// per-dimension bars with trends, session totals, and the closing
// quote.
func RenderGrowthScore(sess *session.Session, profile *scoring.GrowthProfile, closing *quotes.Quote) string {
	var lines []string

	outcomeLabel := "Abandoned"
	if sess.Outcome == session.OutcomeSolved {
		outcomeLabel = "Solved"
	}
	lines = append(lines, "", boldStyle.Render(fmt.Sprintf(
		"Session Complete — %d questions to root cause (%s)",
		sess.QuestionsToRootCause, outcomeLabel)))
	lines = append(lines, "", boldStyle.Render("Your Debugging Profile:"))

	lines = append(lines, renderRows(dimensionRows(sess.SkillScores, profile), true)...)

	if profile != nil && profile.TotalSessions > 1 {
		lines = append(lines, "", dimStyle.Render(fmt.Sprintf(
			"%d sessions total | %d solved | %d abandoned",
			profile.TotalSessions, profile.SolvedCount, profile.AbandonedCount)))
	}

	if closing != nil {
		lines = append(lines, "",
			dimStyle.Render(fmt.Sprintf("%q", closing.Text)),
			dimStyle.Render(fmt.Sprintf(" — %s", closing.Philosopher)))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// RenderGrowthProfile formats the standalone cross-session profile for
// the growth command.
func RenderGrowthProfile(profile *scoring.GrowthProfile) string {
	if profile == nil {
		return "No sessions recorded yet. Run a debug session first.\n"
	}

	var lines []string
	lines = append(lines, "", boldStyle.Render("Debugging Growth Profile"), "")
	lines = append(lines, renderRows(dimensionRows(profile.AverageScores, profile), true)...)
	lines = append(lines, "", dimStyle.Render(fmt.Sprintf(
		"%d sessions total | %d solved | %d abandoned",
		profile.TotalSessions, profile.SolvedCount, profile.AbandonedCount)), "")
	return strings.Join(lines, "\n")
}

// GrowthScore writes the end-of-session display.
func (r *Renderer) GrowthScore(sess *session.Session, profile *scoring.GrowthProfile, closing *quotes.Quote) {
	fmt.Fprintln(r.out, RenderGrowthScore(sess, profile, closing))
}

// GrowthProfile writes the standalone profile.
func (r *Renderer) GrowthProfile(profile *scoring.GrowthProfile) {
	fmt.Fprintln(r.out, RenderGrowthProfile(profile))
}
