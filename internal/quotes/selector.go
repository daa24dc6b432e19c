package quotes

import (
	"math/rand"
	"regexp"
)

// Pattern groups are tested in fixed priority: avoidance first, then
// overwhelm, then strategy. The first group with any match wins.
var avoidancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bi don'?t (?:want to|care|think)\b`),
	regexp.MustCompile(`(?i)\bcan'?t you just\b`),
	regexp.MustCompile(`(?i)\bjust tell me\b`),
	regexp.MustCompile(`(?i)\bwhat'?s the (?:fix|answer|solution)\b`),
	regexp.MustCompile(`(?i)\bi'?m not sure (?:why|how)\b`),
	regexp.MustCompile(`(?i)\bthat'?s not (?:relevant|important)\b`),
	regexp.MustCompile(`(?i)\bskip\b`),
	regexp.MustCompile(`(?i)\bwhatever\b`),
}

var overwhelmPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bi don'?t know\b`),
	regexp.MustCompile(`(?i)\bi'?m (?:lost|confused|stuck|overwhelmed)\b`),
	regexp.MustCompile(`(?i)\bno idea\b`),
	regexp.MustCompile(`(?i)\bthis is too\b`),
	regexp.MustCompile(`(?i)\bi can'?t figure\b`),
	regexp.MustCompile(`(?i)\bhelp\b`),
	regexp.MustCompile(`(?i)\bi'?m not getting\b`),
	regexp.MustCompile(`(?i)\bgive up\b`),
}

var strategyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwhere (?:do i|should i) start\b`),
	regexp.MustCompile(`(?i)\bso many (?:things|options|possibilities)\b`),
	regexp.MustCompile(`(?i)\bmaybe (?:it'?s|i should)\b`),
	regexp.MustCompile(`(?i)\bor maybe\b`),
	regexp.MustCompile(`(?i)\bcould be (?:this|that|anything)\b`),
	regexp.MustCompile(`(?i)\bnot sure which\b`),
}

// DetectContext classifies a developer response into at most one
// emotional context. Returns false when no group matches.
func DetectContext(response string) (Context, bool) {
	for _, p := range avoidancePatterns {
		if p.MatchString(response) {
			return ContextAvoidance, true
		}
	}
	for _, p := range overwhelmPatterns {
		if p.MatchString(response) {
			return ContextOverwhelm, true
		}
	}
	for _, p := range strategyPatterns {
		if p.MatchString(response) {
			return ContextStrategy, true
		}
	}
	return "", false
}

// Select picks a random corpus quote matching the response's detected
// context, or nil when no context is detected.
func Select(response string) *Quote {
	context, ok := DetectContext(response)
	if !ok {
		return nil
	}
	matching := byContext(context)
	if len(matching) == 0 {
		return nil
	}
	q := matching[rand.Intn(len(matching))]
	return &q
}

// SelectClosing maps a session outcome to its closing quote context
// (solved -> victory, anything else -> perseverance) and picks a random
// quote within it. Both tags are populated in the corpus, so the result
// is never empty.
func SelectClosing(outcome string) Quote {
	context := ContextPerseverance
	if outcome == "solved" {
		context = ContextVictory
	}
	matching := byContext(context)
	return matching[rand.Intn(len(matching))]
}

func byContext(context Context) []Quote {
	var matching []Quote
	for _, q := range Corpus {
		if q.Context == context {
			matching = append(matching, q)
		}
	}
	return matching
}
