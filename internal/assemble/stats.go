package assemble

import (
	"regexp"
	"strings"
)

// Section stats are heuristic quality signals surfaced by `folio check`:
// word and sentence counts, inline citation counts, and density warnings.

var (
	sentenceEndRe    = regexp.MustCompile(`[.!?](\s|$)`)
	inlineNumericRe  = regexp.MustCompile(`\[(?:\d+(?:–\d+)?(?:,\s*\d+(?:–\d+)?)*)\]`)
	inlineAuthorRe   = regexp.MustCompile(`\([^)]+\d{4}[a-z]?(?:;[^)]*\d{4}[a-z]?)*\)`)
	figureMentionRe  = regexp.MustCompile(`(?i)\{fig:|Figure\s+\d`)
	resultsSectionRe = regexp.MustCompile(`(?i)results`)
	introSectionRe   = regexp.MustCompile(`(?i)introduction`)
)

// densityTargets is the expected citations per 150 words per density
// setting.
var densityTargets = map[string]float64{
	"normal":  0.7,
	"dense":   1.2,
	"extra":   1.8,
	"extreme": 2.4,
}

// Stats summarizes one section's text.
type Stats struct {
	Words     int      `json:"words"`
	Sentences int      `json:"sentences"`
	Citations int      `json:"citations"`
	Expected  int      `json:"expected_citations"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ComputeStats counts words, sentences, and inline citations, and emits
// heuristic warnings for short or under-cited sections.
func ComputeStats(text, density, sectionName string) Stats {
	var s Stats

	trimmed := strings.TrimSpace(text)
	if trimmed != "" {
		s.Words = len(strings.Fields(trimmed))
	}
	s.Sentences = len(sentenceEndRe.FindAllString(text, -1))
	s.Citations = len(inlineNumericRe.FindAllString(text, -1)) + len(inlineAuthorRe.FindAllString(text, -1))

	target, ok := densityTargets[density]
	if !ok {
		target = densityTargets["normal"]
	}
	s.Expected = int(float64(s.Words)/150.0*target + 0.5)
	if s.Expected < 1 {
		s.Expected = 1
	}

	if s.Words < 120 {
		s.Warnings = append(s.Warnings, "This section is quite short (<120 words).")
	}
	if s.Citations < s.Expected {
		s.Warnings = append(s.Warnings, "Citation density is low for \""+density+"\".")
	}
	if resultsSectionRe.MatchString(sectionName) && !figureMentionRe.MatchString(text) {
		s.Warnings = append(s.Warnings, "Results often benefit from at least one figure or table reference.")
	}
	if introSectionRe.MatchString(sectionName) && s.Citations < 2 {
		s.Warnings = append(s.Warnings, "Introductions typically cite at least 2 foundational works.")
	}
	return s
}
