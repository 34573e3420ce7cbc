// Package rewrite sends prose to an external paraphrasing service while
// guaranteeing that protected substrings (citations and figure/table
// tokens) are neither lost, duplicated, nor altered.
//
// The guarantee is structural, not semantic: a signature of protected
// content counts is enforced across the untrusted call, with a segmented
// retry and a revert-to-original fallback when it cannot be met.
package rewrite

// Level is the fixed vocabulary of rewrite intensities.
type Level string

const (
	LevelProofread Level = "proofread"
	LevelLight     Level = "light"
	LevelMedium    Level = "medium"
	LevelHeavy     Level = "heavy"
	LevelStronger1 Level = "stronger-1"
	LevelStronger2 Level = "stronger-2"
)

var levelInstructions = map[Level]string{
	LevelProofread: "Proofread the text. Fix grammar, spelling, and punctuation only; do not rephrase.",
	LevelLight:     "Lightly vary phrasing and rhythm while preserving meaning and structure.",
	LevelMedium:    "Rephrase sentences with moderate variation in syntax and word choice, preserving meaning.",
	LevelHeavy:     "Substantially rewrite the prose with varied sentence structure and vocabulary, preserving meaning.",
	LevelStronger1: "Aggressively rework the prose: restructure sentences, vary openings and cadence, preserve all meaning.",
	LevelStronger2: "Maximally rework the prose: reorder clauses, vary length and rhythm throughout, preserve all meaning and every bracketed or braced token exactly as written.",
}

// ParseLevel maps a user-supplied string to a Level. Unknown values fall
// back to light.
func ParseLevel(s string) Level {
	l := Level(s)
	if _, ok := levelInstructions[l]; ok {
		return l
	}
	return LevelLight
}

// Instruction returns the fixed rewrite instruction for the level.
func (l Level) Instruction() string {
	if ins, ok := levelInstructions[l]; ok {
		return ins
	}
	return levelInstructions[LevelLight]
}

// Levels returns the vocabulary in increasing intensity order.
func Levels() []Level {
	return []Level{LevelProofread, LevelLight, LevelMedium, LevelHeavy, LevelStronger1, LevelStronger2}
}
