package figtab

import (
	"regexp"
	"strings"
)

// Token syntax: {fig:micro-1}, {tab:summary_2}. Identifiers are
// case-insensitive and restricted to [a-z0-9-_].
var (
	figRe = regexp.MustCompile(`(?i)\{fig:([a-z0-9\-_]+)\}`)
	tabRe = regexp.MustCompile(`(?i)\{tab:([a-z0-9\-_]+)\}`)
)

func tokenPattern(kind string) *regexp.Regexp {
	if kind == "tab" {
		return tabRe
	}
	return figRe
}

// scanTokens returns the lowercase identifiers of all tokens of one kind,
// in order of appearance.
func scanTokens(text, kind string) []string {
	var ids []string
	for _, m := range tokenPattern(kind).FindAllStringSubmatch(text, -1) {
		ids = append(ids, strings.ToLower(m[1]))
	}
	return ids
}

// replaceTokens rewrites every token of one kind using render.
func replaceTokens(text, kind string, render func(id string) string) string {
	re := tokenPattern(kind)
	return re.ReplaceAllStringFunc(text, func(m string) string {
		id := strings.ToLower(re.FindStringSubmatch(m)[1])
		return render(id)
	})
}

// ReplaceFigureTokens rewrites every figure token using render, which
// receives the lowercase identifier.
func ReplaceFigureTokens(text string, render func(id string) string) string {
	return replaceTokens(text, "fig", render)
}

// ReplaceTableTokens rewrites every table token using render, which
// receives the lowercase identifier.
func ReplaceTableTokens(text string, render func(id string) string) string {
	return replaceTokens(text, "tab", render)
}

// CountTokens counts figure and table tokens in a text. The rewrite
// pipeline uses these counts as part of its protected-content signature.
func CountTokens(text string) (figures, tables int) {
	return len(figRe.FindAllString(text, -1)), len(tabRe.FindAllString(text, -1))
}

// FigurePattern and TablePattern expose the token syntax to packages that
// need to protect tokens without interpreting them.
func FigurePattern() *regexp.Regexp { return figRe }
func TablePattern() *regexp.Regexp  { return tabRe }
