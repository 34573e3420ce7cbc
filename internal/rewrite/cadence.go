package rewrite

import (
	"regexp"
	"strings"
	"unicode"
)

// The cadence pass is a purely local, deterministic set of light textual
// adjustments applied after a rewrite is accepted. It operates on the
// still-protected text (placeholders in place) so it cannot disturb
// protected content, and it is discarded if it changes the signature
// anyway.

// paragraphOpeners is the fixed pool rotated across alternating
// paragraphs.
var paragraphOpeners = []string{
	"Notably, ",
	"In practice, ",
	"Taken together, ",
	"Importantly, ",
}

// structuralSections are never given rotated openers.
var structuralSections = map[string]bool{
	"introduction": true,
	"methods":      true,
	"conclusion":   true,
}

var (
	wordRe           = regexp.MustCompile(`[A-Za-z]+`)
	spaceBeforePunct = regexp.MustCompile(` +([,.;:!?])`)
	multiSpaceRe     = regexp.MustCompile(`([^\s]) {2,}`)
)

// ApplyCadence returns the adjusted text. sectionName selects whether
// paragraph openers rotate; the other adjustments always run.
func ApplyCadence(text, sectionName string) string {
	paragraphs := strings.Split(text, "\n\n")
	rotate := !structuralSections[strings.ToLower(strings.TrimSpace(sectionName))]

	opener := 0
	for i, para := range paragraphs {
		para = collapseDuplicateWords(para)
		para = tidyPunctuation(para)
		para = dashOneWhich(para)
		if rotate && i%2 == 1 {
			para = rotateOpener(para, paragraphOpeners[opener%len(paragraphOpeners)])
			opener++
		}
		paragraphs[i] = para
	}
	return strings.Join(paragraphs, "\n\n")
}

// collapseDuplicateWords removes the second of two identical adjacent
// words separated only by spaces. Pure-letter words only, so placeholders
// are never touched.
func collapseDuplicateWords(s string) string {
	for {
		locs := wordRe.FindAllStringIndex(s, -1)
		i := duplicatePairAt(s, locs)
		if i < 0 {
			return s
		}
		s = s[:locs[i][1]] + s[locs[i+1][1]:]
	}
}

// duplicatePairAt returns the index of the first word whose successor is
// the same word across a spaces-only gap, or -1.
func duplicatePairAt(s string, locs [][]int) int {
	for i := 0; i+1 < len(locs); i++ {
		gap := s[locs[i][1]:locs[i+1][0]]
		if gap == "" || strings.Trim(gap, " ") != "" {
			continue
		}
		if s[locs[i][0]:locs[i][1]] == s[locs[i+1][0]:locs[i+1][1]] {
			return i
		}
	}
	return -1
}

// tidyPunctuation removes spaces before punctuation and collapses runs of
// spaces.
func tidyPunctuation(s string) string {
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	return multiSpaceRe.ReplaceAllString(s, "$1 ")
}

// dashOneWhich replaces at most one ", which" with " — which" per
// paragraph.
func dashOneWhich(s string) string {
	return strings.Replace(s, ", which", " — which", 1)
}

// rotateOpener prefixes a paragraph with a pool opener, lowercasing the
// original first word. Paragraphs already starting with an opener, or not
// starting with prose, are left alone.
func rotateOpener(para, opener string) string {
	trimmed := strings.TrimLeft(para, " ")
	if trimmed == "" {
		return para
	}
	first, _ := firstRune(trimmed)
	if !unicode.IsUpper(first) {
		return para
	}
	for _, o := range paragraphOpeners {
		if strings.HasPrefix(trimmed, o) || strings.HasPrefix(trimmed, strings.TrimSuffix(o, ", ")) {
			return para
		}
	}
	return opener + string(unicode.ToLower(first)) + trimmed[len(string(first)):]
}

func firstRune(s string) (rune, int) {
	for i, r := range s {
		_ = i
		return r, len(string(r))
	}
	return 0, 0
}
