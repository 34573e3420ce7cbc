package rewrite

import (
	"fmt"
	"regexp"
)

// Protected-span patterns. A protected span is a substring that must
// survive a rewrite unchanged: raw citation markers, resolved citation
// output (bracketed numeric groups or parenthesized author-year groups),
// and raw figure/table tokens. A literal placeholder already present in
// the input is also treated as a span, so protection never collides with
// it and the round trip stays exact.
var (
	citeMarkerRe  = regexp.MustCompile(`(?i)\{\{cite:[^}]+\}\}`)
	numericCiteRe = regexp.MustCompile(`\[\d+(?:–\d+)?(?:,\s*\d+(?:–\d+)?)*\]`)
	authorYearRe  = regexp.MustCompile(`\([^()]*\b\d{4}[a-z]?\b[^()]*\)`)
	figTokenRe    = regexp.MustCompile(`(?i)\{fig:[a-z0-9\-_]+\}`)
	tabTokenRe    = regexp.MustCompile(`(?i)\{tab:[a-z0-9\-_]+\}`)

	placeholderRe = regexp.MustCompile(`⟦(\d+)⟧`)

	// protectedRe matches any protected span, scanned left to right.
	protectedRe = regexp.MustCompile(citeMarkerRe.String() +
		`|` + numericCiteRe.String() +
		`|` + authorYearRe.String() +
		`|` + figTokenRe.String() +
		`|` + tabTokenRe.String() +
		`|` + placeholderRe.String())
)

// Protected is a text with its protected spans swapped for unique
// positional placeholders, plus the table needed to restore them.
type Protected struct {
	// Text is the placeholder-substituted text sent to the service.
	Text string

	spans []string // placeholder index -> original substring
}

// Protect replaces every protected span with a unique placeholder and
// records the restoration table.
func Protect(text string) *Protected {
	p := &Protected{}
	p.Text = protectedRe.ReplaceAllStringFunc(text, func(m string) string {
		ph := placeholder(len(p.spans))
		p.spans = append(p.spans, m)
		return ph
	})
	return p
}

// Restore substitutes original spans back for their placeholders. A
// placeholder the service dropped simply restores nothing, and one it
// duplicated restores twice; the signature check catches both.
func (p *Protected) Restore(text string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		var idx int
		fmt.Sscanf(m, "⟦%d⟧", &idx)
		if idx < 0 || idx >= len(p.spans) {
			return "" // placeholder the service invented
		}
		return p.spans[idx]
	})
}

// SpanCount returns the number of protected spans recorded.
func (p *Protected) SpanCount() int {
	return len(p.spans)
}

func placeholder(i int) string {
	return fmt.Sprintf("⟦%d⟧", i)
}

// Segment is one alternating span of a text: either a protected span
// (kept verbatim) or free prose between protected spans.
type Segment struct {
	Text      string
	Protected bool
}

// SplitProtected splits a text into alternating protected/free segments,
// concatenation of which reproduces the input exactly. The segmented
// retry rewrites only the free segments.
func SplitProtected(text string) []Segment {
	var segs []Segment
	last := 0
	for _, loc := range protectedRe.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Text: text[last:loc[0]]})
		}
		segs = append(segs, Segment{Text: text[loc[0]:loc[1]], Protected: true})
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Text: text[last:]})
	}
	return segs
}
