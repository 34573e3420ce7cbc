package cite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ebayer/folio/internal/reference"
)

// Generated prose sometimes arrives with ad hoc "(Author, 2025; Lee, 2024)"
// citations instead of canonical markers. Sanitize converts the ones it can
// match against the collection; everything else is left exactly as written.

var (
	// parentheticalRe matches a parenthetical group containing a four-digit
	// year (with an optional disambiguating letter suffix).
	parentheticalRe = regexp.MustCompile(`\(([^()]*\d{4}[a-z]?[^()]*)\)`)

	// partSplitRe splits a parenthetical into per-work parts.
	partSplitRe = regexp.MustCompile(`(?i);|\band\b`)

	// authorYearPartRe captures a leading capitalized family name and a
	// four-digit year from one part, e.g. "Bruno et al., 2025".
	authorYearPartRe = regexp.MustCompile(`([A-Z][A-Za-z\-']+)[^0-9]*(\d{4})`)
)

// Sanitize rewrites loose author-year parentheticals into canonical
// markers wherever every extractable part matches a reference by exact
// first-author family (case-insensitive) and year. Parts that match
// nothing leave the original parenthetical untouched; keys are never
// invented. Returns the new text and the keys that were mapped.
func Sanitize(text string, coll *reference.Collection) (string, []string) {
	if text == "" || coll == nil || coll.Len() == 0 {
		return text, nil
	}

	mapped := make(map[string]bool)
	var mappedOrder []string

	out := parentheticalRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[1 : len(m)-1]
		var keys []string
		for _, part := range partSplitRe.Split(inner, -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sub := authorYearPartRe.FindStringSubmatch(part)
			if sub == nil {
				continue
			}
			key, ok := matchAuthorYear(coll, sub[1], sub[2])
			if !ok {
				// An unmatched work in the group would be silently lost
				// if we rewrote; leave the whole parenthetical alone.
				return m
			}
			keys = append(keys, key)
		}
		if len(keys) == 0 {
			return m
		}
		for _, key := range keys {
			if !mapped[key] {
				mapped[key] = true
				mappedOrder = append(mappedOrder, key)
			}
		}
		return "{{cite:" + strings.Join(keys, ",") + "}}"
	})

	return out, mappedOrder
}

// matchAuthorYear finds the key of a reference whose first author's family
// name and year match exactly. No fuzzy matching: a wrong citation is
// worse than a missed one.
func matchAuthorYear(coll *reference.Collection, family, year string) (string, bool) {
	wantFam := strings.ToLower(family)
	wantYear := year
	for _, e := range coll.Entries() {
		if strings.ToLower(e.FirstAuthorFamily()) == wantFam &&
			fmt.Sprintf("%d", e.Year) == wantYear {
			return e.Key, true
		}
	}
	return "", false
}
