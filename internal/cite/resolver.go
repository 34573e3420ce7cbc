// Package cite resolves inline citation markers into style-formatted
// in-text citations and builds the numbering maps numeric styles use.
//
// A marker has the form {{cite:key1,key2,...}}. Markers exist only in raw
// section text; resolving a marker erases it and leaves formatted output.
package cite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ebayer/folio/internal/reference"
	"github.com/ebayer/folio/internal/style"
)

// markerRe matches a citation marker and captures its key list.
var markerRe = regexp.MustCompile(`(?i)\{\{cite:([^}]+)\}\}`)

// NumberMap assigns integers to reference keys by first appearance in
// document traversal order. It is shared by every marker in a document
// when the active style is numeric.
type NumberMap map[string]int

// Result is the output of resolving the markers in one text.
type Result struct {
	Text     string   // text with markers replaced by formatted citations
	UsedKeys []string // keys actually rendered, in first-use order
}

// Apply resolves every citation marker in text against the collection.
//
// Keys absent from the collection are silently dropped. A marker whose
// keys all drop renders as the empty string. numbers may be nil, in which
// case numeric styles number by collection insertion order.
func Apply(text, styleID string, coll *reference.Collection, numbers NumberMap) Result {
	used := make(map[string]bool)
	var usedOrder []string

	out := markerRe.ReplaceAllStringFunc(text, func(m string) string {
		raw := markerRe.FindStringSubmatch(m)[1]
		keys := splitKeys(raw)

		var kept []string
		seen := make(map[string]bool)
		for _, k := range keys {
			if !coll.Has(k) || seen[k] {
				continue // unknown keys drop; duplicates within one marker collapse
			}
			seen[k] = true
			kept = append(kept, k)
			if !used[k] {
				used[k] = true
				usedOrder = append(usedOrder, k)
			}
		}
		return formatInText(styleID, coll, kept, numbers)
	})

	return Result{Text: out, UsedKeys: usedOrder}
}

// BuildNumberMap traverses section texts in manuscript order, scanning
// markers left to right, and assigns the next unused integer (from 1) to
// each collection key not yet seen. This defines "first appearance".
func BuildNumberMap(sectionTexts []string, coll *reference.Collection) NumberMap {
	numbers := make(NumberMap)
	next := 1
	for _, text := range sectionTexts {
		for _, m := range markerRe.FindAllStringSubmatch(text, -1) {
			for _, k := range splitKeys(m[1]) {
				if !coll.Has(k) {
					continue
				}
				if _, ok := numbers[k]; !ok {
					numbers[k] = next
					next++
				}
			}
		}
	}
	return numbers
}

// KeysByNumber returns the keys of a numbering map sorted by their
// assigned number.
func (n NumberMap) KeysByNumber() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return n[keys[i]] < n[keys[j]] })
	return keys
}

// formatInText renders one marker's retained keys in the given style.
func formatInText(styleID string, coll *reference.Collection, keys []string, numbers NumberMap) string {
	if len(keys) == 0 {
		return ""
	}

	if style.IsAuthorDate(styleID) {
		var parts []string
		for _, k := range keys {
			ref, ok := coll.Resolve(k)
			if !ok {
				continue
			}
			fam := ref.FirstAuthorFamily()
			if fam == "" {
				fam = "Author"
			}
			if len(ref.Authors) > 1 {
				parts = append(parts, fmt.Sprintf("%s et al., %d", fam, ref.Year))
			} else {
				parts = append(parts, fmt.Sprintf("%s, %d", fam, ref.Year))
			}
		}
		if len(parts) == 0 {
			return ""
		}
		return "(" + strings.Join(parts, "; ") + ")"
	}

	// Numeric family, and the fallback for unknown styles.
	var nums []int
	for _, k := range keys {
		if numbers != nil {
			if n, ok := numbers[k]; ok {
				nums = append(nums, n)
			}
			continue
		}
		if n, ok := coll.Position(k); ok {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return ""
	}
	sort.Ints(nums)
	return "[" + CompressRanges(nums) + "]"
}

// CompressRanges joins sorted numbers, compressing consecutive runs into
// en-dash ranges: 1,2,3,5,6 -> "1–3, 5–6".
func CompressRanges(nums []int) string {
	var parts []string
	start, prev := -1, -1
	flush := func() {
		if start < 0 {
			return
		}
		if start == prev {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d–%d", start, prev))
		}
	}
	for _, n := range nums {
		switch {
		case start < 0:
			start, prev = n, n
		case n == prev+1:
			prev = n
		default:
			flush()
			start, prev = n, n
		}
	}
	flush()
	return strings.Join(parts, ", ")
}

// splitKeys normalizes a marker's raw key list.
func splitKeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		k := strings.ToLower(strings.TrimSpace(part))
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
