package bibliography

import (
	"strings"

	"github.com/ebayer/folio/internal/cite"
	"github.com/ebayer/folio/internal/reference"
	"github.com/ebayer/folio/internal/style"
)

// Options selects what to render and through which path.
type Options struct {
	StyleID string

	// CitedKeys filters the list to keys the marker resolver recorded as
	// used, in first-use order. Nil renders the full collection.
	CitedKeys []string

	// Numbers orders and labels numeric entries by a contiguous numbering
	// map instead of insertion position.
	Numbers cite.NumberMap

	// Engine, when set, is tried first for exact style rendering. Any
	// engine failure silently falls back to the deterministic templates.
	Engine *Engine
}

// Format renders the reference list. It never fails: the deterministic
// path is the fallback for every engine error.
func Format(coll *reference.Collection, opts Options) []string {
	if coll == nil || coll.Len() == 0 {
		return nil
	}
	styleID := opts.StyleID
	if styleID == "" {
		styleID = style.DefaultStyleID
	}

	entries, labels := selectEntries(coll, styleID, opts)
	if len(entries) == 0 {
		return nil
	}

	if opts.Engine != nil {
		if lines, err := opts.Engine.Render(styleID, entries, labels); err == nil {
			return lines
		}
		// Engine failures are expected (missing or malformed definitions)
		// and must never reach the user.
	}

	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, renderEntry(styleID, e.Reference, labels[i]))
	}
	return lines
}

// selectEntries resolves ordering and numeric labels for the requested
// variant, shared by both rendering paths.
func selectEntries(coll *reference.Collection, styleID string, opts Options) ([]reference.Entry, []int) {
	numeric := style.FamilyOf(styleID) == style.Numeric

	// Numbering-map ordering (contiguous renumbering), numeric only.
	if numeric && len(opts.Numbers) > 0 {
		var entries []reference.Entry
		var labels []int
		for _, k := range opts.Numbers.KeysByNumber() {
			if ref, ok := coll.Resolve(k); ok {
				entries = append(entries, reference.Entry{Key: k, Reference: ref})
				labels = append(labels, opts.Numbers[k])
			}
		}
		return entries, labels
	}

	// Cited-only filtering.
	if opts.CitedKeys != nil {
		if !numeric {
			// Author-date: first-cited order.
			var entries []reference.Entry
			var labels []int
			for _, k := range opts.CitedKeys {
				k = strings.ToLower(k)
				if ref, ok := coll.Resolve(k); ok {
					entries = append(entries, reference.Entry{Key: k, Reference: ref})
					labels = append(labels, 0)
				}
			}
			return entries, labels
		}

		// Numeric: collection order, original labels preserved.
		cited := make(map[string]bool, len(opts.CitedKeys))
		for _, k := range opts.CitedKeys {
			cited[strings.ToLower(k)] = true
		}
		var entries []reference.Entry
		var labels []int
		for i, e := range coll.Entries() {
			if cited[e.Key] {
				entries = append(entries, e)
				labels = append(labels, i+1)
			}
		}
		return entries, labels
	}

	// Full collection, insertion order.
	entries := coll.Entries()
	labels := make([]int, len(entries))
	for i := range entries {
		labels[i] = i + 1
	}
	return entries, labels
}
