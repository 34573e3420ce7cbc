// Package figtab numbers figure and table tokens and renders them as
// "Figure N" / "Table N" text.
//
// Tokens have the form {fig:some-id} and {tab:some-id}. Numbering is
// assigned by first appearance across the section traversal order, then
// by library order for items never referenced in text, so every library
// item has a number and the List of Figures/Tables is complete.
package figtab

import (
	"fmt"
	"sort"
	"strings"
)

// Item is a figure or table in the manuscript's library.
type Item struct {
	ID      string `json:"id"`
	Caption string `json:"caption,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Library holds the manuscript's figures and tables in upload order.
type Library struct {
	Figures []Item `json:"figures,omitempty"`
	Tables  []Item `json:"tables,omitempty"`
}

// Numbering maps lowercase item identifiers to their assigned numbers.
// Figure and table numbering are independent of each other and of the
// citation numbering map.
type Numbering struct {
	Figures map[string]int
	Tables  map[string]int
}

// BuildNumbering assigns figure and table numbers in two passes.
//
// Pass 1 scans section texts in manuscript order and numbers library items
// by first textual appearance. Pass 2 numbers library items never
// referenced in text, in library order. Tokens naming identifiers outside
// the library get no number and later render with a "?".
func BuildNumbering(sectionTexts []string, lib Library) Numbering {
	n := Numbering{
		Figures: make(map[string]int),
		Tables:  make(map[string]int),
	}

	figIDs := idSet(lib.Figures)
	tabIDs := idSet(lib.Tables)

	nextFig, nextTab := 1, 1
	for _, text := range sectionTexts {
		for _, id := range scanTokens(text, "fig") {
			if figIDs[id] && n.Figures[id] == 0 {
				n.Figures[id] = nextFig
				nextFig++
			}
		}
		for _, id := range scanTokens(text, "tab") {
			if tabIDs[id] && n.Tables[id] == 0 {
				n.Tables[id] = nextTab
				nextTab++
			}
		}
	}

	// Pass 2: unreferenced library items, in library order.
	for _, it := range lib.Figures {
		id := strings.ToLower(it.ID)
		if id != "" && n.Figures[id] == 0 {
			n.Figures[id] = nextFig
			nextFig++
		}
	}
	for _, it := range lib.Tables {
		id := strings.ToLower(it.ID)
		if id != "" && n.Tables[id] == 0 {
			n.Tables[id] = nextTab
			nextTab++
		}
	}

	return n
}

// Apply replaces every figure/table token with its rendered text. Tokens
// whose identifier has no assigned number render as "Figure ?"/"Table ?"
// rather than disappearing: a missing figure is a document defect the
// reader must see.
func (n Numbering) Apply(text string) string {
	out := replaceTokens(text, "fig", func(id string) string {
		if num := n.Figures[id]; num > 0 {
			return fmt.Sprintf("Figure %d", num)
		}
		return "Figure ?"
	})
	out = replaceTokens(out, "tab", func(id string) string {
		if num := n.Tables[id]; num > 0 {
			return fmt.Sprintf("Table %d", num)
		}
		return "Table ?"
	})
	return out
}

// ListEntry is one line of a List of Figures or List of Tables.
type ListEntry struct {
	Number  int
	Caption string
}

// Lists renders the "List of Figures" and "List of Tables" bodies, one
// numbered caption per line, ordered by assigned number.
func (n Numbering) Lists(lib Library) (listOfFigures, listOfTables string) {
	return renderList(n.Figures, lib.Figures), renderList(n.Tables, lib.Tables)
}

func renderList(numbers map[string]int, items []Item) string {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[strings.ToLower(it.ID)] = it
	}

	entries := make([]ListEntry, 0, len(numbers))
	for id, num := range numbers {
		it := byID[id]
		cap := it.Caption
		if cap == "" {
			cap = it.Name
		}
		if cap == "" {
			cap = "(no caption)"
		}
		entries = append(entries, ListEntry{Number: num, Caption: cap})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Number < entries[j].Number })

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. %s", e.Number, e.Caption)
	}
	return strings.Join(lines, "\n")
}

func idSet(items []Item) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID != "" {
			set[strings.ToLower(it.ID)] = true
		}
	}
	return set
}
