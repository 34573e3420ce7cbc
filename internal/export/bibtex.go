// Package export renders the reference collection to interchange formats.
package export

import (
	"fmt"
	"strings"

	"github.com/ebayer/folio/internal/reference"
)

// ToBibTeX converts a keyed reference to a BibTeX entry. The collection
// key doubles as the cite key, with characters BibTeX dislikes replaced.
func ToBibTeX(e reference.Entry) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType(e.Reference), citeKey(e.Key)))

	if len(e.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(e.Authors)))
	}
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(e.Title)))
	if e.Container != "" {
		fieldName := "journal"
		if entryType(e.Reference) == "inproceedings" {
			fieldName = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(e.Container)))
	}
	b.WriteString(fmt.Sprintf("  year = {%d},\n", e.Year))
	if e.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", e.Volume))
	}
	if e.Issue != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", e.Issue))
	}
	if e.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", e.Pages))
	}
	if e.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", e.DOI))
	} else if e.URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", e.URL))
	}
	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts a whole collection to BibTeX.
func ToBibTeXList(coll *reference.Collection) string {
	var entries []string
	for _, e := range coll.Entries() {
		entries = append(entries, ToBibTeX(e))
	}
	return strings.Join(entries, "\n")
}

// entryType returns the BibTeX entry type for a reference.
func entryType(ref reference.Reference) string {
	venue := strings.ToLower(ref.Container)

	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}
	return "article"
}

// citeKey converts a collection key to a BibTeX-safe cite key.
func citeKey(key string) string {
	replacer := strings.NewReplacer(":", "_", "/", "_", " ", "-", ",", "", "{", "", "}", "")
	return replacer.Replace(key)
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First".
func formatAuthors(authors []reference.Author) string {
	var formatted []string
	for _, a := range authors {
		if a.Given != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", a.Family, a.Given))
		} else {
			formatted = append(formatted, a.Family)
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
