// Package bibliography renders the reference list, either through a
// built-in deterministic formatter or by delegating to a declarative
// style engine with fallback to the deterministic path.
package bibliography

import (
	"fmt"
	"strings"

	"github.com/ebayer/folio/internal/reference"
	"github.com/ebayer/folio/internal/style"
)

// The deterministic templates are fixed per style family: authors, title,
// container, volume/issue/pages, year, identifier, in that order. They are
// a reasonable default, not a reproduction of any published style guide.

// renderEntry renders one reference-list line. label is the numeric label
// (ignored by author-date styles).
func renderEntry(styleID string, ref reference.Reference, label int) string {
	if style.FamilyOf(styleID) == style.AuthorDate {
		return authorDateLine(ref)
	}
	return numericLine(ref, label)
}

// numericLine: "[n] Family G., Other H. Title. Container Vol(Issue):Pages (Year). doi:..."
func numericLine(ref reference.Reference, label int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] ", label)
	b.WriteString(joinAuthors(ref.Authors, authorInitialAfter, ", "))
	b.WriteString(". ")
	b.WriteString(ref.Title)
	b.WriteString(". ")
	b.WriteString(ref.Container)
	if ref.Volume != "" {
		b.WriteString(" " + ref.Volume)
	}
	if ref.Issue != "" {
		b.WriteString("(" + ref.Issue + ")")
	}
	if ref.Pages != "" {
		b.WriteString(":" + ref.Pages)
	}
	fmt.Fprintf(&b, " (%d).", ref.Year)
	if ref.DOI != "" {
		b.WriteString(" doi:" + ref.DOI)
	} else if ref.URL != "" {
		b.WriteString(" " + ref.URL)
	}
	return b.String()
}

// authorDateLine: "Family, G.; Other, H. (Year). Title. Container Vol(Issue), Pages. https://doi.org/..."
func authorDateLine(ref reference.Reference) string {
	var b strings.Builder
	b.WriteString(joinAuthors(ref.Authors, authorCommaInitial, "; "))
	fmt.Fprintf(&b, " (%d). ", ref.Year)
	b.WriteString(ref.Title)
	b.WriteString(". ")
	b.WriteString(ref.Container)
	if ref.Volume != "" {
		b.WriteString(" " + ref.Volume)
	}
	if ref.Issue != "" {
		b.WriteString("(" + ref.Issue + ")")
	}
	if ref.Pages != "" {
		b.WriteString(", " + ref.Pages)
	}
	b.WriteString(".")
	if ref.DOI != "" {
		b.WriteString(" https://doi.org/" + ref.DOI)
	} else if ref.URL != "" {
		b.WriteString(" " + ref.URL)
	}
	return b.String()
}

// Author rendering modes shared with the style engine.
func authorInitialAfter(a reference.Author) string {
	if a.Family == "" {
		return a.Given
	}
	if a.Given == "" {
		return a.Family
	}
	return a.Family + " " + string([]rune(a.Given)[0]) + "."
}

func authorCommaInitial(a reference.Author) string {
	if a.Family == "" {
		return a.Given
	}
	if a.Given == "" {
		return a.Family
	}
	return a.Family + ", " + string([]rune(a.Given)[0]) + "."
}

func joinAuthors(authors []reference.Author, render func(reference.Author) string, sep string) string {
	var parts []string
	for _, a := range authors {
		if s := render(a); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
