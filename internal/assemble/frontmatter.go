package assemble

import (
	"strconv"
	"strings"
)

// FrontMatter holds the title block generated separately from the body
// sections and prepended to the assembled document.
type FrontMatter struct {
	Title              string       `json:"title"`
	Authors            []AuthorLine `json:"authors,omitempty"`
	Affiliations       []string     `json:"affiliations,omitempty"`
	CorrespondingEmail string       `json:"corresponding_email,omitempty"`
}

// AuthorLine is one author in the byline. Affiliations are 1-based
// indices into FrontMatter.Affiliations, rendered as superscripts.
type AuthorLine struct {
	Name          string `json:"name"`
	Affiliations  []int  `json:"affiliations,omitempty"`
	Corresponding bool   `json:"corresponding,omitempty"`
}

var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

// Render produces the front-matter block: title, author byline with
// affiliation superscripts, numbered affiliations, and the corresponding
// author line. Empty front matter renders nothing.
func (f FrontMatter) Render() string {
	if f.Title == "" && len(f.Authors) == 0 {
		return ""
	}

	var b strings.Builder
	if f.Title != "" {
		b.WriteString(f.Title)
	}

	if len(f.Authors) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		var names []string
		for _, a := range f.Authors {
			name := a.Name
			for _, idx := range a.Affiliations {
				name += superscript(idx)
			}
			if a.Corresponding {
				name += "*"
			}
			names = append(names, name)
		}
		b.WriteString(strings.Join(names, ", "))
	}

	for i, aff := range f.Affiliations {
		b.WriteString("\n")
		b.WriteString(superscript(i+1) + " " + aff)
	}

	if f.CorrespondingEmail != "" {
		b.WriteString("\n* Corresponding author: " + f.CorrespondingEmail)
	}
	return b.String()
}

// superscript renders a positive integer with Unicode superscript digits.
func superscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if sup, ok := superscriptDigits[r]; ok {
			b.WriteRune(sup)
		}
	}
	return b.String()
}
