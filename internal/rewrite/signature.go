package rewrite

import (
	"fmt"
	"strings"
)

// Signature is the protected-content invariant: the counts of figure
// tokens, table tokens, and citation occurrences in a text. Two texts
// with equal signatures carry the same amount of protected content.
type Signature struct {
	Figures   int
	Tables    int
	Citations int
}

// ComputeSignature counts protected content in a text. Citation
// occurrences cover raw citation markers, bracketed numeric groups, and
// parenthesized author-year groups.
func ComputeSignature(text string) Signature {
	return Signature{
		Figures:   len(figTokenRe.FindAllString(text, -1)),
		Tables:    len(tabTokenRe.FindAllString(text, -1)),
		Citations: len(citeMarkerRe.FindAllString(text, -1)) +
			len(numericCiteRe.FindAllString(text, -1)) +
			len(authorYearRe.FindAllString(text, -1)),
	}
}

// Equal reports whether two signatures match.
func (s Signature) Equal(o Signature) bool {
	return s == o
}

// DescribeMismatch names every count that diverged, oldest first, in the
// form "citations 3→2". Returns "" when the signatures match.
func DescribeMismatch(want, got Signature) string {
	var parts []string
	if want.Figures != got.Figures {
		parts = append(parts, fmt.Sprintf("figures %d→%d", want.Figures, got.Figures))
	}
	if want.Tables != got.Tables {
		parts = append(parts, fmt.Sprintf("tables %d→%d", want.Tables, got.Tables))
	}
	if want.Citations != got.Citations {
		parts = append(parts, fmt.Sprintf("citations %d→%d", want.Citations, got.Citations))
	}
	return strings.Join(parts, ", ")
}
