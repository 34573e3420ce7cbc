// Package docwriter consumes the assembler's structured-export output and
// renders a final document, substituting rich figure content per token.
//
// The DOCX writer proper is an external consumer; this package defines
// the contract and ships the plain-text implementation of it.
package docwriter

import (
	"fmt"
	"strings"

	"github.com/ebayer/folio/internal/figtab"
)

// Figure is the embeddable content for one figure token, supplied through
// the side table.
type Figure struct {
	Caption string
	Data    []byte // image bytes; nil means caption-only
}

// SideTable maps lowercase figure-token identifiers to embeddable
// content.
type SideTable map[string]Figure

// Writer renders structured-export text into a final document format.
type Writer interface {
	Write(text string, numbers figtab.Numbering, figures SideTable) (string, error)
}

// TextWriter renders to plain text: figure tokens become numbered caption
// blocks, table tokens become "Table N" references. Tokens without a
// matching side-table entry render an explicit missing-figure placeholder
// rather than being silently dropped.
type TextWriter struct{}

// Write substitutes every token in the structured-export text.
func (TextWriter) Write(text string, numbers figtab.Numbering, figures SideTable) (string, error) {
	out := figtab.ReplaceFigureTokens(text, func(id string) string {
		fig, ok := figures[strings.ToLower(id)]
		if !ok {
			return fmt.Sprintf("[missing figure: %s]", id)
		}
		n := numbers.Figures[strings.ToLower(id)]
		if n == 0 {
			return fmt.Sprintf("[missing figure: %s]", id)
		}
		if fig.Caption != "" {
			return fmt.Sprintf("[Figure %d: %s]", n, fig.Caption)
		}
		return fmt.Sprintf("[Figure %d]", n)
	})

	out = figtab.ReplaceTableTokens(out, func(id string) string {
		n := numbers.Tables[strings.ToLower(id)]
		if n == 0 {
			return fmt.Sprintf("[missing table: %s]", id)
		}
		return fmt.Sprintf("Table %d", n)
	})

	return out, nil
}
