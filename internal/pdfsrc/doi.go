// Package pdfsrc mines DOI candidates from uploaded source PDFs and free
// text, feeding reference lookup.
package pdfsrc

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiPattern matches DOIs: 10.XXXX/... with 4+ registrant digits.
var doiPattern = regexp.MustCompile(`\b10\.\d{4,9}/[^\s"'<>(){}|\\^~\[\]` + "`" + `]+`)

// maxScanPages bounds how much of a PDF is scanned for DOIs. Reference
// lists cluster at the end, but scanning everything is cheap enough at
// this bound.
const maxScanPages = 30

// ExtractDOIs extracts unique DOI candidates from a PDF file, in order of
// first appearance.
func ExtractDOIs(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := r.NumPage()
	if pages > maxScanPages {
		pages = maxScanPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return FindDOIs(b.String()), nil
}

// FindDOIs extracts unique DOI candidates from free text, in order of
// first appearance, with trailing punctuation stripped.
func FindDOIs(text string) []string {
	seen := make(map[string]bool)
	var dois []string
	for _, m := range doiPattern.FindAllString(text, -1) {
		doi := strings.TrimRight(m, ").,;:")
		if !isValidDOI(doi) {
			continue
		}
		lower := strings.ToLower(doi)
		if !seen[lower] {
			seen[lower] = true
			dois = append(dois, doi)
		}
	}
	return dois
}

// isValidDOI performs basic validation on a DOI candidate.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}
