// Package reference defines the bibliographic records a manuscript cites
// and the keyed, ordered collection that deduplicates them.
package reference

import (
	"strings"

	"github.com/google/uuid"
)

// Reference represents a bibliographic record for a cited work.
type Reference struct {
	// Classification
	Type string `json:"type"` // article-journal, chapter, book, ...

	// Metadata
	Title     string   `json:"title"`
	Authors   []Author `json:"authors"`
	Year      int      `json:"year"`
	Container string   `json:"container"` // Journal, proceedings, or preprint server

	// Locators
	Volume string `json:"volume,omitempty"`
	Issue  string `json:"issue,omitempty"`
	Pages  string `json:"pages,omitempty"`

	// Identifiers
	DOI string `json:"doi,omitempty"`
	URL string `json:"url,omitempty"`
	ID  string `json:"id,omitempty"` // Explicit identifier (PMID, arXiv id, user-assigned)
}

// Author represents a single author with family and given name parts.
type Author struct {
	Family string `json:"family"`
	Given  string `json:"given,omitempty"`
}

// FirstAuthorFamily returns the family name of the first author, or empty
// if the reference has no authors.
func (r Reference) FirstAuthorFamily() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0].Family
}

// DeriveKey derives the stable deduplication key for a reference.
// Priority: normalized DOI > explicit identifier > normalized title.
// References with none of the three get a random key, so they are never
// merged away.
func DeriveKey(r Reference) string {
	if r.DOI != "" {
		return "doi:" + strings.ToLower(strings.TrimSpace(r.DOI))
	}
	if r.ID != "" {
		return strings.ToLower(strings.TrimSpace(r.ID))
	}
	if r.Title != "" {
		return "title:" + NormalizeTitle(r.Title)
	}
	return "tmp:" + uuid.NewString()
}

// NormalizeTitle lowercases a title and collapses all whitespace and
// punctuation runs to single spaces, for use in title-based keys.
func NormalizeTitle(title string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(title) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
