// Package style classifies citation style identifiers into the two
// families the engine renders: numeric and author-date.
package style

// Family is the closed set of citation style families.
type Family int

const (
	// Numeric styles render in-text citations as bracketed numbers.
	Numeric Family = iota
	// AuthorDate styles render in-text citations as (Family, Year).
	AuthorDate
)

// DefaultStyleID is used when a caller supplies no style.
const DefaultStyleID = "ieee"

var numericStyles = map[string]bool{
	"ieee":      true,
	"vancouver": true,
	"ama":       true,
	"nature":    true,
	"acm":       true,
	"acs":       true,
}

var authorDateStyles = map[string]bool{
	"apa-7":          true,
	"chicago-ad":     true,
	"icheme-harvard": true,
}

// FamilyOf returns the family of a style identifier. Unknown identifiers
// fall back to Numeric, matching the in-text resolver's default.
func FamilyOf(styleID string) Family {
	if authorDateStyles[styleID] {
		return AuthorDate
	}
	return Numeric
}

// IsNumeric reports whether the style identifier belongs to the numeric family.
func IsNumeric(styleID string) bool {
	return numericStyles[styleID]
}

// IsAuthorDate reports whether the style identifier belongs to the
// author-date family.
func IsAuthorDate(styleID string) bool {
	return authorDateStyles[styleID]
}

// Known reports whether the style identifier belongs to either family.
func Known(styleID string) bool {
	return numericStyles[styleID] || authorDateStyles[styleID]
}

// IDs returns all known style identifiers, numeric family first.
func IDs() []string {
	ids := []string{"ieee", "vancouver", "ama", "nature", "acm", "acs",
		"apa-7", "chicago-ad", "icheme-harvard"}
	return ids
}
