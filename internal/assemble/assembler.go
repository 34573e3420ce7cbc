// Package assemble orders manuscript sections, resolves citation markers
// and figure/table tokens, and produces the final document text.
package assemble

import (
	"strings"

	"github.com/ebayer/folio/internal/bibliography"
	"github.com/ebayer/folio/internal/cite"
	"github.com/ebayer/folio/internal/figtab"
	"github.com/ebayer/folio/internal/reference"
	"github.com/ebayer/folio/internal/style"
)

// Section is one user-authored manuscript section.
type Section struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Raw     string `json:"raw"` // raw text with markers and tokens
	Enabled bool   `json:"enabled"`
	System  bool   `json:"system,omitempty"` // auto-generated (references); never assembled from Raw
}

// Manuscript is everything an assembly pass consumes.
type Manuscript struct {
	Front    FrontMatter
	StyleID  string
	Sections []Section
	Refs     *reference.Collection
	Library  figtab.Library
}

// Mode selects how figure/table tokens are rendered.
type Mode int

const (
	// ModeDisplay converts tokens to "Figure N"/"Table N" text.
	ModeDisplay Mode = iota
	// ModeExport keeps raw tokens intact so a downstream document writer
	// can substitute rich content per token.
	ModeExport
)

// Options controls one assembly pass.
type Options struct {
	Mode Mode

	// Renumber builds a contiguous numbering map from first appearance
	// instead of numbering by collection position. Numeric styles only.
	Renumber bool

	// Sanitize converts loose author-year parentheticals to markers
	// before resolution.
	Sanitize bool

	// Engine, when set, renders the bibliography through the declarative
	// style engine (with deterministic fallback).
	Engine *bibliography.Engine
}

// Piece is one assembled section.
type Piece struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Output is the result of an assembly pass.
type Output struct {
	Pieces        []Piece        `json:"pieces"`
	Bibliography  []string       `json:"bibliography,omitempty"`
	ListOfFigures string         `json:"list_of_figures,omitempty"`
	ListOfTables  string         `json:"list_of_tables,omitempty"`
	UsedKeys      []string       `json:"used_keys,omitempty"`
	Numbers       cite.NumberMap `json:"numbers,omitempty"`
	Text          string         `json:"text"`
}

// Build assembles the manuscript. All sections complete before the
// bibliography and lists are finalized, since cited-only filtering
// depends on the full set of used keys.
func Build(m Manuscript, opts Options) Output {
	styleID := m.StyleID
	if styleID == "" {
		styleID = style.DefaultStyleID
	}
	refs := m.Refs
	if refs == nil {
		refs = reference.NewCollection()
	}

	active := activeSections(m.Sections)

	texts := make([]string, len(active))
	for i, s := range active {
		raw := s.Raw
		if opts.Sanitize {
			raw, _ = cite.Sanitize(raw, refs)
		}
		texts[i] = raw
	}

	var numbers cite.NumberMap
	if opts.Renumber && style.FamilyOf(styleID) == style.Numeric {
		numbers = cite.BuildNumberMap(texts, refs)
	}

	figNums := figtab.BuildNumbering(texts, m.Library)

	var out Output
	out.Numbers = numbers
	usedSet := make(map[string]bool)

	for i, s := range active {
		res := cite.Apply(texts[i], styleID, refs, numbers)
		text := res.Text
		if opts.Mode == ModeDisplay {
			text = figNums.Apply(text)
		}
		out.Pieces = append(out.Pieces, Piece{ID: s.ID, Title: s.Name, Text: text})
		for _, k := range res.UsedKeys {
			if !usedSet[k] {
				usedSet[k] = true
				out.UsedKeys = append(out.UsedKeys, k)
			}
		}
	}

	out.Bibliography = bibliography.Format(refs, bibliography.Options{
		StyleID:   styleID,
		CitedKeys: out.UsedKeys,
		Numbers:   numbers,
		Engine:    opts.Engine,
	})
	out.ListOfFigures, out.ListOfTables = figNums.Lists(m.Library)
	out.Text = renderDocument(m.Front, out)
	return out
}

// activeSections filters to enabled, non-system sections in manuscript
// order.
func activeSections(sections []Section) []Section {
	var active []Section
	for _, s := range sections {
		if s.Enabled && !s.System {
			active = append(active, s)
		}
	}
	return active
}

// renderDocument concatenates front matter, section bodies, and the
// auto-generated blocks. Lists and bibliography are appended only when
// non-empty.
func renderDocument(front FrontMatter, out Output) string {
	var blocks []string

	if fm := front.Render(); fm != "" {
		blocks = append(blocks, fm)
	}
	for _, p := range out.Pieces {
		blocks = append(blocks, "# "+p.Title+"\n\n"+p.Text)
	}
	if strings.TrimSpace(out.ListOfFigures) != "" {
		blocks = append(blocks, "# List of Figures\n\n"+out.ListOfFigures)
	}
	if strings.TrimSpace(out.ListOfTables) != "" {
		blocks = append(blocks, "# List of Tables\n\n"+out.ListOfTables)
	}
	if len(out.Bibliography) > 0 {
		blocks = append(blocks, "# References\n\n"+strings.Join(out.Bibliography, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
