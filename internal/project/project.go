// Package project persists the manuscript session: section drafts,
// figure/table libraries, front matter, and the reference collection.
//
// References live in a git-friendly JSONL file (the source of truth) with
// an ephemeral SQLite cache for listing and search. project.json holds
// everything else.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ebayer/folio/internal/assemble"
	"github.com/ebayer/folio/internal/config"
	"github.com/ebayer/folio/internal/figtab"
	"github.com/ebayer/folio/internal/reference"
)

// Project is the persisted manuscript state.
type Project struct {
	Front    assemble.FrontMatter `json:"front"`
	StyleID  string               `json:"style_id"`
	Sections []assemble.Section   `json:"sections"`
	Library  figtab.Library       `json:"library"`
}

// DefaultSections is the section plan a new project starts with.
func DefaultSections() []assemble.Section {
	names := []string{"Abstract", "Introduction", "Methods", "Results", "Discussion", "Conclusion"}
	sections := make([]assemble.Section, 0, len(names)+1)
	for _, n := range names {
		sections = append(sections, assemble.Section{
			ID:      reference.NormalizeTitle(n),
			Name:    n,
			Enabled: true,
		})
	}
	sections = append(sections, assemble.Section{ID: "refs", Name: "References", Enabled: true, System: true})
	return sections
}

// Load reads project.json from the repository root.
func Load(root string) (*Project, error) {
	data, err := os.ReadFile(config.ProjectPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}
	return &p, nil
}

// Save writes project.json to the repository root.
func (p *Project) Save(root string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	if err := os.WriteFile(config.ProjectPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}
	return nil
}

// Section returns a pointer to the section with the given id, or nil.
func (p *Project) Section(id string) *assemble.Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}
