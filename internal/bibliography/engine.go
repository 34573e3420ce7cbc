package bibliography

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ebayer/folio/internal/reference"
)

// Engine renders bibliographies from declarative style definitions: one
// YAML file per style identifier under a styles directory. It is the
// exact-rendering path; any failure here (missing definition, malformed
// definition, unknown field) must be caught by the caller and routed to
// the deterministic formatter, never surfaced to the user.
type Engine struct {
	dir    string
	loaded map[string]*StyleDef
}

// StyleDef is a declarative citation style definition.
type StyleDef struct {
	ID      string `yaml:"id"`
	Family  string `yaml:"family"` // numeric or author-date
	Authors struct {
		Format    string `yaml:"format"` // family-initial | family-comma-initial
		Separator string `yaml:"separator"`
	} `yaml:"authors"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec renders one reference field with fixed surrounding punctuation.
// Empty field values render nothing, including their prefix and suffix.
type FieldSpec struct {
	Field  string `yaml:"field"` // authors, title, container, volume, issue, pages, year, identifier
	Prefix string `yaml:"prefix,omitempty"`
	Suffix string `yaml:"suffix,omitempty"`
}

// NewEngine creates an engine reading style definitions from dir.
func NewEngine(dir string) *Engine {
	return &Engine{dir: dir, loaded: make(map[string]*StyleDef)}
}

// Render formats the given ordered entries with the style's definition.
// labels carries the numeric label per entry (same length as entries);
// it is ignored by author-date definitions.
func (e *Engine) Render(styleID string, entries []reference.Entry, labels []int) ([]string, error) {
	def, err := e.load(styleID)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		line, err := def.renderLine(entry.Reference, labelAt(labels, i))
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", styleID, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// load reads and caches a style definition.
func (e *Engine) load(styleID string) (*StyleDef, error) {
	if def, ok := e.loaded[styleID]; ok {
		return def, nil
	}
	if e.dir == "" {
		return nil, fmt.Errorf("no styles directory configured")
	}
	// Style ids are membership-checked upstream, but never trust them in paths.
	if strings.ContainsAny(styleID, `/\.`) {
		return nil, fmt.Errorf("invalid style id %q", styleID)
	}

	data, err := os.ReadFile(filepath.Join(e.dir, styleID+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading style %s: %w", styleID, err)
	}

	var def StyleDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing style %s: %w", styleID, err)
	}
	if len(def.Fields) == 0 {
		return nil, fmt.Errorf("style %s defines no fields", styleID)
	}
	if def.Family != "numeric" && def.Family != "author-date" {
		return nil, fmt.Errorf("style %s has unknown family %q", styleID, def.Family)
	}

	e.loaded[styleID] = &def
	return &def, nil
}

func (d *StyleDef) renderLine(ref reference.Reference, label int) (string, error) {
	var b strings.Builder
	if d.Family == "numeric" {
		fmt.Fprintf(&b, "[%d] ", label)
	}
	for _, fs := range d.Fields {
		val, err := d.fieldValue(ref, fs.Field)
		if err != nil {
			return "", err
		}
		if val == "" {
			continue
		}
		b.WriteString(fs.Prefix)
		b.WriteString(val)
		b.WriteString(fs.Suffix)
	}
	return b.String(), nil
}

func (d *StyleDef) fieldValue(ref reference.Reference, field string) (string, error) {
	switch field {
	case "authors":
		render := authorInitialAfter
		if d.Authors.Format == "family-comma-initial" {
			render = authorCommaInitial
		}
		sep := d.Authors.Separator
		if sep == "" {
			sep = ", "
		}
		return joinAuthors(ref.Authors, render, sep), nil
	case "title":
		return ref.Title, nil
	case "container":
		return ref.Container, nil
	case "volume":
		return ref.Volume, nil
	case "issue":
		return ref.Issue, nil
	case "pages":
		return ref.Pages, nil
	case "year":
		if ref.Year == 0 {
			return "", nil
		}
		return fmt.Sprintf("%d", ref.Year), nil
	case "identifier":
		if ref.DOI != "" {
			return "doi:" + ref.DOI, nil
		}
		return ref.URL, nil
	default:
		return "", fmt.Errorf("unknown field %q", field)
	}
}

func labelAt(labels []int, i int) int {
	if i < len(labels) {
		return labels[i]
	}
	return i + 1
}
