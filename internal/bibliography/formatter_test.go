package bibliography

import (
	"testing"

	"github.com/ebayer/folio/internal/cite"
	"github.com/ebayer/folio/internal/reference"
)

func testCollection() *reference.Collection {
	c := reference.NewCollection()
	c.Merge(
		reference.Reference{
			ID:        "k1",
			Title:     "Grain growth in alloys",
			Authors:   []reference.Author{{Family: "Smith", Given: "Jane"}, {Family: "Wu", Given: "Li"}},
			Year:      2020,
			Container: "Acta Mater",
			Volume:    "188",
			Issue:     "2",
			Pages:     "14-29",
			DOI:       "10.1000/a",
		},
		reference.Reference{
			ID:        "k2",
			Title:     "A second study",
			Authors:   []reference.Author{{Family: "Jones", Given: "Pat"}},
			Year:      2019,
			Container: "J Test",
			URL:       "https://example.org/second",
		},
		reference.Reference{
			ID:        "k3",
			Title:     "A third study",
			Authors:   []reference.Author{{Family: "Lee", Given: "Min"}},
			Year:      2021,
			Container: "J Test",
		},
	)
	return c
}

func TestFormatNumericFullCollection(t *testing.T) {
	lines := Format(testCollection(), Options{StyleID: "ieee"})
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	want := "[1] Smith J., Wu L.. Grain growth in alloys. Acta Mater 188(2):14-29 (2020). doi:10.1000/a"
	if lines[0] != want {
		t.Errorf("lines[0] = %q, want %q", lines[0], want)
	}
	// URL fallback when no DOI.
	want = "[2] Jones P.. A second study. J Test (2019). https://example.org/second"
	if lines[1] != want {
		t.Errorf("lines[1] = %q, want %q", lines[1], want)
	}
}

func TestFormatAuthorDate(t *testing.T) {
	lines := Format(testCollection(), Options{StyleID: "apa-7"})
	want := "Smith, J.; Wu, L. (2020). Grain growth in alloys. Acta Mater 188(2), 14-29. https://doi.org/10.1000/a"
	if lines[0] != want {
		t.Errorf("lines[0] = %q, want %q", lines[0], want)
	}
}

func TestFormatCitedOnlyKeepsOriginalNumericLabels(t *testing.T) {
	// The first entry carries a DOI, so its derived key is doi-based.
	lines := Format(testCollection(), Options{StyleID: "ieee", CitedKeys: []string{"k3", "doi:10.1000/a"}})
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	// Collection order with original position labels: [1] and [3].
	if got := lines[0][:4]; got != "[1] " {
		t.Errorf("lines[0] label = %q, want [1]", got)
	}
	if got := lines[1][:4]; got != "[3] " {
		t.Errorf("lines[1] label = %q, want [3]", got)
	}
}

func TestFormatCitedOnlyAuthorDateFirstCitedOrder(t *testing.T) {
	lines := Format(testCollection(), Options{StyleID: "apa-7", CitedKeys: []string{"k3", "doi:10.1000/a"}})
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0][:3] != "Lee" || lines[1][:5] != "Smith" {
		t.Errorf("order = %q, %q; want Lee then Smith", lines[0], lines[1])
	}
}

func TestFormatWithNumberMap(t *testing.T) {
	numbers := cite.NumberMap{"k2": 1, "doi:10.1000/a": 2}
	lines := Format(testCollection(), Options{StyleID: "ieee", Numbers: numbers})
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0][:4] != "[1] " || lines[0][4:9] != "Jones" {
		t.Errorf("lines[0] = %q, want [1] Jones...", lines[0])
	}
	if lines[1][:4] != "[2] " || lines[1][4:9] != "Smith" {
		t.Errorf("lines[1] = %q, want [2] Smith...", lines[1])
	}
}

func TestFormatEmptyCollection(t *testing.T) {
	if lines := Format(reference.NewCollection(), Options{StyleID: "ieee"}); lines != nil {
		t.Errorf("Format on empty = %v, want nil", lines)
	}
	if lines := Format(nil, Options{}); lines != nil {
		t.Errorf("Format(nil) = %v, want nil", lines)
	}
}

func TestFormatCitedKeysEmptySlice(t *testing.T) {
	// Non-nil empty CitedKeys means "cited only, nothing cited".
	lines := Format(testCollection(), Options{StyleID: "ieee", CitedKeys: []string{}})
	if lines != nil {
		t.Errorf("Format = %v, want nil", lines)
	}
}

func TestUnknownStyleFallsBackToNumeric(t *testing.T) {
	lines := Format(testCollection(), Options{StyleID: "made-up"})
	if len(lines) != 3 || lines[0][:4] != "[1] " {
		t.Errorf("unknown style did not render numerically: %v", lines)
	}
}
