package assemble

import (
	"strings"
	"testing"
)

func TestComputeStatsCounts(t *testing.T) {
	text := "Growth was rapid [1, 2]. It slowed later (Smith, 2020). A third point."
	s := ComputeStats(text, "normal", "Discussion")

	if s.Words != 13 {
		t.Errorf("Words = %d, want 13", s.Words)
	}
	if s.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", s.Sentences)
	}
	if s.Citations != 2 {
		t.Errorf("Citations = %d, want 2", s.Citations)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats("   ", "normal", "Discussion")
	if s.Words != 0 || s.Sentences != 0 || s.Citations != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestComputeStatsExpectedScalesWithDensity(t *testing.T) {
	text := strings.Repeat("word ", 300)
	normal := ComputeStats(text, "normal", "Discussion")
	extreme := ComputeStats(text, "extreme", "Discussion")

	if normal.Expected >= extreme.Expected {
		t.Errorf("normal %d >= extreme %d", normal.Expected, extreme.Expected)
	}
	// Unknown density falls back to normal.
	fallback := ComputeStats(text, "bogus", "Discussion")
	if fallback.Expected != normal.Expected {
		t.Errorf("fallback expected = %d, want %d", fallback.Expected, normal.Expected)
	}
}

func TestComputeStatsWarnings(t *testing.T) {
	s := ComputeStats("Short text with no citations.", "normal", "Results")

	var shortWarn, citeWarn, figWarn bool
	for _, w := range s.Warnings {
		if strings.Contains(w, "short") {
			shortWarn = true
		}
		if strings.Contains(w, "density") {
			citeWarn = true
		}
		if strings.Contains(w, "figure") {
			figWarn = true
		}
	}
	if !shortWarn || !citeWarn || !figWarn {
		t.Errorf("warnings = %v", s.Warnings)
	}

	// A Results section mentioning a figure does not warn about figures.
	s = ComputeStats("We see growth in {fig:a} clearly.", "normal", "Results")
	for _, w := range s.Warnings {
		if strings.Contains(w, "figure or table") {
			t.Errorf("unexpected figure warning: %v", s.Warnings)
		}
	}
}

func TestComputeStatsIntroductionWarning(t *testing.T) {
	s := ComputeStats("One citation only [1].", "normal", "Introduction")
	found := false
	for _, w := range s.Warnings {
		if strings.Contains(w, "foundational") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want introduction citation warning", s.Warnings)
	}
}
