package rewrite

import (
	"strings"
	"testing"
)

const sampleText = "Grain growth [1, 2] is shown in {fig:micro-1} and (Smith, 2020) " +
	"summarized in {tab:summary}."

func TestProtectRestoreRoundTrip(t *testing.T) {
	p := Protect(sampleText)

	if p.SpanCount() != 4 {
		t.Fatalf("SpanCount = %d, want 4", p.SpanCount())
	}
	if strings.Contains(p.Text, "[1, 2]") || strings.Contains(p.Text, "{fig:") {
		t.Errorf("protected text still holds spans: %q", p.Text)
	}
	if got := p.Restore(p.Text); got != sampleText {
		t.Errorf("Restore round trip = %q, want %q", got, sampleText)
	}
}

func TestRestoreInventedPlaceholder(t *testing.T) {
	p := Protect("See [1].")
	if got := p.Restore("See ⟦0⟧ and ⟦7⟧."); got != "See [1] and ." {
		t.Errorf("Restore = %q", got)
	}
}

func TestProtectRawCitationMarker(t *testing.T) {
	text := "Early claim {{cite:smith2020,jones2019}} holds."
	p := Protect(text)

	if p.SpanCount() != 1 {
		t.Fatalf("SpanCount = %d, want 1", p.SpanCount())
	}
	if strings.Contains(p.Text, "cite") {
		t.Errorf("marker leaked into protected text: %q", p.Text)
	}
	if got := p.Restore(p.Text); got != text {
		t.Errorf("Restore round trip = %q, want %q", got, text)
	}
}

func TestProtectLiteralPlaceholderRoundTrip(t *testing.T) {
	text := "A literal ⟦3⟧ stays, as does [1]."
	p := Protect(text)

	if p.SpanCount() != 2 {
		t.Fatalf("SpanCount = %d, want 2", p.SpanCount())
	}
	if got := p.Restore(p.Text); got != text {
		t.Errorf("Restore round trip = %q, want %q", got, text)
	}
}

func TestProtectRangesAndRuns(t *testing.T) {
	p := Protect("Work [1–3, 5–6] continues.")
	if p.SpanCount() != 1 {
		t.Errorf("SpanCount = %d, want 1 (whole bracket group is one span)", p.SpanCount())
	}
}

func TestSplitProtectedConcatenationIsIdentity(t *testing.T) {
	segs := SplitProtected(sampleText)

	var b strings.Builder
	protected := 0
	for _, s := range segs {
		b.WriteString(s.Text)
		if s.Protected {
			protected++
		}
	}
	if b.String() != sampleText {
		t.Errorf("concatenation = %q, want input", b.String())
	}
	if protected != 4 {
		t.Errorf("protected segments = %d, want 4", protected)
	}
}

func TestSplitProtectedNoSpans(t *testing.T) {
	segs := SplitProtected("plain prose only")
	if len(segs) != 1 || segs[0].Protected {
		t.Errorf("segs = %+v, want one free segment", segs)
	}
}

func TestComputeSignature(t *testing.T) {
	sig := ComputeSignature(sampleText)
	want := Signature{Figures: 1, Tables: 1, Citations: 2}
	if !sig.Equal(want) {
		t.Errorf("ComputeSignature = %+v, want %+v", sig, want)
	}
}

func TestComputeSignatureCountsRawMarkers(t *testing.T) {
	sig := ComputeSignature("Intro {{cite:k1,k2}} then [3] and {fig:a}.")
	want := Signature{Figures: 1, Tables: 0, Citations: 2}
	if !sig.Equal(want) {
		t.Errorf("ComputeSignature = %+v, want %+v", sig, want)
	}
}

func TestDescribeMismatch(t *testing.T) {
	want := Signature{Figures: 1, Tables: 0, Citations: 3}
	got := Signature{Figures: 0, Tables: 0, Citations: 2}
	if s := DescribeMismatch(want, got); s != "figures 1→0, citations 3→2" {
		t.Errorf("DescribeMismatch = %q", s)
	}
	if s := DescribeMismatch(want, want); s != "" {
		t.Errorf("DescribeMismatch on equal = %q", s)
	}
}
