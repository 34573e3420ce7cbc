package cite

import (
	"reflect"
	"testing"

	"github.com/ebayer/folio/internal/reference"
)

func TestSanitizeConvertsMatchedParentheticals(t *testing.T) {
	coll := testCollection()

	text := "Earlier studies (Smith, 2020; Jones, 2019) disagree."
	out, mapped := Sanitize(text, coll)
	if want := "Earlier studies {{cite:k1,k2}} disagree."; out != want {
		t.Errorf("Sanitize = %q, want %q", out, want)
	}
	if want := []string{"k1", "k2"}; !reflect.DeepEqual(mapped, want) {
		t.Errorf("mapped = %v, want %v", mapped, want)
	}
}

func TestSanitizeEtAlAndAndSeparators(t *testing.T) {
	coll := testCollection()

	out, _ := Sanitize("(Lee et al., 2021 and Smith, 2020)", coll)
	if want := "{{cite:k3,k1}}"; out != want {
		t.Errorf("Sanitize = %q, want %q", out, want)
	}
}

func TestSanitizeLeavesUnmatchedAlone(t *testing.T) {
	coll := testCollection()

	// Family not in the collection.
	text := "As shown (Garcia, 2018)."
	if out, mapped := Sanitize(text, coll); out != text || mapped != nil {
		t.Errorf("Sanitize(%q) = %q, %v; want untouched", text, out, mapped)
	}

	// Year mismatch.
	text = "As shown (Smith, 1999)."
	if out, _ := Sanitize(text, coll); out != text {
		t.Errorf("Sanitize(%q) = %q; want untouched", text, out)
	}

	// Parenthetical with no year at all is not even a candidate.
	text = "A control group (n = 42) was used."
	if out, _ := Sanitize(text, coll); out != text {
		t.Errorf("Sanitize(%q) = %q; want untouched", text, out)
	}
}

func TestSanitizePartialMatchLeavesGroupAlone(t *testing.T) {
	coll := testCollection()

	// Rewriting would silently lose the unmatched Garcia citation, so the
	// whole parenthetical stays as written.
	text := "(Smith, 2020; Garcia, 2018)"
	out, mapped := Sanitize(text, coll)
	if out != text {
		t.Errorf("Sanitize = %q, want untouched", out)
	}
	if mapped != nil {
		t.Errorf("mapped = %v, want none", mapped)
	}
}

func TestSanitizeEmptyInputs(t *testing.T) {
	if out, mapped := Sanitize("", testCollection()); out != "" || mapped != nil {
		t.Error("Sanitize on empty text changed something")
	}
	text := "(Smith, 2020)"
	if out, _ := Sanitize(text, reference.NewCollection()); out != text {
		t.Error("Sanitize with empty collection changed the text")
	}
}
