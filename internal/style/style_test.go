package style

import "testing"

func TestFamilyOf(t *testing.T) {
	for _, id := range []string{"ieee", "vancouver", "ama", "nature", "acm", "acs"} {
		if FamilyOf(id) != Numeric {
			t.Errorf("FamilyOf(%s) != Numeric", id)
		}
	}
	for _, id := range []string{"apa-7", "chicago-ad", "icheme-harvard"} {
		if FamilyOf(id) != AuthorDate {
			t.Errorf("FamilyOf(%s) != AuthorDate", id)
		}
	}
	// Unknown identifiers fall back to numeric.
	if FamilyOf("mystery") != Numeric {
		t.Error("FamilyOf(mystery) != Numeric")
	}
}

func TestKnown(t *testing.T) {
	if !Known("ieee") || !Known("apa-7") {
		t.Error("known styles reported unknown")
	}
	if Known("mystery") {
		t.Error("unknown style reported known")
	}
	if !Known(DefaultStyleID) {
		t.Error("default style is not known")
	}
}

func TestIDsCoverAllKnown(t *testing.T) {
	for _, id := range IDs() {
		if !Known(id) {
			t.Errorf("IDs() returned unknown style %s", id)
		}
	}
	if len(IDs()) != len(numericStyles)+len(authorDateStyles) {
		t.Errorf("IDs() length %d does not cover both families", len(IDs()))
	}
}
