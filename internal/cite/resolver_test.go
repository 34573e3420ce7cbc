package cite

import (
	"reflect"
	"testing"

	"github.com/ebayer/folio/internal/reference"
)

func testCollection() *reference.Collection {
	c := reference.NewCollection()
	c.Merge(
		reference.Reference{ID: "k1", Title: "First", Authors: []reference.Author{{Family: "Smith"}}, Year: 2020},
		reference.Reference{ID: "k2", Title: "Second", Authors: []reference.Author{{Family: "Jones"}}, Year: 2019},
		reference.Reference{ID: "k3", Title: "Third", Authors: []reference.Author{{Family: "Lee"}, {Family: "Park"}}, Year: 2021},
	)
	return c
}

func TestApplyNumericByPosition(t *testing.T) {
	coll := testCollection()

	res := Apply("As shown {{cite:k1,k2}}.", "ieee", coll, nil)
	if res.Text != "As shown [1–2]." {
		t.Errorf("Text = %q, want %q", res.Text, "As shown [1–2].")
	}
	if want := []string{"k1", "k2"}; !reflect.DeepEqual(res.UsedKeys, want) {
		t.Errorf("UsedKeys = %v, want %v", res.UsedKeys, want)
	}
}

func TestApplyAuthorDate(t *testing.T) {
	coll := testCollection()

	res := Apply("Prior work {{cite:k1,k2}} agrees.", "apa-7", coll, nil)
	if want := "Prior work (Smith, 2020; Jones, 2019) agrees."; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}

	// Multiple authors render "et al.".
	res = Apply("{{cite:k3}}", "apa-7", coll, nil)
	if want := "(Lee et al., 2021)"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestApplyDropsUnknownKeys(t *testing.T) {
	coll := testCollection()

	res := Apply("Known and unknown {{cite:k1,ghost}}.", "ieee", coll, nil)
	if want := "Known and unknown [1]."; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if want := []string{"k1"}; !reflect.DeepEqual(res.UsedKeys, want) {
		t.Errorf("UsedKeys = %v, want %v", res.UsedKeys, want)
	}

	// A marker whose keys all drop renders as empty string.
	res = Apply("Nothing {{cite:ghost}} here.", "ieee", coll, nil)
	if want := "Nothing  here."; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if len(res.UsedKeys) != 0 {
		t.Errorf("UsedKeys = %v, want none", res.UsedKeys)
	}
}

func TestApplyDeduplicatesWithinMarker(t *testing.T) {
	coll := testCollection()

	res := Apply("{{cite:k1,k1,k2}}", "ieee", coll, nil)
	if want := "[1–2]"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestApplyMarkerCaseAndSpacing(t *testing.T) {
	coll := testCollection()

	res := Apply("{{CITE: K1 , k2 }}", "ieee", coll, nil)
	if want := "[1–2]"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestApplyWithNumberMap(t *testing.T) {
	coll := testCollection()
	numbers := NumberMap{"k3": 1, "k1": 2}

	res := Apply("{{cite:k1,k3}}", "ieee", coll, numbers)
	if want := "[1–2]"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}

	// A key missing from the map renders nothing for that key.
	res = Apply("{{cite:k2}}", "ieee", coll, numbers)
	if res.Text != "" {
		t.Errorf("Text = %q, want empty", res.Text)
	}
}

func TestBuildNumberMapFirstAppearance(t *testing.T) {
	coll := testCollection()
	sections := []string{
		"Later work {{cite:k3}} built on {{cite:k1}}.",
		"See also {{cite:k2,k3}}.",
	}

	numbers := BuildNumberMap(sections, coll)
	want := NumberMap{"k3": 1, "k1": 2, "k2": 3}
	if !reflect.DeepEqual(numbers, want) {
		t.Errorf("BuildNumberMap = %v, want %v", numbers, want)
	}

	if got := numbers.KeysByNumber(); !reflect.DeepEqual(got, []string{"k3", "k1", "k2"}) {
		t.Errorf("KeysByNumber = %v", got)
	}
}

func TestBuildNumberMapSkipsUnknownKeys(t *testing.T) {
	coll := testCollection()
	numbers := BuildNumberMap([]string{"{{cite:ghost,k1}}"}, coll)
	if want := (NumberMap{"k1": 1}); !reflect.DeepEqual(numbers, want) {
		t.Errorf("BuildNumberMap = %v, want %v", numbers, want)
	}
}

func TestCompressRanges(t *testing.T) {
	tests := []struct {
		nums []int
		want string
	}{
		{[]int{1, 2, 3, 5, 6}, "1–3, 5–6"},
		{[]int{1, 3, 5}, "1, 3, 5"},
		{[]int{1, 2}, "1–2"},
		{[]int{4}, "4"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := CompressRanges(tt.nums); got != tt.want {
			t.Errorf("CompressRanges(%v) = %q, want %q", tt.nums, got, tt.want)
		}
	}
}
