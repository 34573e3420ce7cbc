package project

import (
	"testing"

	"github.com/ebayer/folio/internal/reference"
)

func openTestCache(t *testing.T) (*Cache, *reference.Collection) {
	t.Helper()
	root := initRepo(t)

	cache, err := OpenCache(root)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	coll := reference.NewCollection()
	coll.Merge(sampleRefs()...)
	if err := cache.Rebuild(coll); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return cache, coll
}

func TestCacheRebuildAndList(t *testing.T) {
	cache, coll := openTestCache(t)

	refs, err := cache.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("len = %d, want 3", len(refs))
	}
	for i, r := range refs {
		if r.Position != i+1 {
			t.Errorf("refs[%d].Position = %d", i, r.Position)
		}
		if r.Key != coll.Entries()[i].Key {
			t.Errorf("refs[%d].Key = %q", i, r.Key)
		}
	}
	if refs[0].FirstAuthor != "Smith" || refs[0].DOI != "10.1000/a" {
		t.Errorf("refs[0] = %+v", refs[0])
	}

	limited, err := cache.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) = %d rows", len(limited))
	}
}

func TestCacheSearch(t *testing.T) {
	cache, _ := openTestCache(t)

	refs, err := cache.Search("THIRD")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(refs) != 1 || refs[0].Title != "Third study" {
		t.Errorf("Search(THIRD) = %+v", refs)
	}

	refs, err = cache.Search("jones")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || refs[0].FirstAuthor != "Jones" {
		t.Errorf("Search(jones) = %+v", refs)
	}

	refs, err = cache.Search("no-such-term")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 0 {
		t.Errorf("Search(no-such-term) = %+v", refs)
	}
}

func TestCacheRebuildReplaces(t *testing.T) {
	cache, _ := openTestCache(t)

	smaller := reference.NewCollection()
	smaller.Merge(reference.Reference{ID: "only", Title: "Only one"})
	if err := cache.Rebuild(smaller); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	n, err := cache.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1 after rebuild", n)
	}
}
