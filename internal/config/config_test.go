package config

import (
	"os"
	"path/filepath"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(FolioPath(root), 0755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := initRepo(t)

	cfg := &Config{
		StyleID:       "vancouver",
		StylesDir:     "./styles",
		CrossrefEmail: "me@example.org",
		Density:       "dense",
	}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load without config did not fail")
	}
}

func TestIsRepository(t *testing.T) {
	root := initRepo(t)
	if !IsRepository(root) {
		t.Error("IsRepository = false for initialized root")
	}
	if IsRepository(t.TempDir()) {
		t.Error("IsRepository = true for bare directory")
	}

	// A plain file named .folio is not a repository.
	other := t.TempDir()
	if err := os.WriteFile(filepath.Join(other, FolioDir), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if IsRepository(other) {
		t.Error("IsRepository = true for .folio file")
	}
}

func TestFindRepositoryWalksUp(t *testing.T) {
	root := initRepo(t)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRepository(nested)
	if err != nil {
		t.Fatalf("FindRepository: %v", err)
	}
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedFound, _ := filepath.EvalSymlinks(found)
	if resolvedFound != resolvedRoot {
		t.Errorf("FindRepository = %q, want %q", found, root)
	}
}

func TestFindRepositoryNotFound(t *testing.T) {
	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Error("FindRepository outside a repository did not fail")
	}
}
