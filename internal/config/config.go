// Package config handles manuscript repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .folio/config.json.
type Config struct {
	StyleID       string `json:"style_id"`                 // Active citation style identifier
	StylesDir     string `json:"styles_dir,omitempty"`     // Directory of declarative style definitions
	RewriteURL    string `json:"rewrite_url,omitempty"`    // Rewrite service base URL override
	RewriteModel  string `json:"rewrite_model,omitempty"`  // Rewrite service model override
	CrossrefEmail string `json:"crossref_email,omitempty"` // mailto for Crossref's polite pool
	Density       string `json:"density,omitempty"`        // Citation density target for checks
}

const (
	FolioDir    = ".folio"
	ConfigFile  = "config.json"
	ProjectFile = "project.json"
	RefsFile    = "refs.jsonl"
	CacheDir    = "cache"
	DBFile      = "refs.db"
)

// FolioPath returns the path to the .folio directory from a root path.
func FolioPath(root string) string {
	return filepath.Join(root, FolioDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, FolioDir, ConfigFile)
}

// ProjectPath returns the path to project.json from a root path.
func ProjectPath(root string) string {
	return filepath.Join(root, FolioDir, ProjectFile)
}

// RefsPath returns the path to refs.jsonl from a root path.
func RefsPath(root string) string {
	return filepath.Join(root, FolioDir, RefsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, FolioDir, CacheDir)
}

// DBPath returns the path to refs.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, FolioDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a folio repository.
func IsRepository(root string) bool {
	info, err := os.Stat(FolioPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a folio repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a folio repository (no .folio directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
