// Package main provides the folio CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Manuscript assembly and citation engine",
	Long: `folio assembles multi-section manuscripts from drafted fragments,
resolves {{cite:...}} markers and {fig:...}/{tab:...} tokens into
style-correct text, and can send prose through an external rewriting
service while guaranteeing citations and figure references survive.

State lives in a .folio directory: project.json for sections and
libraries, git-versionable refs.jsonl for references, and an ephemeral
SQLite cache for queries. Commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustFindRepository locates the enclosing folio repository or exits.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	// Check FOLIO_ROOT environment variable first
	if root := os.Getenv("FOLIO_ROOT"); root != "" {
		cwd = root
	}

	root, err := config.FindRepository(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads repository configuration or exits.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
