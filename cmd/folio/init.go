package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/config"
	"github.com/ebayer/folio/internal/project"
	"github.com/ebayer/folio/internal/style"
)

var initStyle string

func init() {
	initCmd.Flags().StringVar(&initStyle, "style", style.DefaultStyleID, "Citation style identifier")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a folio repository in the current directory",
	Long: `Initialize a folio repository in the current directory.

Creates a .folio directory with default configuration, a default section
plan, and an empty reference store.

Examples:
  folio init
  folio init --style apa-7`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(cwd) {
		exitWithError(ExitError, "already a folio repository: %s", config.FolioPath(cwd))
	}
	if !style.Known(initStyle) {
		exitWithError(ExitDataError, "unknown style %q (known: %v)", initStyle, style.IDs())
	}

	if err := os.MkdirAll(config.CachePath(cwd), 0755); err != nil {
		exitWithError(ExitError, "creating repository: %v", err)
	}

	cfg := &config.Config{StyleID: initStyle, Density: "normal"}
	if err := cfg.Save(cwd); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	p := &project.Project{StyleID: initStyle, Sections: project.DefaultSections()}
	if err := p.Save(cwd); err != nil {
		exitWithError(ExitError, "writing project: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized folio repository in %s\n", config.FolioPath(cwd))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.FolioPath(cwd)})
	}
	return nil
}
