package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/assemble"
	"github.com/ebayer/folio/internal/project"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [section-id]",
	Short: "Report section statistics and density warnings",
	Long: `Count words, sentences, and inline citations per section and warn when
a section looks short or under-cited for the configured density.

Examples:
  folio check
  folio check introduction`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// SectionCheck pairs a section with its stats.
type SectionCheck struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Stats assemble.Stats `json:"stats"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	p, err := project.Load(root)
	if err != nil {
		exitWithError(ExitDataError, "loading project: %v", err)
	}

	var checks []SectionCheck
	for _, s := range p.Sections {
		if s.System || !s.Enabled {
			continue
		}
		if len(args) == 1 && s.ID != args[0] {
			continue
		}
		checks = append(checks, SectionCheck{
			ID:    s.ID,
			Name:  s.Name,
			Stats: assemble.ComputeStats(s.Raw, cfg.Density, s.Name),
		})
	}
	if len(args) == 1 && len(checks) == 0 {
		exitWithError(ExitDataError, "no section with id %q", args[0])
	}

	if humanOutput {
		for _, c := range checks {
			fmt.Printf("%s: %d words, %d sentences, %d citations (expected %d)\n",
				c.Name, c.Stats.Words, c.Stats.Sentences, c.Stats.Citations, c.Stats.Expected)
			for _, w := range c.Stats.Warnings {
				fmt.Printf("  ! %s\n", w)
			}
		}
	} else {
		if checks == nil {
			checks = []SectionCheck{}
		}
		outputJSON(checks)
	}
	return nil
}
