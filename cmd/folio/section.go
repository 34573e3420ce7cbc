package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/project"
)

func init() {
	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionSetCmd)
	sectionCmd.AddCommand(sectionEnableCmd)
	sectionCmd.AddCommand(sectionDisableCmd)
	rootCmd.AddCommand(sectionCmd)
}

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage manuscript sections",
}

// SectionInfo is the list entry for one section.
type SectionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	System  bool   `json:"system,omitempty"`
	Words   int    `json:"words"`
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections in plan order",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		p, err := project.Load(root)
		if err != nil {
			exitWithError(ExitDataError, "loading project: %v", err)
		}

		infos := make([]SectionInfo, 0, len(p.Sections))
		for _, s := range p.Sections {
			infos = append(infos, SectionInfo{
				ID:      s.ID,
				Name:    s.Name,
				Enabled: s.Enabled,
				System:  s.System,
				Words:   len(strings.Fields(s.Raw)),
			})
		}

		if humanOutput {
			for _, s := range infos {
				mark := " "
				if !s.Enabled {
					mark = "-"
				}
				fmt.Printf("%s %-16s %-14s %d words\n", mark, s.ID, s.Name, s.Words)
			}
		} else {
			outputJSON(infos)
		}
		return nil
	},
}

var sectionSetCmd = &cobra.Command{
	Use:   "set <id> [file]",
	Short: "Set a section's draft text from a file or stdin",
	Long: `Set a section's draft text from a file, or from stdin when no file is
given. The draft may contain citation markers ({{cite:key}}) and figure
or table tokens ({fig:id}, {tab:id}).

Examples:
  folio section set introduction intro.md
  cat methods.md | folio section set methods`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSectionSet,
}

func runSectionSet(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	p, err := project.Load(root)
	if err != nil {
		exitWithError(ExitDataError, "loading project: %v", err)
	}

	sec := p.Section(args[0])
	if sec == nil {
		exitWithError(ExitDataError, "no section with id %q", args[0])
	}
	if sec.System {
		exitWithError(ExitDataError, "section %q is managed automatically", args[0])
	}

	var data []byte
	if len(args) == 2 {
		data, err = os.ReadFile(args[1])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitWithError(ExitError, "reading draft: %v", err)
	}

	sec.Raw = string(data)
	if err := p.Save(root); err != nil {
		exitWithError(ExitError, "saving project: %v", err)
	}

	if humanOutput {
		fmt.Printf("set %s (%d words)\n", sec.ID, len(strings.Fields(sec.Raw)))
	} else {
		outputJSON(StatusResponse{Status: "updated", Path: sec.ID})
	}
	return nil
}

var sectionEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Include a section in assembly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSectionEnabled(args[0], true)
	},
}

var sectionDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Exclude a section from assembly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSectionEnabled(args[0], false)
	},
}

func setSectionEnabled(id string, enabled bool) error {
	root := mustFindRepository()
	p, err := project.Load(root)
	if err != nil {
		exitWithError(ExitDataError, "loading project: %v", err)
	}

	sec := p.Section(id)
	if sec == nil {
		exitWithError(ExitDataError, "no section with id %q", id)
	}
	sec.Enabled = enabled
	if err := p.Save(root); err != nil {
		exitWithError(ExitError, "saving project: %v", err)
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	if humanOutput {
		fmt.Printf("%s %s\n", status, id)
	} else {
		outputJSON(StatusResponse{Status: status, Path: id})
	}
	return nil
}
