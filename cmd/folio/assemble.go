package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/assemble"
	"github.com/ebayer/folio/internal/bibliography"
	"github.com/ebayer/folio/internal/project"
)

var (
	assembleMode     string
	assembleRenumber bool
	assembleSanitize bool
	assembleOut      string
)

func init() {
	assembleCmd.Flags().StringVar(&assembleMode, "mode", "display", "Output mode: display or export")
	assembleCmd.Flags().BoolVar(&assembleRenumber, "renumber", true, "Renumber citations by first appearance (numeric styles)")
	assembleCmd.Flags().BoolVar(&assembleSanitize, "sanitize", false, "Convert loose author-year parentheticals to markers first")
	assembleCmd.Flags().StringVar(&assembleOut, "out", "", "Write the assembled text to a file instead of stdout")
	rootCmd.AddCommand(assembleCmd)
}

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the manuscript with resolved citations and numbering",
	Long: `Resolve citation markers and figure/table tokens across all enabled
sections, then render front matter, section text, figure and table
lists, and the bibliography as one document.

Display mode converts tokens to "Figure N"/"Table N"; export mode keeps
the raw tokens so a document writer can substitute content per token.

Examples:
  folio assemble
  folio assemble --mode export --out manuscript.md
  folio assemble --sanitize --renumber=false`,
	RunE: runAssemble,
}

func runAssemble(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	var mode assemble.Mode
	switch assembleMode {
	case "display":
		mode = assemble.ModeDisplay
	case "export":
		mode = assemble.ModeExport
	default:
		exitWithError(ExitDataError, "unknown mode %q (display or export)", assembleMode)
	}

	p, err := project.Load(root)
	if err != nil {
		exitWithError(ExitDataError, "loading project: %v", err)
	}
	coll, err := project.LoadRefs(root)
	if err != nil {
		exitWithError(ExitDataError, "loading references: %v", err)
	}

	styleID := p.StyleID
	if styleID == "" {
		styleID = cfg.StyleID
	}

	var engine *bibliography.Engine
	if cfg.StylesDir != "" {
		engine = bibliography.NewEngine(cfg.StylesDir)
	}

	out := assemble.Build(assemble.Manuscript{
		Front:    p.Front,
		StyleID:  styleID,
		Sections: p.Sections,
		Refs:     coll,
		Library:  p.Library,
	}, assemble.Options{
		Mode:     mode,
		Renumber: assembleRenumber,
		Sanitize: assembleSanitize,
		Engine:   engine,
	})

	if assembleOut != "" {
		if err := os.WriteFile(assembleOut, []byte(out.Text), 0644); err != nil {
			exitWithError(ExitError, "writing output: %v", err)
		}
		if humanOutput {
			fmt.Printf("wrote %s (%d sections, %d references)\n", assembleOut, len(out.Pieces), len(out.Bibliography))
		} else {
			outputJSON(StatusResponse{Status: "written", Path: assembleOut})
		}
		return nil
	}

	if humanOutput {
		fmt.Println(out.Text)
	} else {
		outputJSON(out)
	}
	return nil
}
