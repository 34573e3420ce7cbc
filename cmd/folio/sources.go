package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/lookup"
	"github.com/ebayer/folio/internal/pdfsrc"
	"github.com/ebayer/folio/internal/project"
)

var sourcesAdd bool

func init() {
	sourcesMineCmd.Flags().BoolVar(&sourcesAdd, "add", false, "Resolve mined DOIs and add them to the collection")
	sourcesCmd.AddCommand(sourcesMineCmd)
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Work with source documents",
}

var sourcesMineCmd = &cobra.Command{
	Use:   "mine <pdf>...",
	Short: "Extract DOIs from PDF files",
	Long: `Scan PDF files for DOI patterns and report them in order of appearance.
With --add, each mined DOI is resolved and merged into the collection.

Examples:
  folio sources mine paper.pdf
  folio sources mine --add refs/*.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSourcesMine,
}

// MinedFile reports the DOIs found in one PDF.
type MinedFile struct {
	File  string   `json:"file"`
	DOIs  []string `json:"dois"`
	Error string   `json:"error,omitempty"`
}

func runSourcesMine(cmd *cobra.Command, args []string) error {
	var mined []MinedFile
	seen := make(map[string]bool)
	var all []string

	for _, path := range args {
		dois, err := pdfsrc.ExtractDOIs(path)
		m := MinedFile{File: path, DOIs: dois}
		if err != nil {
			m.Error = err.Error()
		}
		if m.DOIs == nil {
			m.DOIs = []string{}
		}
		mined = append(mined, m)
		for _, d := range dois {
			if !seen[d] {
				seen[d] = true
				all = append(all, d)
			}
		}
	}

	if sourcesAdd && len(all) > 0 {
		root := mustFindRepository()
		cfg := mustLoadConfig(root)

		coll, err := project.LoadRefs(root)
		if err != nil {
			exitWithError(ExitDataError, "loading references: %v", err)
		}

		var crossrefOpts []lookup.CrossrefOption
		if cfg.CrossrefEmail != "" {
			crossrefOpts = append(crossrefOpts, lookup.WithMailto(cfg.CrossrefEmail))
		}
		resolver := lookup.NewResolver(lookup.NewCrossrefClient(crossrefOpts...))

		ctx := context.Background()
		for _, doi := range all {
			coll.Merge(resolver.Resolve(ctx, doi))
		}
		if err := project.SaveRefs(root, coll); err != nil {
			exitWithError(ExitError, "saving references: %v", err)
		}
		rebuildCache(root, coll).Close()
	}

	if humanOutput {
		for _, m := range mined {
			if m.Error != "" {
				fmt.Printf("%s: error: %s\n", m.File, m.Error)
				continue
			}
			fmt.Printf("%s: %d DOIs\n", m.File, len(m.DOIs))
			for _, d := range m.DOIs {
				fmt.Printf("  %s\n", d)
			}
		}
		if sourcesAdd {
			fmt.Printf("added %d unique DOIs to collection\n", len(all))
		}
	} else {
		outputJSON(mined)
	}
	return nil
}
