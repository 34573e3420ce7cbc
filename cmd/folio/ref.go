package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/export"
	"github.com/ebayer/folio/internal/lookup"
	"github.com/ebayer/folio/internal/project"
	"github.com/ebayer/folio/internal/reference"
)

var (
	refListLimit  int
	refListSearch string
)

func init() {
	refListCmd.Flags().IntVar(&refListLimit, "limit", 0, "Maximum results to return (0 = all)")
	refListCmd.Flags().StringVar(&refListSearch, "search", "", "Filter by title, first author, or container")

	refCmd.AddCommand(refAddCmd)
	refCmd.AddCommand(refListCmd)
	refCmd.AddCommand(refRemoveCmd)
	refCmd.AddCommand(refExportCmd)
	rootCmd.AddCommand(refCmd)
}

var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Manage the reference collection",
}

var refAddCmd = &cobra.Command{
	Use:   "add <identifier>...",
	Short: "Resolve identifiers and add them to the collection",
	Long: `Resolve DOI, PMID, or arXiv identifiers and merge the results into the
reference collection. Lookups that cannot complete produce minimal stub
records; identifiers already in the collection are discarded
(first-write-wins).

Examples:
  folio ref add 10.1038/nmat4782
  folio ref add 31452104 arXiv:2107.03374`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRefAdd,
}

// AddedRef reports the outcome of one identifier.
type AddedRef struct {
	Identifier string `json:"identifier"`
	Key        string `json:"key"`
	Title      string `json:"title"`
	Added      bool   `json:"added"` // false when the key already existed
}

func runRefAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

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
	before := coll.Len()
	var added []AddedRef
	for _, id := range args {
		ref := resolver.Resolve(ctx, id)
		keys := coll.Merge(ref)
		title, _ := coll.Resolve(keys[0])
		added = append(added, AddedRef{
			Identifier: id,
			Key:        keys[0],
			Title:      title.Title,
			Added:      coll.Len() > before,
		})
		before = coll.Len()
	}

	if err := project.SaveRefs(root, coll); err != nil {
		exitWithError(ExitError, "saving references: %v", err)
	}
	rebuildCache(root, coll).Close()

	if humanOutput {
		for _, a := range added {
			status := "added"
			if !a.Added {
				status = "exists"
			}
			fmt.Printf("  %-8s %-30s %s\n", status, a.Key, truncateString(a.Title, listTitleMaxLen))
		}
	} else {
		outputJSON(added)
	}
	return nil
}

var refListCmd = &cobra.Command{
	Use:   "list",
	Short: "List references",
	RunE:  runRefList,
}

func runRefList(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()

	coll, err := project.LoadRefs(root)
	if err != nil {
		exitWithError(ExitDataError, "loading references: %v", err)
	}
	cache := rebuildCache(root, coll)
	defer cache.Close()

	var refs []project.CachedRef
	if refListSearch != "" {
		refs, err = cache.Search(refListSearch)
	} else {
		refs, err = cache.List(refListLimit)
	}
	if err != nil {
		exitWithError(ExitError, "listing references: %v", err)
	}

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No references in repository")
			return nil
		}
		for _, r := range refs {
			fmt.Printf("  [%d] %-28s %s\n", r.Position, r.Key, truncateString(r.Title, listTitleMaxLen))
		}
	} else {
		if refs == nil {
			refs = []project.CachedRef{}
		}
		outputJSON(refs)
	}
	return nil
}

var refRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a reference by key",
	Long: `Remove a reference by key. Markers still naming the key resolve to
nothing afterwards; they are not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefRemove,
}

func runRefRemove(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()

	coll, err := project.LoadRefs(root)
	if err != nil {
		exitWithError(ExitDataError, "loading references: %v", err)
	}
	if !coll.Remove(args[0]) {
		exitWithError(ExitDataError, "no reference with key %q", args[0])
	}
	if err := project.SaveRefs(root, coll); err != nil {
		exitWithError(ExitError, "saving references: %v", err)
	}
	rebuildCache(root, coll).Close()

	if humanOutput {
		fmt.Printf("removed %s\n", args[0])
	} else {
		outputJSON(map[string]string{"status": "removed", "key": args[0]})
	}
	return nil
}

var refExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection as BibTeX",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		coll, err := project.LoadRefs(root)
		if err != nil {
			exitWithError(ExitDataError, "loading references: %v", err)
		}
		fmt.Print(export.ToBibTeXList(coll))
		return nil
	},
}

// rebuildCache refreshes the SQLite cache from the collection. Cache
// failures are not fatal: refs.jsonl remains authoritative.
func rebuildCache(root string, coll *reference.Collection) *project.Cache {
	cache, err := project.OpenCache(root)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	if err := cache.Rebuild(coll); err != nil {
		exitWithError(ExitError, "rebuilding cache: %v", err)
	}
	return cache
}
