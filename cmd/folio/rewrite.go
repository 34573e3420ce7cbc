package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/config"
	"github.com/ebayer/folio/internal/project"
	"github.com/ebayer/folio/internal/rewrite"
)

var (
	rewriteLevel       string
	rewriteCadence     bool
	rewriteRetryFailed bool
	rewriteApply       bool
	rewriteGrounding   string
)

func init() {
	rewriteCmd.Flags().StringVar(&rewriteLevel, "level", string(rewrite.LevelLight), "Rewrite level: proofread, light, medium, heavy, stronger-1, stronger-2")
	rewriteCmd.Flags().BoolVar(&rewriteCadence, "cadence", false, "Apply the deterministic cadence pass to accepted output")
	rewriteCmd.Flags().BoolVar(&rewriteRetryFailed, "retry-failed", false, "Rerun only sections that failed in the previous run")
	rewriteCmd.Flags().BoolVar(&rewriteApply, "apply", false, "Write accepted rewrites back into section drafts")
	rewriteCmd.Flags().StringVar(&rewriteGrounding, "grounding", "", "Short context string sent alongside each section")
	rootCmd.AddCommand(rewriteCmd)
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [section-id]...",
	Short: "Rewrite section drafts while preserving citations and tokens",
	Long: `Send enabled section drafts through the rewrite service one at a time.
Citations and figure/table tokens are protected before the call and
verified after it; a section whose protected content cannot be preserved
is retried segment by segment and reverted if that also fails.

Results are saved so --retry-failed can rerun only the sections that
errored or reverted. Interrupting with Ctrl-C finishes the section in
flight and skips the rest.

Examples:
  folio rewrite --level medium
  folio rewrite introduction discussion --level heavy --apply
  folio rewrite --retry-failed`,
	RunE: runRewrite,
}

func runRewrite(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	p, err := project.Load(root)
	if err != nil {
		exitWithError(ExitDataError, "loading project: %v", err)
	}

	requested := make(map[string]bool, len(args))
	for _, id := range args {
		if p.Section(id) == nil {
			exitWithError(ExitDataError, "no section with id %q", id)
		}
		requested[id] = true
	}

	var jobs []rewrite.SectionJob
	for _, s := range p.Sections {
		if s.System || !s.Enabled || s.Raw == "" {
			continue
		}
		if len(requested) > 0 && !requested[s.ID] {
			continue
		}
		jobs = append(jobs, rewrite.SectionJob{ID: s.ID, Name: s.Name, Text: s.Raw})
	}
	if len(jobs) == 0 {
		exitWithError(ExitDataError, "no sections to rewrite")
	}

	var svcOpts []rewrite.ServiceOption
	if cfg.RewriteURL != "" {
		svcOpts = append(svcOpts, rewrite.WithBaseURL(cfg.RewriteURL))
	}
	if cfg.RewriteModel != "" {
		svcOpts = append(svcOpts, rewrite.WithModel(cfg.RewriteModel))
	}
	svc := rewrite.NewHTTPService(svcOpts...)

	level := rewrite.ParseLevel(rewriteLevel)
	opts := rewrite.Options{Grounding: rewriteGrounding, Cadence: rewriteCadence}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := func(i, n int, name string) {
		fmt.Fprintf(os.Stderr, "rewriting section %d of %d: %s\n", i, n, name)
	}

	var results []rewrite.SectionResult
	if rewriteRetryFailed {
		prior, err := loadRewriteResults(root)
		if err != nil {
			exitWithError(ExitDataError, "loading previous results: %v", err)
		}
		results = rewrite.RetryFailed(ctx, svc, jobs, prior, level, opts, progress)
	} else {
		results = rewrite.RunAll(ctx, svc, jobs, level, opts, progress)
	}

	if err := saveRewriteResults(root, results); err != nil {
		exitWithError(ExitError, "saving results: %v", err)
	}

	if rewriteApply {
		applied := 0
		for _, r := range results {
			if r.Status != rewrite.StatusAccepted {
				continue
			}
			if sec := p.Section(r.ID); sec != nil {
				sec.Raw = r.Text
				applied++
			}
		}
		if applied > 0 {
			if err := p.Save(root); err != nil {
				exitWithError(ExitError, "saving project: %v", err)
			}
		}
	}

	if humanOutput {
		for _, r := range results {
			if r.Reason != "" {
				fmt.Printf("%-16s %s (%s)\n", r.Name, r.Status, r.Reason)
			} else {
				fmt.Printf("%-16s %s\n", r.Name, r.Status)
			}
		}
	} else {
		outputJSON(results)
	}
	return nil
}

func rewriteResultsPath(root string) string {
	return filepath.Join(config.CachePath(root), "rewrite_results.json")
}

func loadRewriteResults(root string) ([]rewrite.SectionResult, error) {
	data, err := os.ReadFile(rewriteResultsPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var results []rewrite.SectionResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing results: %w", err)
	}
	return results, nil
}

func saveRewriteResults(root string, results []rewrite.SectionResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(rewriteResultsPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
