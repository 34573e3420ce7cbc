package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebayer/folio/internal/style"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set repository configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show repository configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		cfg := mustLoadConfig(root)

		if humanOutput {
			fmt.Printf("style:          %s\n", cfg.StyleID)
			fmt.Printf("styles-dir:     %s\n", cfg.StylesDir)
			fmt.Printf("rewrite-url:    %s\n", cfg.RewriteURL)
			fmt.Printf("rewrite-model:  %s\n", cfg.RewriteModel)
			fmt.Printf("crossref-email: %s\n", cfg.CrossrefEmail)
			fmt.Printf("density:        %s\n", cfg.Density)
		} else {
			outputJSON(cfg)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys: style, styles-dir, rewrite-url, rewrite-model, crossref-email, density.

Examples:
  folio config set style vancouver
  folio config set styles-dir ./styles`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	key, value := args[0], args[1]
	switch key {
	case "style":
		if !style.Known(value) {
			exitWithError(ExitDataError, "unknown style %q (known: %v)", value, style.IDs())
		}
		cfg.StyleID = value
	case "styles-dir":
		cfg.StylesDir = value
	case "rewrite-url":
		cfg.RewriteURL = value
	case "rewrite-model":
		cfg.RewriteModel = value
	case "crossref-email":
		cfg.CrossrefEmail = value
	case "density":
		cfg.Density = value
	default:
		exitWithError(ExitDataError, "unknown config key: %s", key)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("%s = %s\n", key, value)
	} else {
		outputJSON(map[string]string{"status": "updated", "key": key, "value": value})
	}
	return nil
}
