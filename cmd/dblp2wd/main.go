// Package main provides the dblp2wd CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// refresh bypasses cached tables in the session
	refresh bool
	verbose bool
)

// Set up in PersistentPreRun; valid for every subcommand.
var (
	globalCfg     *config.GlobalConfig
	logger        = slog.Default()
	loggerCleanup = func() error { return nil }
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	loggerCleanup()
	if err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dblp2wd",
	Short: "Derive Wikidata curation tables from dblp",
	Long: `dblp2wd queries the dblp knowledge graph for one person and derives the
tables needed to link their coauthors, proceedings, and papers to Wikidata.

Workflow:
  1. dblp2wd search "Jane Doe"            pick the dblp person
  2. dblp2wd generate <dblp-id>           coauthor + proceedings lists
     (curate them: add a wd_id column with Wikidata QIDs)
  3. dblp2wd publish <dblp-id> \
       --coauthor-map coauthors.csv \
       --proceedings-map proceedings.csv  article + article-author lists

Run 'dblp2wd init' to keep session state (cached tables, export history)
in a .dblp2wd directory. Without it every command runs stateless.

All commands output JSON by default. Use --human for readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRun:  setup,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "Ignore cached tables and query dblp again")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.Version = Version
}

// setup loads .env, the global config, and the logger.
func setup(cmd *cobra.Command, args []string) {
	// Load .env file if present (for DBLP2WD_* overrides)
	_ = godotenv.Load()

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v\n\n%s", err, config.HelpfulConfigMessage())
	}
	globalCfg = cfg

	level, _ := config.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger, loggerCleanup = config.SetupLogger(cfg.LogFile, level)
	slog.SetDefault(logger)
}
