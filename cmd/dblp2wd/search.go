package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/scholar"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Find dblp persons by name",
	Long: `Search dblp for persons matching a name. Each candidate's url is the
subject identifier the other commands take.

Examples:
  dblp2wd search "Jane Doe"
  dblp2wd search "Doe" --limit 5 --human`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", dblp.DefaultSearchLimit, "Maximum number of candidates")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	name := strings.TrimSpace(args[0])
	if name == "" {
		exitWithError(ExitError, "search name must not be empty")
	}
	if searchLimit <= 0 {
		exitWithError(ExitError, "--limit must be positive")
	}

	candidates, err := newService().SearchCandidates(cmd.Context(), name, searchLimit)
	if err != nil {
		exitOnError("searching", err)
	}

	if humanOutput && len(candidates) == 0 {
		fmt.Printf("No dblp persons match %q.\n", name)
		return
	}
	printTable(scholar.CandidateTable(candidates))
}
