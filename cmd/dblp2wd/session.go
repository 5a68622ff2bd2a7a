package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or reset the workspace session",
	Long: `The session remembers the selected dblp person, caches the tables derived
for them, and keeps a history of written files. Selecting a different person
drops the cached tables.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected subject and its cached tables",
	Args:  cobra.NoArgs,
	Run:   runSessionShow,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the selected subject and drop cached tables",
	Args:  cobra.NoArgs,
	Run:   runSessionClear,
}

var sessionExportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List files written from this workspace",
	Args:  cobra.NoArgs,
	Run:   runSessionExports,
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd, sessionClearCmd, sessionExportsCmd)
	rootCmd.AddCommand(sessionCmd)
}

// SessionResponse is the response for session show.
type SessionResponse struct {
	Subject    string            `json:"subject"`
	Cached     []string          `json:"cached"`
	Operations []OperationStatus `json:"operations"`
}

// OperationStatus reports whether a dblp derivation has a cached table.
type OperationStatus struct {
	Name   string `json:"name"`
	Cached bool   `json:"cached"`
}

// operationStatus matches cache keys against every dblp query. A key derived
// with a mapping file ("articles@/path#hash") counts for its operation.
func operationStatus(cached []string) []OperationStatus {
	out := make([]OperationStatus, len(dblp.Queries))
	for i, q := range dblp.Queries {
		out[i] = OperationStatus{Name: q.Name}
		for _, key := range cached {
			if key == q.Name || strings.HasPrefix(key, q.Name+"@") {
				out[i].Cached = true
				break
			}
		}
	}
	return out
}

func runSessionShow(cmd *cobra.Command, args []string) {
	store := mustRequireSession()
	defer store.Close()

	subject, err := store.Subject()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	cached, err := store.CachedOps(subject)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := SessionResponse{Subject: subject, Cached: cached, Operations: operationStatus(cached)}
	if !humanOutput {
		outputJSON(resp)
		return
	}
	if subject == "" {
		fmt.Println("No subject selected.")
		return
	}
	fmt.Printf("Subject: %s\n\n", subject)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tCACHED")
	for _, op := range resp.Operations {
		mark := "-"
		if op.Cached {
			mark = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\n", op.Name, mark)
	}
	w.Flush()
}

func runSessionClear(cmd *cobra.Command, args []string) {
	store := mustRequireSession()
	defer store.Close()

	if err := store.Clear(); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Println("Session cleared.")
		return
	}
	outputJSON(StatusResponse{Status: "cleared"})
}

func runSessionExports(cmd *cobra.Command, args []string) {
	store := mustRequireSession()
	defer store.Close()

	exports, err := store.Exports()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		outputJSON(exports)
		return
	}
	if len(exports) == 0 {
		fmt.Println("No exports recorded.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOPERATION\tROWS\tPATH\tRUN")
	for _, e := range exports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Operation, e.Rows, e.Path, e.RunID[:8])
	}
	w.Flush()
}
