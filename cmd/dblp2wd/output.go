package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/matsen/dblp2wd/internal/config"
	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/export"
	"github.com/matsen/dblp2wd/internal/table"
)

// HumanCellMaxLen bounds cell width in --human tables.
const HumanCellMaxLen = 48

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		enc.Encode(ErrorResponse{Error: msg})
	}
	loggerCleanup()
	os.Exit(code)
}

// exitOnError exits with the code exitCodeFor assigns to err.
func exitOnError(context string, err error) {
	exitWithError(exitCodeFor(err), "%s", errorMessage(context, err))
}

// errorMessage prefixes err with context and, when dblp throttled us, says
// how to back off.
func errorMessage(context string, err error) string {
	msg := fmt.Sprintf("%s: %v", context, err)
	if dblp.IsRateLimited(err) {
		msg += fmt.Sprintf("\n\ndblp is throttling requests. Wait a minute, or lower rate_limit in %s.", config.GlobalConfigPath())
	}
	return msg
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// WrittenFile describes one artifact written by an export command.
type WrittenFile struct {
	Operation string `json:"operation"`
	Path      string `json:"path"`
	Rows      int    `json:"rows"`
	RunID     string `json:"run_id,omitempty"`
}

// ExportResponse is the response for commands that write files.
type ExportResponse struct {
	Subject string        `json:"subject"`
	Files   []WrittenFile `json:"files"`
}

// printTable writes t to stdout: JSON records by default, aligned columns
// with --human.
func printTable(t *table.Table) {
	if !humanOutput {
		if err := export.Write(os.Stdout, t, export.FormatJSON, ""); err != nil {
			exitWithError(ExitError, "writing output: %v", err)
		}
		return
	}

	if t.Len() == 0 {
		fmt.Println("No rows.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = truncateString(v.Or("-"), HumanCellMaxLen)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	fmt.Printf("\n%d rows\n", t.Len())
}

// printExport reports written files.
func printExport(resp ExportResponse) {
	if !humanOutput {
		outputJSON(resp)
		return
	}
	for _, f := range resp.Files {
		fmt.Printf("Wrote %d rows to %s\n", f.Rows, f.Path)
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
