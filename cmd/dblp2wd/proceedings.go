package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

var proceedingsOut string

var proceedingsCmd = &cobra.Command{
	Use:   "proceedings <dblp-id>",
	Short: "List the proceedings a person published in",
	Long: `List the proceedings volumes containing the person's papers, with editors
in order (separated by "|") and bibliographic details.

Examples:
  dblp2wd proceedings 134/6661 --human
  dblp2wd proceedings 134/6661 --out proceedings_list.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runProceedings,
}

func init() {
	proceedingsCmd.Flags().StringVarP(&proceedingsOut, "out", "o", "", "Write to a .csv, .tsv, .json, or .xlsx file")
	rootCmd.AddCommand(proceedingsCmd)
}

func runProceedings(cmd *cobra.Command, args []string) {
	subject := subjectIRI(args[0])
	store := mustOpenSession()
	if store != nil {
		defer store.Close()
	}
	mustSelectSubject(store, subject)

	svc := newService()
	t, err := loadTable(store, dblp.ProceedingsQuery.Name, subject, func() (*table.Table, error) {
		rows, err := svc.Proceedings(cmd.Context(), subject)
		if err != nil {
			return nil, err
		}
		return scholar.ProceedingsTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching proceedings", err)
	}

	emitTable(store, dblp.ProceedingsQuery.Name, subject, proceedingsOut, t)
}
