package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

var coauthorsOut string

var coauthorsCmd = &cobra.Command{
	Use:   "coauthors <dblp-id>",
	Short: "List a person's coauthors with their external identifiers",
	Long: `List every coauthor of the dblp person, most completely identified first.
entity_to_link is the coauthor's Wikidata QID when dblp knows it, else the name.

The dblp-id is a person IRI (https://dblp.org/pid/134/6661) or bare pid (134/6661).

Examples:
  dblp2wd coauthors 134/6661 --human
  dblp2wd coauthors 134/6661 --out coauthor_list.xlsx`,
	Args: cobra.ExactArgs(1),
	Run:  runCoauthors,
}

func init() {
	coauthorsCmd.Flags().StringVarP(&coauthorsOut, "out", "o", "", "Write to a .csv, .tsv, .json, or .xlsx file")
	rootCmd.AddCommand(coauthorsCmd)
}

func runCoauthors(cmd *cobra.Command, args []string) {
	subject := subjectIRI(args[0])
	store := mustOpenSession()
	if store != nil {
		defer store.Close()
	}
	mustSelectSubject(store, subject)

	svc := newService()
	t, err := loadTable(store, dblp.CoauthorsQuery.Name, subject, func() (*table.Table, error) {
		rows, err := svc.Coauthors(cmd.Context(), subject)
		if err != nil {
			return nil, err
		}
		return scholar.CoauthorTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching coauthors", err)
	}

	emitTable(store, dblp.CoauthorsQuery.Name, subject, coauthorsOut, t)
}
