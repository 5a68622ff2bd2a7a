package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/mapping"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

var (
	articlesOut            string
	articlesProceedingsMap string
)

var articlesCmd = &cobra.Command{
	Use:   "articles <dblp-id>",
	Short: "List a person's proceedings papers",
	Long: `List the person's papers in proceedings. With --proceedings-map, the
proceedings_id column holds the venue's Wikidata QID (empty when unmapped)
instead of its dblp key.

The mapping file is a curated proceedings list (.csv, .tsv, or .xlsx) with
at least title, dblp_id, and wd_id columns.

Examples:
  dblp2wd articles 134/6661 --human
  dblp2wd articles 134/6661 --proceedings-map proceedings.csv --out articles.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runArticles,
}

func init() {
	articlesCmd.Flags().StringVarP(&articlesOut, "out", "o", "", "Write to a .csv, .tsv, .json, or .xlsx file")
	articlesCmd.Flags().StringVar(&articlesProceedingsMap, "proceedings-map", "", "Curated proceedings file with a wd_id column")
	rootCmd.AddCommand(articlesCmd)
}

func runArticles(cmd *cobra.Command, args []string) {
	subject := subjectIRI(args[0])
	venues := mustLoadMapping(articlesProceedingsMap, mapping.ProceedingsSpec)

	store := mustOpenSession()
	if store != nil {
		defer store.Close()
	}
	mustSelectSubject(store, subject)

	svc := newService()
	key := cacheKey(dblp.ArticlesQuery.Name, articlesProceedingsMap)
	t, err := loadTable(store, key, subject, func() (*table.Table, error) {
		rows, err := svc.Articles(cmd.Context(), subject, venues)
		if err != nil {
			return nil, err
		}
		return scholar.ArticleTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching articles", err)
	}

	emitTable(store, dblp.ArticlesQuery.Name, subject, articlesOut, t)
}
