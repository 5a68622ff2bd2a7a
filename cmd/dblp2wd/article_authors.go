package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/mapping"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

var (
	articleAuthorsOut         string
	articleAuthorsCoauthorMap string
)

var articleAuthorsCmd = &cobra.Command{
	Use:   "article-authors <dblp-id>",
	Short: "List every author position on a person's papers",
	Long: `List one row per (paper, author position). With --coauthor-map, authors
whose name appears in the curated coauthor file get author_wd_id; everyone
else keeps the literal name in author_name_string.

The mapping file is a curated coauthor list (.csv, .tsv, or .xlsx) with at
least dblp_id, name, and wd_id columns.

Examples:
  dblp2wd article-authors 134/6661 --coauthor-map coauthors.xlsx --human`,
	Args: cobra.ExactArgs(1),
	Run:  runArticleAuthors,
}

func init() {
	articleAuthorsCmd.Flags().StringVarP(&articleAuthorsOut, "out", "o", "", "Write to a .csv, .tsv, .json, or .xlsx file")
	articleAuthorsCmd.Flags().StringVar(&articleAuthorsCoauthorMap, "coauthor-map", "", "Curated coauthor file with a wd_id column")
	rootCmd.AddCommand(articleAuthorsCmd)
}

func runArticleAuthors(cmd *cobra.Command, args []string) {
	subject := subjectIRI(args[0])
	authors := mustLoadMapping(articleAuthorsCoauthorMap, mapping.CoauthorSpec)

	store := mustOpenSession()
	if store != nil {
		defer store.Close()
	}
	mustSelectSubject(store, subject)

	svc := newService()
	key := cacheKey(dblp.ArticleAuthorsQuery.Name, articleAuthorsCoauthorMap)
	t, err := loadTable(store, key, subject, func() (*table.Table, error) {
		rows, err := svc.ArticleAuthors(cmd.Context(), subject, authors)
		if err != nil {
			return nil, err
		}
		return scholar.ArticleAuthorTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching article authors", err)
	}

	emitTable(store, dblp.ArticleAuthorsQuery.Name, subject, articleAuthorsOut, t)
}
