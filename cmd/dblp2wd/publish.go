package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/export"
	"github.com/matsen/dblp2wd/internal/mapping"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/session"
	"github.com/matsen/dblp2wd/internal/table"
)

var (
	publishDir            string
	publishCoauthorMap    string
	publishProceedingsMap string
	publishBibTeX         bool
)

var publishCmd = &cobra.Command{
	Use:   "publish <dblp-id>",
	Short: "Write the article and article-author lists using curated mappings",
	Long: `Join the person's papers against the curated coauthor and proceedings
files and write scholarly_article_list.csv and
scholarly_article_author_list.csv, ready for import into Wikidata.

Examples:
  dblp2wd publish 134/6661 \
    --coauthor-map out/coauthor_list.csv \
    --proceedings-map out/proceedings_list.xlsx --bibtex`,
	Args: cobra.ExactArgs(1),
	Run:  runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishDir, "dir", "", "Output directory")
	publishCmd.Flags().StringVar(&publishCoauthorMap, "coauthor-map", "", "Curated coauthor file with a wd_id column")
	publishCmd.Flags().StringVar(&publishProceedingsMap, "proceedings-map", "", "Curated proceedings file with a wd_id column")
	publishCmd.Flags().BoolVar(&publishBibTeX, "bibtex", false, "Also write scholarly_article_list.bib")
	publishCmd.MarkFlagRequired("coauthor-map")
	publishCmd.MarkFlagRequired("proceedings-map")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) {
	subject := subjectIRI(args[0])
	dir := outputDir(publishDir)
	authorMap := mustLoadMapping(publishCoauthorMap, mapping.CoauthorSpec)
	venueMap := mustLoadMapping(publishProceedingsMap, mapping.ProceedingsSpec)

	store := mustOpenSession()
	if store != nil {
		defer store.Close()
	}
	mustSelectSubject(store, subject)

	// BibTeX is rendered from typed rows, which the cache does not keep.
	if publishBibTeX {
		refresh = true
	}

	svc := newService()
	ctx := cmd.Context()

	var articleRows []scholar.Article
	articles, err := loadTable(store, cacheKey(dblp.ArticlesQuery.Name, publishProceedingsMap), subject, func() (*table.Table, error) {
		rows, err := svc.Articles(ctx, subject, venueMap)
		if err != nil {
			return nil, err
		}
		articleRows = rows
		return scholar.ArticleTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching articles", err)
	}

	var authorRows []scholar.ArticleAuthor
	authors, err := loadTable(store, cacheKey(dblp.ArticleAuthorsQuery.Name, publishCoauthorMap), subject, func() (*table.Table, error) {
		rows, err := svc.ArticleAuthors(ctx, subject, authorMap)
		if err != nil {
			return nil, err
		}
		authorRows = rows
		return scholar.ArticleAuthorTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching article authors", err)
	}

	files := []WrittenFile{
		mustWriteArtifact(store, dblp.ArticlesQuery.Name, subject, filepath.Join(dir, export.ArticleFile), articles),
		mustWriteArtifact(store, dblp.ArticleAuthorsQuery.Name, subject, filepath.Join(dir, export.ArticleAuthorFile), authors),
	}

	if publishBibTeX {
		files = append(files, mustWriteBibTeX(store, subject, filepath.Join(dir, export.ArticleBibTeXFile), articleRows, authorRows))
	}

	printExport(ExportResponse{Subject: subject, Files: files})
}

// mustWriteBibTeX writes one @inproceedings entry per article.
func mustWriteBibTeX(store *session.Store, subject, path string, articles []scholar.Article, authors []scholar.ArticleAuthor) WrittenFile {
	f, err := os.Create(path)
	if err != nil {
		exitWithError(ExitError, "creating %s: %v", path, err)
	}
	if err := export.WriteBibTeX(f, articles, authors); err != nil {
		f.Close()
		exitWithError(ExitError, "writing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		exitWithError(ExitError, "writing %s: %v", path, err)
	}

	written := WrittenFile{Operation: "bibtex", Path: path, Rows: len(articles)}
	if store != nil {
		if e, err := store.RecordExport(written.Operation, subject, path, len(articles)); err == nil {
			written.RunID = e.RunID
		}
	}
	return written
}
