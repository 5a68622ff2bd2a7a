package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/export"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

var generateDir string

var generateCmd = &cobra.Command{
	Use:   "generate <dblp-id>",
	Short: "Write the coauthor and proceedings lists for curation",
	Long: `Write coauthor_list.csv and proceedings_list.csv for the person.

Curate both files by adding a wd_id column with the Wikidata QID of each
coauthor and proceedings volume you can identify, then run publish.

Files go to --dir, else ./out inside a workspace, else the current directory.`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateDir, "dir", "", "Output directory")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	subject := subjectIRI(args[0])
	dir := outputDir(generateDir)

	store := mustOpenSession()
	if store != nil {
		defer store.Close()
	}
	mustSelectSubject(store, subject)

	svc := newService()
	ctx := cmd.Context()

	coauthors, err := loadTable(store, dblp.CoauthorsQuery.Name, subject, func() (*table.Table, error) {
		rows, err := svc.Coauthors(ctx, subject)
		if err != nil {
			return nil, err
		}
		return scholar.CoauthorTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching coauthors", err)
	}

	proceedings, err := loadTable(store, dblp.ProceedingsQuery.Name, subject, func() (*table.Table, error) {
		rows, err := svc.Proceedings(ctx, subject)
		if err != nil {
			return nil, err
		}
		return scholar.ProceedingsTable(rows), nil
	})
	if err != nil {
		exitOnError("fetching proceedings", err)
	}

	printExport(ExportResponse{
		Subject: subject,
		Files: []WrittenFile{
			mustWriteArtifact(store, dblp.CoauthorsQuery.Name, subject, filepath.Join(dir, export.CoauthorFile), coauthors),
			mustWriteArtifact(store, dblp.ProceedingsQuery.Name, subject, filepath.Join(dir, export.ProceedingsFile), proceedings),
		},
	})
}
