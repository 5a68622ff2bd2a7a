package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/matsen/dblp2wd/internal/scholar"
)

// ToBibTeX converts an article and its ordered authors to an @inproceedings
// entry keyed the way dblp keys its own BibTeX ("DBLP:" + record key). The
// crossref always names the dblp proceedings record, even when ProceedingsID
// holds a Wikidata ID.
func ToBibTeX(a scholar.Article, authors []scholar.ArticleAuthor) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@inproceedings{DBLP:%s,\n", a.DBLPID))

	// Authors
	if len(authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(a.Title)))

	if a.VenueKey != "" {
		b.WriteString(fmt.Sprintf("  crossref = {DBLP:%s},\n", a.VenueKey))
	}
	if a.Year.Valid {
		b.WriteString(fmt.Sprintf("  year = {%s},\n", a.Year.String))
	}
	if a.Pages.Valid {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", strings.ReplaceAll(a.Pages.String, "-", "--")))
	}
	if a.DOI.Valid {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", a.DOI.String))
	}

	b.WriteString("}\n")

	return b.String()
}

// WriteBibTeX writes one entry per article, attaching authors by dblp key.
// authors must be ordered by ordinal within each article, as
// pipeline.ArticleAuthors returns them.
func WriteBibTeX(w io.Writer, articles []scholar.Article, authors []scholar.ArticleAuthor) error {
	byArticle := make(map[string][]scholar.ArticleAuthor)
	for _, a := range authors {
		byArticle[a.DBLPID] = append(byArticle[a.DBLPID], a)
	}

	var entries []string
	for _, a := range articles {
		entries = append(entries, ToBibTeX(a, byArticle[a.DBLPID]))
	}
	_, err := io.WriteString(w, strings.Join(entries, "\n"))
	return err
}

// formatAuthors joins author names with " and ". dblp names are kept as
// written since they do not separate given and family names.
func formatAuthors(authors []scholar.ArticleAuthor) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = escapeLatex(a.Name)
	}
	return strings.Join(names, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
