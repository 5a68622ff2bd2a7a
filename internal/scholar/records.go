// Package scholar defines the typed rows of the four curation tables and the
// candidate search result, and converts them to tables for export.
package scholar

import (
	"strconv"
	"strings"

	"github.com/matsen/dblp2wd/internal/table"
)

// EditorSeparator joins editor names in a single CSV cell.
const EditorSeparator = "|"

// Public column orders of the produced artifacts.
var (
	CandidateColumns     = []string{"name", "url"}
	CoauthorColumns      = []string{"name", "entity_to_link", "wikidata", "dblp_id", "orcid", "orkg", "scholar", "acm", "github", "twitter"}
	ProceedingsColumns   = []string{"title", "entity_to_link", "editors", "dblp_id", "doi", "isbn", "year", "series", "seriesVolume", "publisher"}
	ArticleColumns       = []string{"title", "entity_to_link", "dblp_id", "doi", "pages", "year", "proceedings_id"}
	ArticleAuthorColumns = []string{"dblp_id", "title", "ordinal", "author_wd_id", "author_name_string"}
)

// Candidate is a dblp person matching a name search.
type Candidate struct {
	Name string `json:"name"`
	URL  string `json:"url"` // subject identifier
}

// Coauthor is one row of the coauthor table.
type Coauthor struct {
	Name         string      `json:"name"`
	EntityToLink string      `json:"entity_to_link"` // Wikidata QID, else Name
	Wikidata     table.Value `json:"wikidata"`
	DBLPID       string      `json:"dblp_id"`
	ORCID        table.Value `json:"orcid"`
	ORKG         table.Value `json:"orkg"`
	Scholar      table.Value `json:"scholar"`
	ACM          table.Value `json:"acm"`
	GitHub       table.Value `json:"github"`
	Twitter      table.Value `json:"twitter"`
}

// Proceedings is one row of the proceedings table.
type Proceedings struct {
	Title        string      `json:"title"`
	EntityToLink string      `json:"entity_to_link"`
	Editors      []string    `json:"editors"` // nil when dblp lists no editors
	DBLPID       string      `json:"dblp_id"`
	DOI          table.Value `json:"doi"`
	ISBN         table.Value `json:"isbn"`
	Year         table.Value `json:"year"`
	Series       table.Value `json:"series"`
	SeriesVolume table.Value `json:"seriesVolume"`
	Publisher    table.Value `json:"publisher"`
}

// Article is one row of the scholarly article table.
type Article struct {
	Title         string      `json:"title"`
	EntityToLink  string      `json:"entity_to_link"`
	DBLPID        string      `json:"dblp_id"`
	DOI           table.Value `json:"doi"`
	Pages         table.Value `json:"pages"`
	Year          table.Value `json:"year"`
	ProceedingsID table.Value `json:"proceedings_id"` // dblp key, or QID when remapped

	// VenueKey is the dblp proceedings key, kept when ProceedingsID is remapped.
	VenueKey string `json:"-"`
}

// ArticleAuthor is one author position on an article. Exactly one of
// AuthorWDID and AuthorNameString is set.
type ArticleAuthor struct {
	DBLPID           string      `json:"dblp_id"`
	Title            string      `json:"title"`
	Ordinal          int         `json:"ordinal"` // 1-based
	AuthorWDID       table.Value `json:"author_wd_id"`
	AuthorNameString table.Value `json:"author_name_string"`
	Name             string      `json:"-"` // dblp primary name, the join key
}

// Resolve sets the author identity: the Wikidata ID when qid is non-empty,
// otherwise the literal name.
func (a *ArticleAuthor) Resolve(qid string) {
	if qid != "" {
		a.AuthorWDID = table.Str(qid)
		a.AuthorNameString = table.Null
		return
	}
	a.AuthorWDID = table.Null
	a.AuthorNameString = table.Str(a.Name)
}

// CandidateTable converts candidates to a table.
func CandidateTable(rows []Candidate) *table.Table {
	t := table.New(CandidateColumns...)
	for _, r := range rows {
		t.Rows = append(t.Rows, table.Row{table.Str(r.Name), table.Str(r.URL)})
	}
	return t
}

// CoauthorTable converts coauthors to a table.
func CoauthorTable(rows []Coauthor) *table.Table {
	t := table.New(CoauthorColumns...)
	for _, r := range rows {
		t.Rows = append(t.Rows, table.Row{
			table.Str(r.Name), table.Str(r.EntityToLink), r.Wikidata, table.Str(r.DBLPID),
			r.ORCID, r.ORKG, r.Scholar, r.ACM, r.GitHub, r.Twitter,
		})
	}
	return t
}

// ProceedingsTable converts proceedings to a table.
func ProceedingsTable(rows []Proceedings) *table.Table {
	t := table.New(ProceedingsColumns...)
	for _, r := range rows {
		editors := table.Null
		if r.Editors != nil {
			editors = table.Str(strings.Join(r.Editors, EditorSeparator))
		}
		t.Rows = append(t.Rows, table.Row{
			table.Str(r.Title), table.Str(r.EntityToLink), editors, table.Str(r.DBLPID),
			r.DOI, r.ISBN, r.Year, r.Series, r.SeriesVolume, r.Publisher,
		})
	}
	return t
}

// ArticleTable converts articles to a table.
func ArticleTable(rows []Article) *table.Table {
	t := table.New(ArticleColumns...)
	for _, r := range rows {
		t.Rows = append(t.Rows, table.Row{
			table.Str(r.Title), table.Str(r.EntityToLink), table.Str(r.DBLPID),
			r.DOI, r.Pages, r.Year, r.ProceedingsID,
		})
	}
	return t
}

// ArticleAuthorTable converts article authors to a table.
func ArticleAuthorTable(rows []ArticleAuthor) *table.Table {
	t := table.New(ArticleAuthorColumns...)
	for _, r := range rows {
		t.Rows = append(t.Rows, table.Row{
			table.Str(r.DBLPID), table.Str(r.Title), table.Str(strconv.Itoa(r.Ordinal)),
			r.AuthorWDID, r.AuthorNameString,
		})
	}
	return t
}
