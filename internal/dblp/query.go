package dblp

import (
	"fmt"
	"strings"
	"text/template"
)

// Query is a fixed SPARQL template with a single ?person parameter.
type Query struct {
	Name string
	Vars []string // result variables, in output order
	tmpl *template.Template
}

// Bind renders the query with subject bound to ?person as an IRI term.
//
// The identifier is not validated. Characters that may not appear inside an
// IRIREF are percent-encoded so the term cannot be closed early; a
// well-formed absolute IRI comes through unchanged.
func (q Query) Bind(subject string) string {
	var sb strings.Builder
	data := struct{ Person string }{Person: IRITerm(subject)}
	if err := q.tmpl.Execute(&sb, data); err != nil {
		// Templates are package constants; a failure here is a programming error.
		panic(fmt.Sprintf("rendering %s query: %v", q.Name, err))
	}
	return sb.String()
}

// IRITerm renders s as a SPARQL IRIREF, <...>.
func IRITerm(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('<')
	for _, r := range s {
		switch {
		case r <= 0x20, r == 0x7f:
			fmt.Fprintf(&sb, "%%%02X", r)
		case strings.ContainsRune(`<>"{}|^`+"`"+`\`, r):
			fmt.Fprintf(&sb, "%%%02X", r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

func newQuery(name string, vars []string, text string) Query {
	return Query{
		Name: name,
		Vars: vars,
		tmpl: template.Must(template.New(name).Parse(text)),
	}
}

const prefixes = `PREFIX dblp: <https://dblp.org/rdf/schema#>
PREFIX owl: <http://www.w3.org/2002/07/owl#>
`

// CoauthorsQuery lists everyone who shares an inproceedings paper with the
// person, with their external identifiers.
var CoauthorsQuery = newQuery("coauthors",
	[]string{"dblp_id", "name", "wikidata", "orcid", "orkg", "scholar", "acm", "github", "twitter"},
	prefixes+`
SELECT DISTINCT ?dblp_id ?name ?wikidata ?orcid ?orkg ?scholar ?acm ?github ?twitter {
  VALUES ?person { {{.Person}} }
  ?paper a dblp:Publication, dblp:Inproceedings;
    dblp:hasSignature ?sign;
    dblp:hasSignature ?sign_coauthor .
  ?sign dblp:signatureCreator ?person .
  ?sign_coauthor dblp:signatureCreator ?dblp_id .

  ?dblp_id dblp:primaryCreatorName ?name .
  OPTIONAL { ?dblp_id dblp:orcid ?orcid }
  OPTIONAL { ?dblp_id dblp:wikidata ?wikidata }
  OPTIONAL { ?dblp_id dblp:webpage ?scholar . FILTER (STRSTARTS(str(?scholar), "https://scholar.google.com/")) }
  OPTIONAL { ?dblp_id dblp:webpage ?github . FILTER (STRSTARTS(str(?github), "https://github.com/")) }
  OPTIONAL { ?dblp_id dblp:webpage ?twitter . FILTER (STRSTARTS(str(?twitter), "https://twitter.com/")) }
  OPTIONAL { ?dblp_id dblp:webpage ?acm . FILTER (STRSTARTS(str(?acm), "https://dl.acm.org/profile/")) }
  OPTIONAL { ?dblp_id owl:sameAs ?orkg . FILTER (STRSTARTS(str(?orkg), "https://orkg.org/resource/")) }
}
ORDER BY ?dblp_id
`)

// ProceedingsQuery lists the proceedings volumes containing the person's
// inproceedings papers.
var ProceedingsQuery = newQuery("proceedings",
	[]string{"dblp_id", "title", "doi", "isbn", "year", "series", "seriesVolume", "publisher"},
	prefixes+`
SELECT DISTINCT ?dblp_id ?title ?doi ?isbn ?year ?series ?seriesVolume ?publisher {
  VALUES ?person { {{.Person}} }
  ?paper a dblp:Publication, dblp:Inproceedings;
    dblp:hasSignature ?sign;
    dblp:publishedAsPartOf ?dblp_id .
  ?sign dblp:signatureCreator ?person .

  ?dblp_id dblp:title ?title .
  OPTIONAL { ?dblp_id dblp:isbn ?isbn }
  OPTIONAL { ?dblp_id dblp:yearOfPublication ?year }
  OPTIONAL { ?dblp_id dblp:doi ?doi }
  OPTIONAL { ?dblp_id dblp:publishedBy ?publisher }
  OPTIONAL { ?dblp_id dblp:publishedInSeries ?series }
  OPTIONAL { ?dblp_id dblp:publishedInSeriesVolume ?seriesVolume }
}
ORDER BY ?dblp_id
`)

// ProceedingsEditorsQuery lists editor signatures of those proceedings.
var ProceedingsEditorsQuery = newQuery("proceedings-editors",
	[]string{"proceedings", "ord", "name"},
	prefixes+`
SELECT DISTINCT ?proceedings ?ord ?name {
  VALUES ?person { {{.Person}} }
  ?paper a dblp:Publication, dblp:Inproceedings;
    dblp:hasSignature ?sign;
    dblp:publishedAsPartOf ?proceedings .
  ?sign dblp:signatureCreator ?person .

  ?proceedings dblp:title ?title .
  ?proceedings dblp:hasSignature ?proc_sign .
  ?proc_sign dblp:signatureCreator ?editor;
    dblp:signatureOrdinal ?ord .
  ?editor dblp:primaryCreatorName ?name .
}
`)

// ArticlesQuery lists the person's inproceedings papers.
var ArticlesQuery = newQuery("articles",
	[]string{"dblp_id", "title", "doi", "pages", "year", "proceedings_id"},
	prefixes+`
SELECT DISTINCT ?dblp_id ?title ?doi ?pages ?year ?proceedings_id {
  VALUES ?person { {{.Person}} }
  ?dblp_id a dblp:Publication, dblp:Inproceedings;
    dblp:hasSignature ?sign;
    dblp:title ?title;
    dblp:publishedAsPartOf ?proceedings_id .
  ?sign dblp:signatureCreator ?person .

  OPTIONAL { ?dblp_id dblp:doi ?doi }
  OPTIONAL { ?dblp_id dblp:pagination ?pages }
  OPTIONAL { ?dblp_id dblp:yearOfPublication ?year }
}
`)

// ArticleAuthorsQuery lists every author signature on the person's
// inproceedings papers.
var ArticleAuthorsQuery = newQuery("article-authors",
	[]string{"dblp_id", "title", "ordinal", "name"},
	prefixes+`
SELECT DISTINCT ?dblp_id ?title ?ordinal ?name {
  VALUES ?person { {{.Person}} }
  ?dblp_id a dblp:Publication, dblp:Inproceedings;
    dblp:title ?title;
    dblp:hasSignature ?sign;
    dblp:hasSignature ?sign_coauthor .
  ?sign dblp:signatureCreator ?person .
  ?sign_coauthor dblp:signatureCreator ?dblp_person;
    dblp:signatureOrdinal ?ordinal .

  ?dblp_person dblp:primaryCreatorName ?name .
}
`)

// Queries lists every template in pipeline order.
var Queries = []Query{
	CoauthorsQuery,
	ProceedingsQuery,
	ProceedingsEditorsQuery,
	ArticlesQuery,
	ArticleAuthorsQuery,
}
