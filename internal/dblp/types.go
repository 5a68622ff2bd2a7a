// Package dblp provides a client for the dblp SPARQL endpoint and author
// search API, the query templates the pipeline runs, and normalization of
// SPARQL JSON result sets into tables.
package dblp

// Results is a SPARQL 1.1 JSON result set.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Binding maps variable names to bound terms. Variables bound by OPTIONAL
// clauses that did not match are absent.
type Binding map[string]Term

// Term is a bound RDF term.
type Term struct {
	Type     string `json:"type"` // uri, literal, bnode
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// searchResponse is the body of the author search API.
type searchResponse struct {
	Result struct {
		Hits struct {
			Total string `json:"@total"`
			Hit   []struct {
				Info struct {
					Author string `json:"author"`
					URL    string `json:"url"`
				} `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

// AuthorHit is one author search result.
type AuthorHit struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
