package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

func TestToBibTeX(t *testing.T) {
	a := scholar.Article{
		Title:         "Linking Things & Stuff",
		DBLPID:        "conf/semweb/Doe20",
		DOI:           table.Str("10.1/abc"),
		Pages:         table.Str("1-16"),
		Year:          table.Str("2020"),
		ProceedingsID: table.Str("conf/semweb/2020-1"),
		VenueKey:      "conf/semweb/2020-1",
	}
	authors := []scholar.ArticleAuthor{
		{DBLPID: a.DBLPID, Ordinal: 1, Name: "Jane Doe"},
		{DBLPID: a.DBLPID, Ordinal: 2, Name: "John Roe 0001"},
	}

	got := ToBibTeX(a, authors)

	wants := []string{
		"@inproceedings{DBLP:conf/semweb/Doe20,",
		"author = {Jane Doe and John Roe 0001}",
		`title = {Linking Things \& Stuff}`,
		"crossref = {DBLP:conf/semweb/2020-1}",
		"year = {2020}",
		"pages = {1--16}",
		"doi = {10.1/abc}",
	}
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("ToBibTeX() missing %q, got:\n%s", w, got)
		}
	}
}

func TestToBibTeX_RemappedVenue(t *testing.T) {
	tests := []struct {
		name    string
		article scholar.Article
		want    string
	}{
		{
			name:    "mapped to wikidata",
			article: scholar.Article{Title: "T", DBLPID: "conf/semweb/Doe20", ProceedingsID: table.Str("Q99"), VenueKey: "conf/semweb/2020-1"},
			want:    "crossref = {DBLP:conf/semweb/2020-1}",
		},
		{
			name:    "not in mapping",
			article: scholar.Article{Title: "T", DBLPID: "conf/esws/Doe21", VenueKey: "conf/esws/2021"},
			want:    "crossref = {DBLP:conf/esws/2021}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToBibTeX(tt.article, nil)
			if !strings.Contains(got, tt.want) {
				t.Errorf("ToBibTeX() missing %q, got:\n%s", tt.want, got)
			}
			if strings.Contains(got, "DBLP:Q99") {
				t.Errorf("ToBibTeX() crossref names the Wikidata ID, got:\n%s", got)
			}
		})
	}
}

func TestToBibTeX_OptionalFields(t *testing.T) {
	got := ToBibTeX(scholar.Article{Title: "T", DBLPID: "conf/x/1"}, nil)

	for _, field := range []string{"author", "year", "pages", "doi", "crossref"} {
		if strings.Contains(got, field+" = ") {
			t.Errorf("ToBibTeX() should omit null %s, got:\n%s", field, got)
		}
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToBibTeX() should close the entry, got:\n%s", got)
	}
}

func TestWriteBibTeX(t *testing.T) {
	articles := []scholar.Article{
		{Title: "A", DBLPID: "conf/x/A"},
		{Title: "B", DBLPID: "conf/x/B"},
	}
	authors := []scholar.ArticleAuthor{
		{DBLPID: "conf/x/B", Ordinal: 1, Name: "Only B"},
		{DBLPID: "conf/x/A", Ordinal: 1, Name: "First A"},
		{DBLPID: "conf/x/A", Ordinal: 2, Name: "Second A"},
	}

	var buf bytes.Buffer
	if err := WriteBibTeX(&buf, articles, authors); err != nil {
		t.Fatalf("WriteBibTeX() error = %v", err)
	}
	out := buf.String()

	if strings.Count(out, "@inproceedings{") != 2 {
		t.Errorf("want 2 entries, got:\n%s", out)
	}
	if !strings.Contains(out, "author = {First A and Second A}") {
		t.Errorf("authors of A not attached in order:\n%s", out)
	}
	if strings.Index(out, "conf/x/A") > strings.Index(out, "conf/x/B") {
		t.Errorf("entries should follow article order:\n%s", out)
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"50% & more", `50\% \& more`},
		{"a_b", `a\_b`},
		{"{x}", `\{x\}`},
		{"~^", `\textasciitilde{}\textasciicircum{}`},
	}
	for _, tt := range tests {
		if got := escapeLatex(tt.input); got != tt.want {
			t.Errorf("escapeLatex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
