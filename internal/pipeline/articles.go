package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/mapping"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

// Articles lists the person's inproceedings papers. When venues is non-nil,
// proceedings_id is replaced by the mapped Wikidata ID, and becomes null for
// venues the mapping does not cover.
func (s *Service) Articles(ctx context.Context, subject string, venues *mapping.Map) ([]scholar.Article, error) {
	t, err := s.execute(ctx, dblp.ArticlesQuery, subject)
	if err != nil {
		return nil, err
	}

	t.StripPrefix("dblp_id", DBLPRecordPrefix)
	t.StripPrefix("proceedings_id", DBLPRecordPrefix)
	t.StripPrefix("doi", DOIPrefix)
	t.Apply("title", table.TrimFullStop)

	mapped := 0
	rows := make([]scholar.Article, t.Len())
	for i := range t.Rows {
		title := t.Get(i, "title").Or("")
		key := t.Get(i, "proceedings_id")
		venue := key
		if venues != nil {
			venue = remap(venues, venue)
			if venue.Valid {
				mapped++
			}
		}
		rows[i] = scholar.Article{
			Title:         title,
			EntityToLink:  title,
			DBLPID:        t.Get(i, "dblp_id").Or(""),
			DOI:           t.Get(i, "doi"),
			Pages:         t.Get(i, "pages"),
			Year:          t.Get(i, "year"),
			ProceedingsID: venue,
			VenueKey:      key.Or(""),
		}
	}

	s.logger.Info("derived articles", "subject", subject, "rows", len(rows), "venues_mapped", mapped)
	return rows, nil
}

// remap replaces a key by its mapped value, or null when unmapped.
func remap(m *mapping.Map, key table.Value) table.Value {
	if !key.Valid {
		return table.Null
	}
	if v, ok := m.Lookup(key.String); ok {
		return table.Str(v)
	}
	return table.Null
}

// ArticleAuthors lists every author position on the person's papers, ordered
// by article and ordinal. Authors whose name appears in authors get their
// Wikidata ID; all others keep their literal name. A nil map resolves nobody.
func (s *Service) ArticleAuthors(ctx context.Context, subject string, authors *mapping.Map) ([]scholar.ArticleAuthor, error) {
	t, err := s.execute(ctx, dblp.ArticleAuthorsQuery, subject)
	if err != nil {
		return nil, err
	}

	t.StripPrefix("dblp_id", DBLPRecordPrefix)
	t.Apply("title", table.TrimFullStop)

	resolved := 0
	rows := make([]scholar.ArticleAuthor, t.Len())
	for i := range t.Rows {
		ord := t.Get(i, "ordinal")
		ordinal, err := strconv.Atoi(ord.String)
		if !ord.Valid || err != nil || ordinal < 1 {
			return nil, &dblp.RemoteQueryError{
				Service: dblp.ServiceSPARQL,
				Message: fmt.Sprintf("article-authors row %d has invalid ordinal %q", i, ord.String),
				Err:     dblp.ErrInvalidResponse,
			}
		}

		a := scholar.ArticleAuthor{
			DBLPID:  t.Get(i, "dblp_id").Or(""),
			Title:   t.Get(i, "title").Or(""),
			Ordinal: ordinal,
			Name:    t.Get(i, "name").Or(""),
		}
		qid, _ := authors.Lookup(a.Name)
		a.Resolve(qid)
		if qid != "" {
			resolved++
		}
		rows[i] = a
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].DBLPID != rows[b].DBLPID {
			return rows[a].DBLPID < rows[b].DBLPID
		}
		return rows[a].Ordinal < rows[b].Ordinal
	})

	s.logger.Info("derived article authors", "subject", subject, "rows", len(rows), "resolved", resolved)
	return rows, nil
}
