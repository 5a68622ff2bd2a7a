package pipeline

import (
	"context"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

// ProceedingsEditors returns the editors of every proceedings volume the
// person published in, keyed by the volume's full dblp record IRI and
// ordered by signature ordinal.
func (s *Service) ProceedingsEditors(ctx context.Context, subject string) (map[string][]string, error) {
	t, err := s.execute(ctx, dblp.ProceedingsEditorsQuery, subject)
	if err != nil {
		return nil, err
	}
	return t.GroupOrdered("proceedings", "ord", "name"), nil
}

// Proceedings lists the proceedings volumes containing the person's papers,
// ranked by completeness, with their editors attached. It makes two queries.
func (s *Service) Proceedings(ctx context.Context, subject string) ([]scholar.Proceedings, error) {
	t, err := s.execute(ctx, dblp.ProceedingsQuery, subject)
	if err != nil {
		return nil, err
	}
	t = t.RankByCompleteness("dblp_id")

	editors, err := s.ProceedingsEditors(ctx, subject)
	if err != nil {
		return nil, err
	}

	// Editors are keyed by the unstripped IRI, so look them up first.
	rowEditors := make([][]string, t.Len())
	for i := range t.Rows {
		if id := t.Get(i, "dblp_id"); id.Valid {
			rowEditors[i] = editors[id.String]
		}
	}

	t.StripPrefix("doi", DOIPrefix)
	t.StripPrefix("dblp_id", DBLPRecordPrefix)
	t.Apply("title", table.TrimFullStop)

	rows := make([]scholar.Proceedings, t.Len())
	for i := range t.Rows {
		title := t.Get(i, "title").Or("")
		rows[i] = scholar.Proceedings{
			Title:        title,
			EntityToLink: title,
			Editors:      rowEditors[i],
			DBLPID:       t.Get(i, "dblp_id").Or(""),
			DOI:          t.Get(i, "doi"),
			ISBN:         t.Get(i, "isbn"),
			Year:         t.Get(i, "year"),
			Series:       t.Get(i, "series"),
			SeriesVolume: t.Get(i, "seriesVolume"),
			Publisher:    t.Get(i, "publisher"),
		}
	}

	s.logger.Info("derived proceedings", "subject", subject, "rows", len(rows), "with_editors", len(editors))
	return rows, nil
}
