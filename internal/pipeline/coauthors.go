package pipeline

import (
	"context"
	"strings"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/scholar"
	"github.com/matsen/dblp2wd/internal/table"
)

// Coauthors lists the person's coauthors. Rows are ranked by completeness so
// the best-documented record of a coauthor comes first; duplicates are kept.
func (s *Service) Coauthors(ctx context.Context, subject string) ([]scholar.Coauthor, error) {
	t, err := s.execute(ctx, dblp.CoauthorsQuery, subject)
	if err != nil {
		return nil, err
	}
	t = t.RankByCompleteness("dblp_id")

	t.StripPrefix("scholar", ScholarPrefix)
	t.StripPrefix("orcid", ORCIDPrefix)
	t.StripPrefix("dblp_id", DBLPPersonPrefix)
	t.StripPrefix("acm", ACMPrefix)
	t.StripPrefix("github", GitHubPrefix)
	t.StripPrefix("twitter", TwitterPrefix)
	t.StripPrefix("orkg", ORKGPrefix)

	rows := make([]scholar.Coauthor, t.Len())
	for i := range t.Rows {
		name := t.Get(i, "name").Or("")
		wikidata := t.Get(i, "wikidata")
		rows[i] = scholar.Coauthor{
			Name:         name,
			EntityToLink: entityToLink(wikidata, name),
			Wikidata:     wikidata,
			DBLPID:       t.Get(i, "dblp_id").Or(""),
			ORCID:        t.Get(i, "orcid"),
			ORKG:         t.Get(i, "orkg"),
			Scholar:      t.Get(i, "scholar"),
			ACM:          t.Get(i, "acm"),
			GitHub:       t.Get(i, "github"),
			Twitter:      t.Get(i, "twitter"),
		}
	}

	s.logger.Info("derived coauthors", "subject", subject, "rows", len(rows))
	return rows, nil
}

// entityToLink prefers the Wikidata QID and falls back to the literal name.
func entityToLink(wikidata table.Value, name string) string {
	if wikidata.Valid {
		return strings.TrimPrefix(wikidata.String, WikidataEntityPrefix)
	}
	return name
}
