// Package pipeline derives the coauthor, proceedings, article, and
// article-author tables for a dblp person. Every operation is a single
// request/response round trip followed by in-memory reshaping; nothing is
// cached or retained between calls.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/table"
)

// Prefixes stripped from result columns to leave bare identifiers.
const (
	DBLPPersonPrefix     = "https://dblp.org/pid/"
	DBLPRecordPrefix     = "https://dblp.org/rec/"
	DOIPrefix            = "https://doi.org/"
	ORCIDPrefix          = "https://orcid.org/"
	ScholarPrefix        = "https://scholar.google.com/citations?user="
	ACMPrefix            = "https://dl.acm.org/profile/"
	GitHubPrefix         = "https://github.com/"
	TwitterPrefix        = "https://twitter.com/"
	ORKGPrefix           = "https://orkg.org/resource/"
	WikidataEntityPrefix = "http://www.wikidata.org/entity/"
)

// Querier is the remote side of the pipeline. *dblp.Client implements it.
type Querier interface {
	Select(ctx context.Context, query string) (*dblp.Results, error)
	SearchAuthors(ctx context.Context, name string, limit int) ([]dblp.AuthorHit, error)
}

// Service runs pipeline operations against a Querier.
type Service struct {
	q      Querier
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a Service.
func New(q Querier, opts ...Option) *Service {
	s := &Service{q: q, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// execute binds subject into q, runs it, and normalizes the result set.
func (s *Service) execute(ctx context.Context, q dblp.Query, subject string) (*table.Table, error) {
	s.logger.Debug("running query", "query", q.Name, "subject", subject)
	res, err := s.q.Select(ctx, q.Bind(subject))
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", q.Name, err)
	}
	t := dblp.Normalize(res, q.Vars)
	s.logger.Debug("query finished", "query", q.Name, "rows", t.Len())
	return t, nil
}
