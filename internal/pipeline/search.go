package pipeline

import (
	"context"
	"fmt"

	"github.com/matsen/dblp2wd/internal/scholar"
)

// SearchCandidates looks up dblp persons by name. No hits is an empty slice.
func (s *Service) SearchCandidates(ctx context.Context, name string, limit int) ([]scholar.Candidate, error) {
	hits, err := s.q.SearchAuthors(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", name, err)
	}

	candidates := make([]scholar.Candidate, 0, len(hits))
	for _, h := range hits {
		candidates = append(candidates, scholar.Candidate{Name: h.Name, URL: h.URL})
	}
	s.logger.Info("candidate search", "name", name, "candidates", len(candidates))
	return candidates, nil
}
