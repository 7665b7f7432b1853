package search

import (
	"context"
	"strings"
	"sync"

	"namecheck/ports"
)

// MockSearcher is a scripted searcher for tests. Results are keyed by a
// substring of the query; the first key that matches wins.
type MockSearcher struct {
	mu      sync.Mutex
	Results map[string][]ports.SearchResult
	Err     error
	NoKey   bool // simulate an unconfigured search API
	queries []string
}

func (m *MockSearcher) Configured() bool { return !m.NoKey }

func (m *MockSearcher) Search(ctx context.Context, query string, limit int) ([]ports.SearchResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for key, results := range m.Results {
		if strings.Contains(query, key) {
			if limit > 0 && len(results) > limit {
				return results[:limit], nil
			}
			return results, nil
		}
	}
	return nil, nil
}

// Queries returns the queries issued so far.
func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}
