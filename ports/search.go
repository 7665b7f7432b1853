package ports

import "context"

// SearchResult is one organic web-search hit.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher is the web-search capability used by the SEO resolver, the
// trademark resolver (registry-scoped queries) and the optional social
// cross-check.
type Searcher interface {
	// Search returns up to limit organic results for the query.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Configured reports whether a search API key is present.
	Configured() bool
}
