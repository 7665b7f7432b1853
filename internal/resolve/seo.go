package resolve

import (
	"context"
	"log"
	"net/url"
	"strings"

	"namecheck/domain/verdict"
	"namecheck/ports"
)

// seoResultCount is the fixed length downstream consumers rely on when the
// search comes back empty.
const seoResultCount = 3

// highAuthorityDomains is the fixed allow-list of root domains whose presence
// in the top results marks a serious SEO collision.
var highAuthorityDomains = map[string]bool{
	"wikipedia.org": true,
	"amazon.com":    true,
	"google.com":    true,
	"apple.com":     true,
	"microsoft.com": true,
	"facebook.com":  true,
	"instagram.com": true,
	"youtube.com":   true,
	"x.com":         true,
	"twitter.com":   true,
	"linkedin.com":  true,
	"reddit.com":    true,
	"github.com":    true,
	"netflix.com":   true,
	"nytimes.com":   true,
	"bbc.com":       true,
	"cnn.com":       true,
	"forbes.com":    true,
}

// mediumAuthorityHosts are well-known publishing platforms: a collision
// there is a real page, but not an entrenched brand.
var mediumAuthorityHosts = map[string]bool{
	"medium.com":    true,
	"substack.com":  true,
	"wordpress.com": true,
	"blogspot.com":  true,
	"quora.com":     true,
	"wikihow.com":   true,
	"fandom.com":    true,
}

// SEOResolver classifies the competitive strength of the top organic results
// for a candidate name.
type SEOResolver struct {
	Searcher ports.Searcher
}

// Resolve returns up to three classified signals. An empty search yields
// three "no results" placeholders so consumers always see a fixed-length
// sequence for the no-collision case.
func (r *SEOResolver) Resolve(ctx context.Context, name string) []verdict.SEOSignal {
	if r.Searcher == nil || !r.Searcher.Configured() {
		return placeholders("search not configured")
	}

	results, err := r.Searcher.Search(ctx, name, seoResultCount)
	if err != nil {
		log.Printf("[SEOResolver] Search failed for %q: %v", name, err)
		return placeholders("search failed")
	}
	if len(results) == 0 {
		return placeholders("no results")
	}

	signals := make([]verdict.SEOSignal, 0, seoResultCount)
	for _, res := range results {
		root := rootDomain(res.URL)
		signals = append(signals, verdict.SEOSignal{
			Title:         res.Title,
			RootDomain:    root,
			AuthorityTier: classifyAuthority(root),
		})
		if len(signals) == seoResultCount {
			break
		}
	}
	return signals
}

func placeholders(title string) []verdict.SEOSignal {
	out := make([]verdict.SEOSignal, seoResultCount)
	for i := range out {
		out[i] = verdict.SEOSignal{
			Title:         title,
			AuthorityTier: verdict.AuthorityLow,
			Placeholder:   true,
		}
	}
	return out
}

// classifyAuthority buckets a root domain into an authority tier: a fixed
// allow-list for high, pattern rules (gov/edu TLDs, publishing platforms)
// for medium, everything else low.
func classifyAuthority(root string) verdict.AuthorityTier {
	if highAuthorityDomains[root] {
		return verdict.AuthorityHigh
	}
	if mediumAuthorityHosts[root] {
		return verdict.AuthorityMed
	}
	if strings.HasSuffix(root, ".gov") || strings.HasSuffix(root, ".edu") ||
		strings.HasSuffix(root, ".gov.uk") || strings.HasSuffix(root, ".ac.uk") {
		return verdict.AuthorityMed
	}
	return verdict.AuthorityLow
}

// rootDomain extracts the registrable domain, naively: host minus "www.",
// trimmed to its last two labels. Good enough for tier classification.
func rootDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	// Keep three labels for two-part public suffixes like gov.uk.
	last := labels[len(labels)-2] + "." + labels[len(labels)-1]
	if last == "gov.uk" || last == "ac.uk" || last == "co.uk" {
		return strings.Join(labels[len(labels)-3:], ".")
	}
	return last
}
