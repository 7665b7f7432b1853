package resolve

import (
	"context"
	"fmt"
	"log"
	"strings"

	"namecheck/domain/verdict"
	"namecheck/ports"
)

// SocialResolver resolves handle availability for one platform through a
// profile-URL probe, with an optional search-engine cross-check when the
// probe is inconclusive.
type SocialResolver struct {
	Prober    ports.Prober
	Searcher  ports.Searcher // optional
	Platforms map[string]Platform
}

// Resolve determines handle availability for name on the given platform.
func (r *SocialResolver) Resolve(ctx context.Context, name, platformName string) verdict.AvailabilityVerdict {
	platform, ok := r.platforms()[platformName]
	if !ok {
		return verdict.New(verdict.ChannelSocial, platformName, verdict.Unknown(), verdict.ConfidenceLow, "unknown platform")
	}

	// A handle the platform would reject is not available to register there,
	// independent of any probe.
	if platform.UsernameRule != nil && !platform.UsernameRule.MatchString(name) {
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Restricted(), verdict.ConfidenceHigh, "username rule")
	}

	// Probe every URL form. Taken on any claimed form, Available only when
	// all forms are unclaimed.
	anyTaken := false
	allAvailable := true
	lowest := verdict.ConfidenceHigh
	var takenVerdict verdict.AvailabilityVerdict
	for _, tmpl := range platform.ProfileURLs {
		v := r.probeForm(ctx, platform, fmt.Sprintf(tmpl, name))
		switch v.State.Kind {
		case verdict.StateTaken:
			anyTaken = true
			takenVerdict = v
		case verdict.StateAvailable:
			if rank(v.Confidence) < rank(lowest) {
				lowest = v.Confidence
			}
		default:
			allAvailable = false
		}
	}

	switch {
	case anyTaken:
		return takenVerdict
	case allAvailable:
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Available(), lowest, "profile-probe")
	}

	// Inconclusive probe: try the search cross-check before settling for
	// Unknown. An exact profile-URL hit is strong evidence the handle is
	// claimed; anything weaker stays Unknown, it is never upgraded.
	if v, ok := r.searchCrossCheck(ctx, platform, name); ok {
		return v
	}
	return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Unknown(), verdict.ConfidenceLow, "profile-probe inconclusive")
}

// probeForm probes one profile URL and maps the status code to a state under
// the platform's reliability tier.
func (r *SocialResolver) probeForm(ctx context.Context, platform Platform, url string) verdict.AvailabilityVerdict {
	res, err := r.Prober.Probe(ctx, url)
	if err != nil {
		log.Printf("[SocialResolver] Probe failed for %s: %v", url, err)
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Unknown(), verdict.ConfidenceLow, "probe error")
	}

	tier := platform.ReliabilityTier
	switch {
	case res.StatusCode == 404:
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Available(), tier, "profile-probe: 404")
	case res.StatusCode >= 200 && res.StatusCode < 300:
		// The tier caps confidence here too: some platforms answer 200 for
		// every path, claimed or not.
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Taken(true), tier, "profile-probe: 200")
	case platform.BotBlocked:
		// Bot-blocked platforms serve challenges and decoy redirects; any
		// non-404/200 answer from them means nothing.
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Unknown(), verdict.ConfidenceLow,
			fmt.Sprintf("profile-probe: status %d (bot-blocked)", res.StatusCode))
	case res.StatusCode == 301 || res.StatusCode == 302:
		if looksLikeAuthPage(res.RedirectTo) {
			return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Available(), verdict.ConfidenceMedium, "profile-probe: redirect to auth")
		}
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Taken(true), verdict.ConfidenceMedium, "profile-probe: redirect")
	default:
		// Challenges, 403s, 429s. Bot-blocked platforms produce these
		// routinely; claiming anything beyond Unknown would be a guess.
		return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Unknown(), verdict.ConfidenceLow,
			fmt.Sprintf("profile-probe: status %d", res.StatusCode))
	}
}

// searchCrossCheck looks for an exact profile-URL match in web search. Only a
// positive hit produces a verdict: absence of search results proves nothing.
func (r *SocialResolver) searchCrossCheck(ctx context.Context, platform Platform, name string) (verdict.AvailabilityVerdict, bool) {
	if r.Searcher == nil || !r.Searcher.Configured() || platform.SearchHost == "" {
		return verdict.AvailabilityVerdict{}, false
	}

	query := fmt.Sprintf("site:%s %q", platform.SearchHost, name)
	results, err := r.Searcher.Search(ctx, query, 5)
	if err != nil {
		log.Printf("[SocialResolver] Cross-check search failed for %s/%s: %v", platform.Name, name, err)
		return verdict.AvailabilityVerdict{}, false
	}

	for _, res := range results {
		for _, tmpl := range platform.ProfileURLs {
			if matchesProfileURL(res.URL, fmt.Sprintf(tmpl, name)) {
				return verdict.New(verdict.ChannelSocial, platform.Name, verdict.Taken(true), verdict.ConfidenceHigh, "search-crosscheck"), true
			}
		}
	}
	return verdict.AvailabilityVerdict{}, false
}

func (r *SocialResolver) platforms() map[string]Platform {
	if r.Platforms != nil {
		return r.Platforms
	}
	return DefaultPlatforms
}

// looksLikeAuthPage reports whether a redirect target is a login/signup wall,
// which platforms serve for nonexistent profiles.
func looksLikeAuthPage(location string) bool {
	location = strings.ToLower(location)
	for _, marker := range []string{"login", "signin", "sign-in", "signup", "sign-up", "accounts/"} {
		if strings.Contains(location, marker) {
			return true
		}
	}
	return false
}

// matchesProfileURL compares URLs ignoring scheme, "www." and trailing slash.
func matchesProfileURL(got, want string) bool {
	norm := func(u string) string {
		u = strings.ToLower(strings.TrimSuffix(u, "/"))
		u = strings.TrimPrefix(u, "https://")
		u = strings.TrimPrefix(u, "http://")
		return strings.TrimPrefix(u, "www.")
	}
	return norm(got) == norm(want)
}

func rank(c verdict.Confidence) int {
	switch c {
	case verdict.ConfidenceHigh:
		return 3
	case verdict.ConfidenceMedium:
		return 2
	default:
		return 1
	}
}
