package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namecheck/adapters/probe"
	"namecheck/adapters/search"
	"namecheck/domain/verdict"
	"namecheck/ports"
)

func TestSocialResolve404MeansAvailable(t *testing.T) {
	p := probe.NewFixtureProber().Script("https://github.com/acme", ports.ProbeResult{StatusCode: 404})
	r := &SocialResolver{Prober: p}

	v := r.Resolve(context.Background(), "acme", "github")

	assert.Equal(t, verdict.StateAvailable, v.State.Kind)
	// GitHub 404 semantics are clean, so the platform tier is high.
	assert.Equal(t, verdict.ConfidenceHigh, v.Confidence)
}

func TestSocialResolve200MeansTaken(t *testing.T) {
	p := probe.NewFixtureProber().Script("https://x.com/acme", ports.ProbeResult{StatusCode: 200})
	r := &SocialResolver{Prober: p}

	v := r.Resolve(context.Background(), "acme", "x")

	require.Equal(t, verdict.StateTaken, v.State.Kind)
	assert.True(t, v.State.LiveSite)
	// X answers 200 unreliably; confidence is capped at the platform tier.
	assert.Equal(t, verdict.ConfidenceMedium, v.Confidence)
}

func TestSocialResolveBotBlockedChallengeIsUnknown(t *testing.T) {
	p := probe.NewFixtureProber().Script("https://www.instagram.com/acme/", ports.ProbeResult{StatusCode: 429})
	r := &SocialResolver{Prober: p}

	v := r.Resolve(context.Background(), "acme", "instagram")

	assert.Equal(t, verdict.StateUnknown, v.State.Kind)
	assert.Equal(t, verdict.ConfidenceLow, v.Confidence)
}

func TestSocialResolveRedirectToAuthMeansAvailable(t *testing.T) {
	p := probe.NewFixtureProber().Script("https://www.reddit.com/user/acme", ports.ProbeResult{
		StatusCode: 302,
		RedirectTo: "https://www.reddit.com/login?dest=...",
	})
	r := &SocialResolver{Prober: p}

	v := r.Resolve(context.Background(), "acme", "reddit")

	assert.Equal(t, verdict.StateAvailable, v.State.Kind)
	assert.Equal(t, verdict.ConfidenceMedium, v.Confidence)
}

func TestSocialResolveMultiFormPlatformNeedsAllFormsFree(t *testing.T) {
	p := probe.NewFixtureProber().
		Script("https://medium.com/@acme", ports.ProbeResult{StatusCode: 404}).
		Script("https://acme.medium.com", ports.ProbeResult{StatusCode: 200})
	r := &SocialResolver{Prober: p}

	v := r.Resolve(context.Background(), "acme", "medium")

	// The publication subdomain is claimed, so the handle is taken even
	// though the profile path 404s.
	assert.Equal(t, verdict.StateTaken, v.State.Kind)
}

func TestSocialResolveUsernameRuleViolation(t *testing.T) {
	r := &SocialResolver{Prober: probe.NewFixtureProber()}

	v := r.Resolve(context.Background(), "has.dots", "github")

	assert.Equal(t, verdict.StateRestricted, v.State.Kind)
	assert.Equal(t, verdict.ConfidenceHigh, v.Confidence)
	assert.Equal(t, "username rule", v.SourceMethod)
}

func TestSocialResolveUnknownPlatform(t *testing.T) {
	r := &SocialResolver{Prober: probe.NewFixtureProber()}

	v := r.Resolve(context.Background(), "acme", "myspace")

	assert.Equal(t, verdict.StateUnknown, v.State.Kind)
}

func TestSocialResolveSearchCrossCheckConfirmsTaken(t *testing.T) {
	// Instagram blocks the probe entirely; the search cross-check finds the
	// exact profile URL and upgrades the answer to a confident Taken.
	p := probe.NewFixtureProber().Script("https://www.instagram.com/acme/", ports.ProbeResult{StatusCode: 403})
	s := &search.MockSearcher{Results: map[string][]ports.SearchResult{
		"instagram.com": {
			{Title: "Acme (@acme)", URL: "https://www.instagram.com/acme/"},
		},
	}}
	r := &SocialResolver{Prober: p, Searcher: s}

	v := r.Resolve(context.Background(), "acme", "instagram")

	require.Equal(t, verdict.StateTaken, v.State.Kind)
	assert.Equal(t, verdict.ConfidenceHigh, v.Confidence)
	assert.Equal(t, "search-crosscheck", v.SourceMethod)
}

func TestSocialResolveSearchMissKeepsUnknown(t *testing.T) {
	p := probe.NewFixtureProber().Script("https://www.instagram.com/acme/", ports.ProbeResult{StatusCode: 403})
	s := &search.MockSearcher{Results: map[string][]ports.SearchResult{
		"instagram.com": {
			{Title: "Something else", URL: "https://www.instagram.com/other/"},
		},
	}}
	r := &SocialResolver{Prober: p, Searcher: s}

	v := r.Resolve(context.Background(), "acme", "instagram")

	// Absence of a search hit proves nothing; no upgrade happens.
	assert.Equal(t, verdict.StateUnknown, v.State.Kind)
	assert.Equal(t, verdict.ConfidenceLow, v.Confidence)
}

func TestMatchesProfileURL(t *testing.T) {
	assert.True(t, matchesProfileURL("https://www.instagram.com/acme/", "https://instagram.com/acme"))
	assert.True(t, matchesProfileURL("http://github.com/Acme", "https://github.com/acme"))
	assert.False(t, matchesProfileURL("https://instagram.com/acme2", "https://instagram.com/acme"))
}

func TestLooksLikeAuthPage(t *testing.T) {
	assert.True(t, looksLikeAuthPage("https://x.com/login?next=foo"))
	assert.True(t, looksLikeAuthPage("https://www.instagram.com/accounts/signup/"))
	assert.False(t, looksLikeAuthPage("https://x.com/acme/status/1"))
}
