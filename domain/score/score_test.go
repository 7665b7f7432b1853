package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"namecheck/domain/verdict"
)

func domainVerdict(tld string, state verdict.State) verdict.AvailabilityVerdict {
	return verdict.New(verdict.ChannelDomain, "name."+tld, state, verdict.ConfidenceHigh, "test")
}

func socialVerdict(platform string, state verdict.State) verdict.AvailabilityVerdict {
	return verdict.New(verdict.ChannelSocial, platform, state, verdict.ConfidenceHigh, "test")
}

func TestComputeAllClear(t *testing.T) {
	result := verdict.NameCheckResult{
		Name: "zzqxw",
		DomainVerdicts: map[string]verdict.AvailabilityVerdict{
			"com": domainVerdict("com", verdict.Available()),
			"io":  domainVerdict("io", verdict.Available()),
			"co":  domainVerdict("co", verdict.Available()),
			"net": domainVerdict("net", verdict.Available()),
		},
		SocialVerdicts: map[string]verdict.AvailabilityVerdict{
			"github": socialVerdict("github", verdict.Available()),
			"x":      socialVerdict("x", verdict.Available()),
		},
		TrademarkStatus: verdict.TrademarkNone,
		SEOSignals: []verdict.SEOSignal{
			{Title: "no results", Placeholder: true},
			{Title: "no results", Placeholder: true},
			{Title: "no results", Placeholder: true},
		},
	}

	s := Compute(result, -1, nil)

	// .com 50 + three other TLDs at 12.5 = 87.5 availability.
	assert.InDelta(t, 87.5, s.Subscores[DimAvailability], 0.001)
	assert.InDelta(t, 100, s.Subscores[DimSocial], 0.001)
	assert.InDelta(t, 100, s.Subscores[DimSEO], 0.001)
	assert.InDelta(t, 100, s.Subscores[DimTrademark], 0.001)
	assert.InDelta(t, NeutralFit, s.Subscores[DimFit], 0.001)
	assert.Equal(t, 93, s.Total)
	assert.Contains(t, s.Explanation, "excellent")
}

func TestComputeHeavilyContested(t *testing.T) {
	result := verdict.NameCheckResult{
		Name: "google",
		DomainVerdicts: map[string]verdict.AvailabilityVerdict{
			"com": domainVerdict("com", verdict.Taken(true)),
		},
		SocialVerdicts: map[string]verdict.AvailabilityVerdict{
			"github": socialVerdict("github", verdict.Taken(true)),
			"x":      socialVerdict("x", verdict.Taken(true)),
		},
		TrademarkStatus: verdict.TrademarkLive,
		SEOSignals: []verdict.SEOSignal{
			{Title: "a", RootDomain: "google.com", AuthorityTier: verdict.AuthorityHigh},
			{Title: "b", RootDomain: "wikipedia.org", AuthorityTier: verdict.AuthorityHigh},
			{Title: "c", RootDomain: "forbes.com", AuthorityTier: verdict.AuthorityHigh},
		},
	}

	s := Compute(result, -1, nil)

	assert.Zero(t, s.Subscores[DimAvailability])
	assert.Zero(t, s.Subscores[DimSocial])
	assert.InDelta(t, 10, s.Subscores[DimSEO], 0.001)
	assert.Zero(t, s.Subscores[DimTrademark])
	// (10*25 + 50*5) / 100 = 5
	assert.Equal(t, 5, s.Total)
	assert.Contains(t, s.Explanation, "limited")
}

func TestComputePremiumAndDeadTrademark(t *testing.T) {
	result := verdict.NameCheckResult{
		DomainVerdicts: map[string]verdict.AvailabilityVerdict{
			"com": domainVerdict("com", verdict.Premium(500)),
			"io":  domainVerdict("io", verdict.Premium(300)),
		},
		TrademarkStatus: verdict.TrademarkDead,
	}

	s := Compute(result, -1, nil)

	assert.InDelta(t, 25, s.Subscores[DimAvailability], 0.001)
	assert.InDelta(t, 70, s.Subscores[DimTrademark], 0.001)
	// No platforms checked means a neutral social subscore.
	assert.InDelta(t, NeutralFit, s.Subscores[DimSocial], 0.001)
}

func TestComputeUsesSuppliedFitScore(t *testing.T) {
	result := verdict.NameCheckResult{TrademarkStatus: verdict.TrademarkNone}

	withFit := Compute(result, 90, nil)
	assert.InDelta(t, 90, withFit.Subscores[DimFit], 0.001)

	clamped := Compute(result, 250, nil)
	assert.InDelta(t, 100, clamped.Subscores[DimFit], 0.001)
}

func TestComputeCustomWeights(t *testing.T) {
	result := verdict.NameCheckResult{
		DomainVerdicts: map[string]verdict.AvailabilityVerdict{
			"com": domainVerdict("com", verdict.Available()),
		},
		TrademarkStatus: verdict.TrademarkNone,
	}

	// All weight on availability: total equals the availability subscore.
	only := Weights{DimAvailability: 100}
	s := Compute(result, -1, only)
	assert.Equal(t, 50, s.Total)
}

func TestDefaultWeightsSumTo100(t *testing.T) {
	var sum float64
	for _, w := range DefaultWeights() {
		sum += w
	}
	assert.InDelta(t, 100, sum, 0.001)
}

func TestExplanationBands(t *testing.T) {
	assert.Contains(t, explain(80), "excellent")
	assert.Contains(t, explain(79.4), "good")
	assert.Contains(t, explain(60), "good")
	assert.Contains(t, explain(40), "mixed")
	assert.Contains(t, explain(39), "limited")
}
