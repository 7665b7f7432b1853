// Package score turns a NameCheckResult into a single ranked BrandFitScore.
// Scoring is a deterministic pure function of its inputs.
package score

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"namecheck/domain/verdict"
)

// Dimension names the five fixed subscore dimensions.
type Dimension string

const (
	DimAvailability Dimension = "availability"
	DimSocial       Dimension = "social"
	DimSEO          Dimension = "seo"
	DimTrademark    Dimension = "trademark"
	DimFit          Dimension = "fit"
)

// dimensions is the fixed evaluation order for the weighted composite.
var dimensions = []Dimension{DimAvailability, DimSocial, DimSEO, DimTrademark, DimFit}

// Weights maps each dimension to its percentage weight. Weights are assumed
// to sum to 100 but this is not enforced; the composite uses them literally.
type Weights map[Dimension]float64

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		DimAvailability: 40,
		DimSocial:       15,
		DimSEO:          25,
		DimTrademark:    15,
		DimFit:          5,
	}
}

// BrandFitScore is the weighted composite for one candidate.
type BrandFitScore struct {
	Total       int                   `json:"total"`
	Subscores   map[Dimension]float64 `json:"subscores"`
	Explanation string                `json:"explanation"`
}

// NeutralFit is the fit subscore used when no LLM judgment is available.
const NeutralFit = 50

// Domain point contributions.
const (
	comAvailablePoints   = 50
	comPremiumPoints     = 20
	otherAvailablePoints = 12.5
	otherPremiumPoints   = 5
)

// SEO penalties per collision authority tier.
const (
	seoHighPenalty = 30
	seoMedPenalty  = 15
	seoLowPenalty  = 5
)

// Compute scores a check result. fitScore is the externally supplied LLM fit
// judgment in [0,100]; pass a negative value when unavailable and the neutral
// default applies.
func Compute(result verdict.NameCheckResult, fitScore float64, weights Weights) BrandFitScore {
	if weights == nil {
		weights = DefaultWeights()
	}

	subs := map[Dimension]float64{
		DimAvailability: domainSubscore(result.DomainVerdicts),
		DimSocial:       socialSubscore(result.SocialVerdicts),
		DimSEO:          seoSubscore(result.SEOSignals),
		DimTrademark:    trademarkSubscore(result.TrademarkStatus),
		DimFit:          fitSubscore(fitScore),
	}

	values := make([]float64, len(dimensions))
	w := make([]float64, len(dimensions))
	for i, dim := range dimensions {
		values[i] = subs[dim]
		w[i] = weights[dim]
	}
	total := clamp(floats.Dot(values, w) / 100)

	return BrandFitScore{
		Total:       int(math.Round(total)),
		Subscores:   subs,
		Explanation: explain(total),
	}
}

// domainSubscore: .com is worth up to 50 points, every other TLD up to 12.5.
func domainSubscore(verdicts map[string]verdict.AvailabilityVerdict) float64 {
	var points float64
	for tld, v := range verdicts {
		com := tld == "com"
		switch v.State.Kind {
		case verdict.StateAvailable:
			if com {
				points += comAvailablePoints
			} else {
				points += otherAvailablePoints
			}
		case verdict.StatePremium:
			if com {
				points += comPremiumPoints
			} else {
				points += otherPremiumPoints
			}
		}
		// Taken, Restricted and Unknown contribute nothing.
	}
	return clamp(points)
}

// socialSubscore spreads 100 points equally across all checked platforms.
func socialSubscore(verdicts map[string]verdict.AvailabilityVerdict) float64 {
	if len(verdicts) == 0 {
		return NeutralFit
	}
	per := 100.0 / float64(len(verdicts))
	var points float64
	for _, v := range verdicts {
		if v.State.Kind == verdict.StateAvailable {
			points += per
		}
	}
	return clamp(points)
}

// seoSubscore starts at 100 and subtracts per collision by authority tier.
func seoSubscore(signals []verdict.SEOSignal) float64 {
	points := 100.0
	for _, s := range signals {
		if s.Placeholder {
			continue
		}
		switch s.AuthorityTier {
		case verdict.AuthorityHigh:
			points -= seoHighPenalty
		case verdict.AuthorityMed:
			points -= seoMedPenalty
		default:
			points -= seoLowPenalty
		}
	}
	return clamp(points)
}

func trademarkSubscore(status verdict.TrademarkStatus) float64 {
	switch status {
	case verdict.TrademarkLive:
		return 0
	case verdict.TrademarkDead:
		return 70
	default:
		return 100
	}
}

func fitSubscore(fitScore float64) float64 {
	if fitScore < 0 {
		return NeutralFit
	}
	return clamp(fitScore)
}

// explain maps a total to its fixed human-readable tier.
func explain(total float64) string {
	switch {
	case total >= 80:
		return "excellent — strong availability across channels"
	case total >= 60:
		return "good — available on most channels with minor conflicts"
	case total >= 40:
		return "mixed — notable conflicts, review before committing"
	default:
		return "limited — heavily contested name"
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// String renders the score as a one-line summary.
func (s BrandFitScore) String() string {
	return fmt.Sprintf("%d/100 (%s)", s.Total, s.Explanation)
}
