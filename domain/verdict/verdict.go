// Package verdict defines the availability model: the resolved state and
// confidence for one (name, channel, identifier) tuple, and the aggregate
// result across channels for one candidate name.
package verdict

import (
	"fmt"
	"strings"
)

// Channel is a category of availability being checked.
type Channel string

const (
	ChannelDomain    Channel = "domain"
	ChannelSocial    Channel = "social"
	ChannelTrademark Channel = "trademark"
	ChannelSEO       Channel = "seo"
)

// Confidence is a provenance-based trust tier, independent of the state.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// StateKind discriminates the availability state variants.
type StateKind string

const (
	StateAvailable  StateKind = "available"
	StateTaken      StateKind = "taken"
	StatePremium    StateKind = "premium"
	StateRestricted StateKind = "restricted"
	StateUnknown    StateKind = "unknown"
)

// State is the tagged availability variant. LiveSite is meaningful only for
// Taken (a registered domain serving a reachable site, as opposed to parked);
// Price only for Premium and may be zero when the registrar withheld it.
type State struct {
	Kind     StateKind
	LiveSite bool
	Price    float64
}

func Available() State          { return State{Kind: StateAvailable} }
func Taken(liveSite bool) State { return State{Kind: StateTaken, LiveSite: liveSite} }
func Premium(price float64) State {
	return State{Kind: StatePremium, Price: price}
}
func Restricted() State { return State{Kind: StateRestricted} }
func Unknown() State    { return State{Kind: StateUnknown} }

func (s State) String() string {
	switch s.Kind {
	case StateTaken:
		if s.LiveSite {
			return "taken (live site)"
		}
		return "taken (parked)"
	case StatePremium:
		if s.Price > 0 {
			return fmt.Sprintf("premium ($%.0f)", s.Price)
		}
		return "premium"
	default:
		return string(s.Kind)
	}
}

// AvailabilityVerdict is the resolved outcome for one channel+identifier.
// It is immutable once produced; resolvers build a new verdict rather than
// mutating one in place.
type AvailabilityVerdict struct {
	Channel      Channel    `json:"channel"`
	Identifier   string     `json:"identifier"`
	State        State      `json:"state"`
	Confidence   Confidence `json:"confidence"`
	SourceMethod string     `json:"source_method"`
}

// New builds a verdict, enforcing the Unknown => low-confidence invariant.
// No code path may claim any confidence above low for a state it could not
// determine.
func New(channel Channel, identifier string, state State, confidence Confidence, sourceMethod string) AvailabilityVerdict {
	if state.Kind == StateUnknown {
		confidence = ConfidenceLow
	}
	return AvailabilityVerdict{
		Channel:      channel,
		Identifier:   identifier,
		State:        state,
		Confidence:   confidence,
		SourceMethod: sourceMethod,
	}
}

// Definitive reports whether the verdict carries a usable state: anything
// other than Unknown with at least medium confidence.
func (v AvailabilityVerdict) Definitive() bool {
	return v.State.Kind != StateUnknown && v.Confidence != ConfidenceLow
}

// confidenceRank orders confidence tiers for merge precedence.
func confidenceRank(c Confidence) int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	default:
		return 1
	}
}

// Merge reconciles two verdicts for the same channel+identifier produced by
// different adapters within one resolution. The authoritative verdict wins
// whenever it is definitive; otherwise the higher-confidence definitive
// verdict wins; two non-definitive verdicts collapse to the authoritative one.
func Merge(authoritative, fallback AvailabilityVerdict) AvailabilityVerdict {
	if authoritative.Definitive() {
		return authoritative
	}
	if fallback.Definitive() {
		return fallback
	}
	if confidenceRank(fallback.Confidence) > confidenceRank(authoritative.Confidence) {
		return fallback
	}
	return authoritative
}

// TrademarkStatus is the three-way trademark classification. Unlike the
// availability channels, absence of matching public records is a definitive
// negative, so there is no Unknown here.
type TrademarkStatus string

const (
	TrademarkNone TrademarkStatus = "none"
	TrademarkDead TrademarkStatus = "dead"
	TrademarkLive TrademarkStatus = "live"
)

// AuthorityTier classifies a search-result domain's competitive strength.
type AuthorityTier string

const (
	AuthorityHigh AuthorityTier = "high"
	AuthorityMed  AuthorityTier = "med"
	AuthorityLow  AuthorityTier = "low"
)

// SEOSignal is one classified organic search result.
type SEOSignal struct {
	Title         string        `json:"title"`
	RootDomain    string        `json:"root_domain"`
	AuthorityTier AuthorityTier `json:"authority_tier"`
	Placeholder   bool          `json:"placeholder,omitempty"`
}

// NameCheckResult aggregates all channel verdicts for one candidate name.
// Created fresh per check request and never mutated after the aggregator
// returns it.
type NameCheckResult struct {
	Name            string                         `json:"name"`
	DomainVerdicts  map[string]AvailabilityVerdict `json:"domain_verdicts"`
	SocialVerdicts  map[string]AvailabilityVerdict `json:"social_verdicts"`
	Trademark       AvailabilityVerdict            `json:"trademark"`
	TrademarkStatus TrademarkStatus                `json:"trademark_status"`
	TrademarkSerial string                         `json:"trademark_serial,omitempty"`
	SEOSignals      []SEOSignal                    `json:"seo_signals"`
}

// NormalizeName lowercases and strips a raw name down to the alnum-dash
// charset used for domain and handle probes.
func NormalizeName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			// dropped, brand handles are written without separators
		}
	}
	return b.String()
}
