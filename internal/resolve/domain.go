// Package resolve contains the per-channel resolution logic: the tiered
// fallback strategies that turn raw provider signals into availability
// verdicts. Resolvers never propagate provider errors; every failure path
// lands on an Unknown, low-confidence verdict.
package resolve

import (
	"context"
	"fmt"
	"log"

	"namecheck/domain/verdict"
	"namecheck/ports"
)

// DomainResolver resolves one (name, TLD) pair through the registrar-first,
// DNS-fallback chain.
type DomainResolver struct {
	Registrar        ports.Registrar
	DNS              ports.Prober
	Site             ports.Prober // live-site reachability probe
	PremiumThreshold float64
}

// Resolve determines the availability of name.tld.
//
// Order of trust: the registrar is authoritative for registration state; DNS
// only approximates it via record presence and is consulted only when the
// registrar gave no definitive answer. A definitive registrar answer is never
// overridden by a DNS-derived one.
func (r *DomainResolver) Resolve(ctx context.Context, name, tld string) verdict.AvailabilityVerdict {
	fqdn := name + "." + tld

	regVerdict := r.fromRegistrar(ctx, fqdn, tld)
	if regVerdict.Definitive() {
		return r.withLiveSiteSignal(ctx, fqdn, tld, regVerdict)
	}

	dnsVerdict := r.fromDNS(ctx, fqdn, tld)
	merged := verdict.Merge(regVerdict, dnsVerdict)
	if merged.Definitive() {
		return r.withLiveSiteSignal(ctx, fqdn, tld, merged)
	}

	// Every adapter came back empty-handed.
	return verdict.New(verdict.ChannelDomain, tld, verdict.Unknown(), verdict.ConfidenceLow,
		fmt.Sprintf("no definitive signal (%s; %s)", regVerdict.SourceMethod, dnsVerdict.SourceMethod))
}

// fromRegistrar asks the authoritative adapter. Missing credentials, rate
// limits and provider failures all degrade to Unknown.
func (r *DomainResolver) fromRegistrar(ctx context.Context, fqdn, tld string) verdict.AvailabilityVerdict {
	if r.Registrar == nil || !r.Registrar.Configured() {
		return verdict.New(verdict.ChannelDomain, tld, verdict.Unknown(), verdict.ConfidenceLow, "registrar: not configured")
	}

	avail, err := r.Registrar.CheckDomain(ctx, fqdn)
	if err != nil {
		log.Printf("[DomainResolver] Registrar check failed for %s: %v", fqdn, err)
		return verdict.New(verdict.ChannelDomain, tld, verdict.Unknown(), verdict.ConfidenceLow, "registrar: error")
	}

	// Premium detection outranks the plain availability flag: a price above
	// the threshold marks the domain Premium even though it is registrable.
	if avail.Free && r.PremiumThreshold > 0 && avail.Price >= r.PremiumThreshold {
		return verdict.New(verdict.ChannelDomain, tld, verdict.Premium(avail.Price), verdict.ConfidenceHigh, "registrar")
	}
	if avail.Free {
		return verdict.New(verdict.ChannelDomain, tld, verdict.Available(), verdict.ConfidenceHigh, "registrar")
	}
	return verdict.New(verdict.ChannelDomain, tld, verdict.Taken(false), verdict.ConfidenceHigh, "registrar")
}

// fromDNS approximates availability by record presence: NXDOMAIN means
// registrable, records mean registered.
func (r *DomainResolver) fromDNS(ctx context.Context, fqdn, tld string) verdict.AvailabilityVerdict {
	if r.DNS == nil {
		return verdict.New(verdict.ChannelDomain, tld, verdict.Unknown(), verdict.ConfidenceLow, "dns: not wired")
	}

	res, err := r.DNS.Probe(ctx, fqdn)
	if err != nil || res.Exists == nil {
		return verdict.New(verdict.ChannelDomain, tld, verdict.Unknown(), verdict.ConfidenceLow, "dns: "+res.Detail)
	}
	if *res.Exists {
		return verdict.New(verdict.ChannelDomain, tld, verdict.Taken(false), res.Confidence, "dns: "+res.Detail)
	}
	return verdict.New(verdict.ChannelDomain, tld, verdict.Available(), res.Confidence, "dns: "+res.Detail)
}

// withLiveSiteSignal upgrades a Taken verdict with the parked-vs-live
// distinction via a short HTTP reachability probe. Other states pass through.
func (r *DomainResolver) withLiveSiteSignal(ctx context.Context, fqdn, tld string, v verdict.AvailabilityVerdict) verdict.AvailabilityVerdict {
	if v.State.Kind != verdict.StateTaken || r.Site == nil {
		return v
	}

	res, err := r.Site.Probe(ctx, "https://"+fqdn)
	live := err == nil && res.StatusCode >= 200 && res.StatusCode < 400
	return verdict.New(v.Channel, v.Identifier, verdict.Taken(live), v.Confidence,
		v.SourceMethod+"+site-probe")
}
