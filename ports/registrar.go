package ports

import "context"

// DomainAvailability is the registrar's authoritative view of one domain.
type DomainAvailability struct {
	Free  bool
	Price float64 // yearly registration price; 0 when the registrar withheld it
}

// Registrar is the authoritative domain-availability capability. Registrar
// answers always override DNS-derived ones: DNS only approximates
// registration state through record presence, which is unreliable for
// parked-but-registered domains.
type Registrar interface {
	// CheckDomain reports availability for a fully qualified domain
	// (e.g. "acme.com"). Fails fast when credentials are missing or the
	// provider's rate limit has been reached.
	CheckDomain(ctx context.Context, domain string) (DomainAvailability, error)

	// Configured reports whether credentials are present. An unconfigured
	// registrar degrades the domain channel to its DNS fallback.
	Configured() bool
}
