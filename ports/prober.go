package ports

import (
	"context"

	"namecheck/domain/verdict"
)

// ProbeResult is the normalized output of one signal-provider probe.
// Exists is nil when the provider could not determine existence at all; in
// that case Confidence must be low.
type ProbeResult struct {
	Exists     *bool
	Confidence verdict.Confidence
	Detail     string

	// HTTP-specific signals, populated by HTTP probers only.
	StatusCode int
	RedirectTo string
}

// Prober wraps one external capability (DNS lookup, HTTP probe, ...) behind a
// single contract. Implementations enforce their own bounded timeout, never
// retry, and never panic past their boundary: any network/timeout/parse
// failure comes back as an error, which resolvers degrade to Unknown.
type Prober interface {
	// Probe checks one target (a FQDN for DNS probes, a URL for HTTP probes).
	Probe(ctx context.Context, target string) (ProbeResult, error)
}

// Bool is a convenience for building *bool probe results.
func Bool(v bool) *bool { return &v }
