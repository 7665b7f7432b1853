// Package probe implements the leaf signal providers: DNS-over-HTTPS
// existence checks and raw HTTP reachability probes. Each prober enforces
// its own bounded timeout and normalizes every failure into a nil-existence,
// low-confidence result for the resolvers to degrade from.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"namecheck/domain/verdict"
	"namecheck/ports"
)

const defaultDoHEndpoint = "https://dns.google/resolve"

// DNS status codes per RFC 1035.
const (
	dnsStatusNoError  = 0
	dnsStatusNXDomain = 3
)

// DNSProber resolves existence through a DNS-over-HTTPS JSON endpoint.
// NXDOMAIN approximates "available"; NOERROR with records approximates
// "taken". The approximation is medium confidence at best: parked-but-
// registered domains often have no records, so a registrar answer always
// outranks this one.
type DNSProber struct {
	endpoint string
	client   *http.Client
}

// NewDNSProber creates a DoH prober with the given per-call timeout.
func NewDNSProber(endpoint string, timeout time.Duration) *DNSProber {
	if endpoint == "" {
		endpoint = defaultDoHEndpoint
	}
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &DNSProber{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// dohResponse is the subset of the DoH JSON answer we interpret.
type dohResponse struct {
	Status int `json:"Status"`
	Answer []struct {
		Name string `json:"name"`
		Type int    `json:"type"`
		Data string `json:"data"`
	} `json:"Answer"`
}

// Probe queries A records for the target FQDN.
func (p *DNSProber) Probe(ctx context.Context, target string) (ports.ProbeResult, error) {
	query := fmt.Sprintf("%s?name=%s&type=A", p.endpoint, url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return unknownResult("doh: build request"), err
	}
	req.Header.Set("Accept", "application/dns-json")

	resp, err := p.client.Do(req)
	if err != nil {
		return unknownResult("doh: request failed"), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unknownResult(fmt.Sprintf("doh: status %d", resp.StatusCode)),
			fmt.Errorf("doh endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return unknownResult("doh: read body"), err
	}

	var parsed dohResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return unknownResult("doh: parse body"), err
	}

	switch {
	case parsed.Status == dnsStatusNXDomain:
		return ports.ProbeResult{
			Exists:     ports.Bool(false),
			Confidence: verdict.ConfidenceMedium,
			Detail:     "doh: NXDOMAIN",
		}, nil
	case parsed.Status == dnsStatusNoError && len(parsed.Answer) > 0:
		return ports.ProbeResult{
			Exists:     ports.Bool(true),
			Confidence: verdict.ConfidenceHigh,
			Detail:     fmt.Sprintf("doh: NOERROR with %d records", len(parsed.Answer)),
		}, nil
	case parsed.Status == dnsStatusNoError:
		// Name exists in the zone but serves no A records. Could be parked,
		// could be registered-and-idle: not our call to make.
		return unknownResult("doh: NOERROR without records"), nil
	default:
		return unknownResult(fmt.Sprintf("doh: status code %d", parsed.Status)), nil
	}
}

func unknownResult(detail string) ports.ProbeResult {
	return ports.ProbeResult{
		Exists:     nil,
		Confidence: verdict.ConfidenceLow,
		Detail:     detail,
	}
}
