package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"namecheck/domain/verdict"
	"namecheck/ports"
)

const probeUserAgent = "Mozilla/5.0 (compatible; namecheck/1.0)"

// HTTPProber issues a single GET against a URL without following redirects.
// It reports the raw status code and redirect target so resolvers can apply
// their own per-platform semantics; the normalized Exists flag only covers
// the unambiguous cases (2xx present, 404 absent).
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates an HTTP prober with the given per-call timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPProber{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Probe fetches the target URL once.
func (p *HTTPProber) Probe(ctx context.Context, target string) (ports.ProbeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return unknownResult("http: build request"), err
	}
	req.Header.Set("User-Agent", probeUserAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := p.client.Do(req)
	if err != nil {
		return unknownResult("http: request failed"), err
	}
	defer resp.Body.Close()

	result := ports.ProbeResult{
		StatusCode: resp.StatusCode,
		RedirectTo: resp.Header.Get("Location"),
		Detail:     fmt.Sprintf("http: status %d", resp.StatusCode),
		Confidence: verdict.ConfidenceLow,
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		result.Exists = ports.Bool(false)
		result.Confidence = verdict.ConfidenceMedium
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Exists = ports.Bool(true)
		result.Confidence = verdict.ConfidenceMedium
	}
	return result, nil
}
