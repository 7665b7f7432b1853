package probe

import (
	"context"
	"sync"

	"namecheck/ports"
)

// FixtureProber replays scripted results keyed by target. It backs test and
// demo configurations only; resolution logic treats it like any other
// prober. Targets without a scripted result come back as unknown.
type FixtureProber struct {
	mu      sync.Mutex
	results map[string]ports.ProbeResult
	errs    map[string]error
	calls   []string
}

// NewFixtureProber creates an empty fixture prober.
func NewFixtureProber() *FixtureProber {
	return &FixtureProber{
		results: make(map[string]ports.ProbeResult),
		errs:    make(map[string]error),
	}
}

// Script registers the result to replay for a target.
func (p *FixtureProber) Script(target string, result ports.ProbeResult) *FixtureProber {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[target] = result
	return p
}

// ScriptError registers an error to replay for a target.
func (p *FixtureProber) ScriptError(target string, err error) *FixtureProber {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[target] = err
	return p
}

// Probe replays the scripted outcome for target.
func (p *FixtureProber) Probe(ctx context.Context, target string) (ports.ProbeResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, target)
	if err, ok := p.errs[target]; ok {
		return unknownResult("fixture: scripted error"), err
	}
	if res, ok := p.results[target]; ok {
		return res, nil
	}
	return unknownResult("fixture: no script for target"), nil
}

// Calls returns the targets probed so far, in order.
func (p *FixtureProber) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}
