package resolve

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"namecheck/domain/verdict"
	"namecheck/ports"
)

// registrySerialPattern matches USPTO-style 8-digit serial numbers.
var registrySerialPattern = regexp.MustCompile(`\b\d{8}\b`)

// TrademarkResolver looks for registered marks through a registry-scoped web
// search. Unlike the availability channels, a successful search with no
// matching records is a definitive negative: the public registry is the
// complete record of what it registers.
type TrademarkResolver struct {
	Searcher     ports.Searcher
	RegistryHost string // defaults to the USPTO search host
}

// TrademarkFinding is the resolver output consumed by the aggregator.
type TrademarkFinding struct {
	Verdict verdict.AvailabilityVerdict
	Status  verdict.TrademarkStatus
	Serial  string
}

// Resolve classifies the trademark status of name.
func (r *TrademarkResolver) Resolve(ctx context.Context, name string) TrademarkFinding {
	host := r.RegistryHost
	if host == "" {
		host = "tmsearch.uspto.gov"
	}

	if r.Searcher == nil || !r.Searcher.Configured() {
		return TrademarkFinding{
			Verdict: verdict.New(verdict.ChannelTrademark, "USPTO", verdict.Unknown(), verdict.ConfidenceLow, "registry search: not configured"),
			Status:  verdict.TrademarkNone,
		}
	}

	query := fmt.Sprintf("site:%s %q", host, name)
	results, err := r.Searcher.Search(ctx, query, 5)
	if err != nil {
		log.Printf("[TrademarkResolver] Registry search failed for %q: %v", name, err)
		return TrademarkFinding{
			Verdict: verdict.New(verdict.ChannelTrademark, "USPTO", verdict.Unknown(), verdict.ConfidenceLow, "registry search: error"),
			Status:  verdict.TrademarkNone,
		}
	}

	status := verdict.TrademarkNone
	serial := ""
	for _, res := range results {
		text := strings.ToLower(res.Title + " " + res.Snippet)
		if !strings.Contains(text, strings.ToLower(name)) {
			continue
		}
		if serial == "" {
			serial = registrySerialPattern.FindString(res.Title + " " + res.Snippet)
		}
		switch classifyRegistryText(text) {
		case verdict.TrademarkLive:
			status = verdict.TrademarkLive
		case verdict.TrademarkDead:
			if status != verdict.TrademarkLive {
				status = verdict.TrademarkDead
			}
		}
	}

	v := verdict.New(verdict.ChannelTrademark, "USPTO", stateForTrademark(status), verdict.ConfidenceMedium, "registry search")
	return TrademarkFinding{Verdict: v, Status: status, Serial: serial}
}

// classifyRegistryText maps registry result text to a status by keyword.
func classifyRegistryText(text string) verdict.TrademarkStatus {
	for _, kw := range []string{"live", "registered"} {
		if strings.Contains(text, kw) {
			return verdict.TrademarkLive
		}
	}
	for _, kw := range []string{"dead", "abandoned", "cancelled", "canceled"} {
		if strings.Contains(text, kw) {
			return verdict.TrademarkDead
		}
	}
	return verdict.TrademarkNone
}

func stateForTrademark(status verdict.TrademarkStatus) verdict.State {
	switch status {
	case verdict.TrademarkLive:
		return verdict.Taken(false)
	default:
		return verdict.Available()
	}
}
