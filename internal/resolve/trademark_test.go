package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"namecheck/adapters/search"
	"namecheck/domain/verdict"
	"namecheck/ports"
)

func TestTrademarkResolveLiveMark(t *testing.T) {
	s := &search.MockSearcher{Results: map[string][]ports.SearchResult{
		"tmsearch.uspto.gov": {
			{Title: "ACME - Registration 87654321", Snippet: "Status: LIVE, registered mark"},
		},
	}}
	r := &TrademarkResolver{Searcher: s}

	f := r.Resolve(context.Background(), "acme")

	assert.Equal(t, verdict.TrademarkLive, f.Status)
	assert.Equal(t, "87654321", f.Serial)
	assert.Equal(t, verdict.StateTaken, f.Verdict.State.Kind)
	assert.Equal(t, verdict.ConfidenceMedium, f.Verdict.Confidence)
}

func TestTrademarkResolveDeadMark(t *testing.T) {
	s := &search.MockSearcher{Results: map[string][]ports.SearchResult{
		"tmsearch.uspto.gov": {
			{Title: "ACME", Snippet: "Status: DEAD, abandoned 2015"},
		},
	}}
	r := &TrademarkResolver{Searcher: s}

	f := r.Resolve(context.Background(), "acme")

	assert.Equal(t, verdict.TrademarkDead, f.Status)
	assert.Equal(t, verdict.StateAvailable, f.Verdict.State.Kind)
}

func TestTrademarkResolveLiveBeatsDead(t *testing.T) {
	s := &search.MockSearcher{Results: map[string][]ports.SearchResult{
		"tmsearch.uspto.gov": {
			{Title: "ACME", Snippet: "Status: DEAD, cancelled"},
			{Title: "ACME Corp", Snippet: "Status: LIVE"},
		},
	}}
	r := &TrademarkResolver{Searcher: s}

	f := r.Resolve(context.Background(), "acme")

	assert.Equal(t, verdict.TrademarkLive, f.Status)
}

func TestTrademarkResolveNoMatchingRecordsIsDefinitiveNone(t *testing.T) {
	s := &search.MockSearcher{Results: map[string][]ports.SearchResult{}}
	r := &TrademarkResolver{Searcher: s}

	f := r.Resolve(context.Background(), "zzqxw")

	// A successful search with no records is a definitive negative, not an
	// Unknown: the registry is the complete record of what it registers.
	assert.Equal(t, verdict.TrademarkNone, f.Status)
	assert.Equal(t, verdict.StateAvailable, f.Verdict.State.Kind)
	assert.Equal(t, verdict.ConfidenceMedium, f.Verdict.Confidence)
}

func TestTrademarkResolveIgnoresResultsNotMentioningName(t *testing.T) {
	s := &search.MockSearcher{Results: map[string][]ports.SearchResult{
		"tmsearch.uspto.gov": {
			{Title: "OTHERMARK", Snippet: "Status: LIVE"},
		},
	}}
	r := &TrademarkResolver{Searcher: s}

	f := r.Resolve(context.Background(), "acme")

	assert.Equal(t, verdict.TrademarkNone, f.Status)
}

func TestTrademarkResolveUnconfiguredSearcher(t *testing.T) {
	r := &TrademarkResolver{Searcher: &search.MockSearcher{NoKey: true}}

	f := r.Resolve(context.Background(), "acme")

	assert.Equal(t, verdict.TrademarkNone, f.Status)
	assert.Equal(t, verdict.StateUnknown, f.Verdict.State.Kind)
	assert.Equal(t, verdict.ConfidenceLow, f.Verdict.Confidence)
}

func TestTrademarkResolveSearchError(t *testing.T) {
	r := &TrademarkResolver{Searcher: &search.MockSearcher{Err: errors.New("quota exceeded")}}

	f := r.Resolve(context.Background(), "acme")

	assert.Equal(t, verdict.StateUnknown, f.Verdict.State.Kind)
	assert.Equal(t, verdict.TrademarkNone, f.Status)
}

func TestClassifyRegistryText(t *testing.T) {
	assert.Equal(t, verdict.TrademarkLive, classifyRegistryText("status: live"))
	assert.Equal(t, verdict.TrademarkLive, classifyRegistryText("registered trademark"))
	assert.Equal(t, verdict.TrademarkDead, classifyRegistryText("abandoned in 2012"))
	assert.Equal(t, verdict.TrademarkNone, classifyRegistryText("unrelated snippet"))
}
