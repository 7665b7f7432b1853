// Package app wires the channel resolvers into the two core operations:
// single-name checks and full generate-check-score pipeline runs.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"namecheck/domain/verdict"
	"namecheck/internal/errors"
	"namecheck/internal/resolve"
	"namecheck/ports"
)

// checkConcurrency bounds simultaneous outbound probes within one check.
const checkConcurrency = 8

// CheckConfig holds aggregator settings.
type CheckConfig struct {
	MaxChannels int           // global per-request TLD/platform cap
	CacheTTL    time.Duration // TTL for cached check results
}

// CheckService fans a name out across all channel resolvers and assembles a
// NameCheckResult. Channel resolutions are independent and failure-isolated:
// one channel's failure degrades that channel to Unknown and never aborts
// the others.
type CheckService struct {
	domain    *resolve.DomainResolver
	social    *resolve.SocialResolver
	trademark *resolve.TrademarkResolver
	seo       *resolve.SEOResolver
	cache     ports.Cache
	config    CheckConfig
}

// NewCheckService creates the aggregator.
func NewCheckService(
	domain *resolve.DomainResolver,
	social *resolve.SocialResolver,
	trademark *resolve.TrademarkResolver,
	seo *resolve.SEOResolver,
	cache ports.Cache,
	config CheckConfig,
) *CheckService {
	if config.MaxChannels <= 0 {
		config.MaxChannels = 24
	}
	return &CheckService{
		domain:    domain,
		social:    social,
		trademark: trademark,
		seo:       seo,
		cache:     cache,
		config:    config,
	}
}

// CheckName resolves every requested channel for one name. Malformed input
// is rejected synchronously before any network work; everything after that
// completes with degraded data rather than failing.
func (s *CheckService) CheckName(ctx context.Context, rawName string, tlds, platforms []string) (verdict.NameCheckResult, error) {
	name := verdict.NormalizeName(rawName)
	if len(name) < 2 {
		return verdict.NameCheckResult{}, errors.InvalidInput("name must be at least 2 characters after normalization")
	}
	if len(name) > 63 {
		return verdict.NameCheckResult{}, errors.InvalidInput("name exceeds 63 characters")
	}
	if len(tlds) == 0 {
		tlds = []string{"com"}
	}

	tlds, platforms = s.applyChannelCap(tlds, platforms)

	cacheKey := checkCacheKey(name, tlds, platforms)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		log.Printf("[CheckService] Cache hit for %s", name)
		return *cached, nil
	}

	start := time.Now()
	result := verdict.NameCheckResult{
		Name:           name,
		DomainVerdicts: make(map[string]verdict.AvailabilityVerdict, len(tlds)),
		SocialVerdicts: make(map[string]verdict.AvailabilityVerdict, len(platforms)),
	}

	sem := semaphore.NewWeighted(checkConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, tld := range tlds {
		wg.Add(1)
		go func(tld string) {
			defer wg.Done()
			v := s.resolveGuarded(ctx, sem, verdict.ChannelDomain, tld, func() verdict.AvailabilityVerdict {
				return s.domain.Resolve(ctx, name, tld)
			})
			mu.Lock()
			result.DomainVerdicts[tld] = v
			mu.Unlock()
		}(tld)
	}

	for _, platform := range platforms {
		wg.Add(1)
		go func(platform string) {
			defer wg.Done()
			v := s.resolveGuarded(ctx, sem, verdict.ChannelSocial, platform, func() verdict.AvailabilityVerdict {
				return s.social.Resolve(ctx, name, platform)
			})
			mu.Lock()
			result.SocialVerdicts[platform] = v
			mu.Unlock()
		}(platform)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		finding := s.trademarkGuarded(ctx, sem, name)
		mu.Lock()
		result.Trademark = finding.Verdict
		result.TrademarkStatus = finding.Status
		result.TrademarkSerial = finding.Serial
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		signals := s.seoGuarded(ctx, sem, name)
		mu.Lock()
		result.SEOSignals = signals
		mu.Unlock()
	}()

	wg.Wait()
	log.Printf("[CheckService] Checked %s across %d TLDs, %d platforms in %v",
		name, len(tlds), len(platforms), time.Since(start))

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// resolveGuarded runs one channel resolution under the concurrency bound and
// a panic guard. A panicking resolver degrades its channel to Unknown.
func (s *CheckService) resolveGuarded(ctx context.Context, sem *semaphore.Weighted, channel verdict.Channel, identifier string, fn func() verdict.AvailabilityVerdict) (v verdict.AvailabilityVerdict) {
	v = verdict.New(channel, identifier, verdict.Unknown(), verdict.ConfidenceLow, "resolution aborted")
	if err := sem.Acquire(ctx, 1); err != nil {
		return v
	}
	defer sem.Release(1)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[CheckService] Resolver panic on %s/%s: %v", channel, identifier, r)
			v = verdict.New(channel, identifier, verdict.Unknown(), verdict.ConfidenceLow, "resolver panic")
		}
	}()
	return fn()
}

func (s *CheckService) trademarkGuarded(ctx context.Context, sem *semaphore.Weighted, name string) (f resolve.TrademarkFinding) {
	f = resolve.TrademarkFinding{
		Verdict: verdict.New(verdict.ChannelTrademark, "USPTO", verdict.Unknown(), verdict.ConfidenceLow, "resolution aborted"),
		Status:  verdict.TrademarkNone,
	}
	if err := sem.Acquire(ctx, 1); err != nil {
		return f
	}
	defer sem.Release(1)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[CheckService] Trademark resolver panic: %v", r)
		}
	}()
	return s.trademark.Resolve(ctx, name)
}

func (s *CheckService) seoGuarded(ctx context.Context, sem *semaphore.Weighted, name string) (signals []verdict.SEOSignal) {
	signals = nil
	if err := sem.Acquire(ctx, 1); err != nil {
		return signals
	}
	defer sem.Release(1)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[CheckService] SEO resolver panic: %v", r)
			signals = nil
		}
	}()
	return s.seo.Resolve(ctx, name)
}

// applyChannelCap bounds total fan-out, trimming platforms first so domain
// checks keep priority under a tight cap.
func (s *CheckService) applyChannelCap(tlds, platforms []string) ([]string, []string) {
	limit := s.config.MaxChannels
	if len(tlds) >= limit {
		return tlds[:limit], nil
	}
	remaining := limit - len(tlds)
	if len(platforms) > remaining {
		platforms = platforms[:remaining]
	}
	return tlds, platforms
}

func checkCacheKey(name string, tlds, platforms []string) string {
	t := append([]string(nil), tlds...)
	p := append([]string(nil), platforms...)
	sort.Strings(t)
	sort.Strings(p)
	return fmt.Sprintf("check:%s:%s:%s", name, strings.Join(t, ","), strings.Join(p, ","))
}

func (s *CheckService) cacheGet(ctx context.Context, key string) (*verdict.NameCheckResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var result verdict.NameCheckResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (s *CheckService) cacheSet(ctx context.Context, key string, result verdict.NameCheckResult) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, payload, s.config.CacheTTL)
}
