package app

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"namecheck/domain/candidate"
	"namecheck/domain/run"
	"namecheck/domain/score"
	"namecheck/internal/errors"
	"namecheck/ports"
)

// PipelineConfig holds orchestrator settings.
type PipelineConfig struct {
	MaxCandidates       int
	MaxConcurrentChecks int
	DefaultTLDs         []string
	ExtendedTLDs        []string
	Platforms           []string
	Weights             score.Weights
}

// PipelineService drives the full generate → filter → check+score → rank →
// truncate pipeline. Candidates are processed independently and
// concurrently; one candidate's channel failures never block the others.
type PipelineService struct {
	generator ports.Generator
	fitScorer ports.FitScorer
	checker   *CheckService
	runs      ports.RunRepository // optional
	config    PipelineConfig
}

// NewPipelineService creates the orchestrator. runs may be nil when history
// persistence is disabled.
func NewPipelineService(
	generator ports.Generator,
	fitScorer ports.FitScorer,
	checker *CheckService,
	runs ports.RunRepository,
	config PipelineConfig,
) *PipelineService {
	if config.MaxCandidates <= 0 {
		config.MaxCandidates = 10
	}
	if config.MaxConcurrentChecks <= 0 {
		config.MaxConcurrentChecks = 4
	}
	if len(config.DefaultTLDs) == 0 {
		config.DefaultTLDs = []string{"com", "io", "co", "net"}
	}
	if len(config.Platforms) == 0 {
		config.Platforms = []string{"instagram", "x", "github", "youtube"}
	}
	return &PipelineService{
		generator: generator,
		fitScorer: fitScorer,
		checker:   checker,
		runs:      runs,
		config:    config,
	}
}

// Run executes one pipeline run. A generation failure is surfaced to the
// caller (NOT_CONFIGURED when the LLM key is absent, EXTERNAL_SERVICE_ERROR
// for transient faults); an empty generation is a terminal no-results run.
func (s *PipelineService) Run(ctx context.Context, businessDescription string, maxCandidates int, extendedTLDs bool) (run.Run, error) {
	description := strings.TrimSpace(businessDescription)
	if description == "" {
		return run.Run{}, errors.InvalidInput("business description is required")
	}
	if maxCandidates <= 0 || maxCandidates > s.config.MaxCandidates {
		maxCandidates = s.config.MaxCandidates
	}

	result := run.Run{
		ID:          uuid.New(),
		Description: description,
		StartedAt:   time.Now(),
	}

	candidates, err := s.generator.GenerateCandidates(ctx, description, maxCandidates*2)
	if err != nil {
		if errors.IsNotConfigured(err) {
			return run.Run{}, err
		}
		return run.Run{}, errors.Wrap(err, "candidate generation failed")
	}
	result.Generated = len(candidates)
	log.Printf("[Pipeline] Run %s: %d candidates generated", result.ID, len(candidates))

	if len(candidates) == 0 {
		result.FinishedAt = time.Now()
		s.saveRun(ctx, result)
		return result, nil
	}

	// Coarse filter before any network work is spent.
	kept := make([]candidate.Candidate, 0, len(candidates))
	for _, c := range candidates {
		c = candidate.Normalize(c)
		if ok, reason := candidate.Filter(c); !ok {
			result.Dropped = append(result.Dropped, run.DroppedCandidate{Name: c.Name, Reason: reason})
			continue
		}
		kept = append(kept, c)
	}
	log.Printf("[Pipeline] Run %s: %d candidates passed filtering", result.ID, len(kept))

	tlds := s.config.DefaultTLDs
	if extendedTLDs && len(s.config.ExtendedTLDs) > 0 {
		tlds = s.config.ExtendedTLDs
	}

	// Deep-check surviving candidates concurrently. A candidate whose check
	// fails entirely is dropped from ranking, not scored zero: scoring it
	// would falsely imply it was checked.
	sem := semaphore.NewWeighted(int64(s.config.MaxConcurrentChecks))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, c := range kept {
		wg.Add(1)
		go func(c candidate.Candidate) {
			defer wg.Done()
			ranked, err := s.checkAndScore(ctx, sem, c, description, tlds)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Dropped = append(result.Dropped, run.DroppedCandidate{Name: c.Name, Reason: err.Error()})
				return
			}
			result.Ranked = append(result.Ranked, ranked)
		}(c)
	}
	wg.Wait()

	// Completion order is meaningless; the explicit ranking sort is the only
	// ordering guarantee. Name breaks ties for deterministic output.
	sort.Slice(result.Ranked, func(i, j int) bool {
		if result.Ranked[i].Score.Total != result.Ranked[j].Score.Total {
			return result.Ranked[i].Score.Total > result.Ranked[j].Score.Total
		}
		return result.Ranked[i].Candidate.Name < result.Ranked[j].Candidate.Name
	})
	if len(result.Ranked) > maxCandidates {
		result.Ranked = result.Ranked[:maxCandidates]
	}

	result.FinishedAt = time.Now()
	log.Printf("[Pipeline] Run %s: finished with %d ranked candidates (top score %d) in %v",
		result.ID, len(result.Ranked), result.TopScore(), result.FinishedAt.Sub(result.StartedAt))

	s.saveRun(ctx, result)
	return result, nil
}

// checkAndScore runs the aggregator and scoring for one candidate under the
// pipeline concurrency bound.
func (s *PipelineService) checkAndScore(ctx context.Context, sem *semaphore.Weighted, c candidate.Candidate, description string, tlds []string) (run.RankedCandidate, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return run.RankedCandidate{}, errors.Wrap(err, "pipeline cancelled")
	}
	defer sem.Release(1)

	checkResult, err := s.checker.CheckName(ctx, c.Name, tlds, s.config.Platforms)
	if err != nil {
		return run.RankedCandidate{}, errors.Wrapf(err, "check failed for %s", c.Name)
	}

	// Fit judgment is best-effort: any failure falls back to neutral.
	fit := ports.FitJudgment{Score: -1}
	if s.fitScorer != nil {
		if judged, ferr := s.fitScorer.ScoreFit(ctx, c.Name, description, checkResult); ferr == nil {
			fit = judged
		}
	}

	return run.RankedCandidate{
		Candidate:    c,
		Result:       checkResult,
		Score:        score.Compute(checkResult, fit.Score, s.config.Weights),
		FitRationale: fit.Rationale,
	}, nil
}

// saveRun persists the run best-effort; failures are logged, never surfaced.
func (s *PipelineService) saveRun(ctx context.Context, r run.Run) {
	if s.runs == nil {
		return
	}
	if err := s.runs.SaveRun(ctx, r); err != nil {
		log.Printf("[Pipeline] Failed to persist run %s: %v", r.ID, err)
	}
}
