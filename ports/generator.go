package ports

import (
	"context"

	"namecheck/domain/candidate"
	"namecheck/domain/verdict"
)

// Generator produces brand-name candidates from a business description.
// An empty slice with a nil error is a legitimate terminal outcome ("the
// model found nothing"), not a failure.
type Generator interface {
	GenerateCandidates(ctx context.Context, businessDescription string, max int) ([]candidate.Candidate, error)
}

// FitJudgment is the LLM's relevance assessment of a name for a business.
type FitJudgment struct {
	Score     float64 // 0-100
	Rationale string
}

// FitScorer judges how well a checked name fits the business. On failure the
// caller substitutes the neutral default rather than dropping the candidate.
type FitScorer interface {
	ScoreFit(ctx context.Context, name, businessDescription string, result verdict.NameCheckResult) (FitJudgment, error)
}
