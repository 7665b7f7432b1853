// Package run models one pipeline run: the business description it started
// from and the ranked candidates it produced.
package run

import (
	"time"

	"github.com/google/uuid"

	"namecheck/domain/candidate"
	"namecheck/domain/score"
	"namecheck/domain/verdict"
)

// RankedCandidate pairs a surviving candidate with its check result and score.
type RankedCandidate struct {
	Candidate    candidate.Candidate     `json:"candidate"`
	Result       verdict.NameCheckResult `json:"result"`
	Score        score.BrandFitScore     `json:"score"`
	FitRationale string                  `json:"fit_rationale,omitempty"`
}

// DroppedCandidate records why a candidate never made it to ranking.
type DroppedCandidate struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Run is the durable record of one pipeline execution.
type Run struct {
	ID          uuid.UUID          `json:"id"`
	Description string             `json:"description"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Generated   int                `json:"generated"`
	Ranked      []RankedCandidate  `json:"ranked"`
	Dropped     []DroppedCandidate `json:"dropped,omitempty"`
}

// TopScore returns the best total in the ranking, or 0 for an empty run.
func (r Run) TopScore() int {
	if len(r.Ranked) == 0 {
		return 0
	}
	return r.Ranked[0].Score.Total
}
