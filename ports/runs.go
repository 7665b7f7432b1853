package ports

import (
	"context"

	"github.com/google/uuid"

	"namecheck/domain/run"
)

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	StartedAt   string    `json:"started_at"`
	Candidates  int       `json:"candidates"`
	TopScore    int       `json:"top_score"`
}

// RunRepository persists pipeline runs. Persistence is a convenience layer:
// a failed save is logged, never surfaced to the pipeline caller.
type RunRepository interface {
	SaveRun(ctx context.Context, r run.Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*run.Run, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}
