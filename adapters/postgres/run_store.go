package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"namecheck/domain/run"
	"namecheck/internal/errors"
	"namecheck/ports"
)

// RunStore implements ports.RunRepository on the pipeline_runs table. The
// ranked candidates travel as a JSONB payload; the listing columns are
// denormalized for cheap summaries.
type RunStore struct {
	db *sqlx.DB
}

// NewRunStore creates a Postgres-backed run repository.
func NewRunStore(db *sqlx.DB) *RunStore {
	return &RunStore{db: db}
}

// SaveRun persists a completed pipeline run.
func (s *RunStore) SaveRun(ctx context.Context, r run.Run) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "marshal run payload")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pipeline_runs (id, description, started_at, finished_at, generated, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.ID, r.Description, r.StartedAt, r.FinishedAt, r.Generated, payload)
	if err != nil {
		return errors.Wrap(err, "insert pipeline run")
	}
	return nil
}

// GetRun loads one run with its full ranking.
func (s *RunStore) GetRun(ctx context.Context, id uuid.UUID) (*run.Run, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, `
		SELECT payload FROM pipeline_runs WHERE id = $1
	`, id)
	if err != nil {
		return nil, errors.NotFound("pipeline run")
	}
	var r run.Run
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, errors.Wrap(err, "unmarshal run payload")
	}
	return &r, nil
}

// ListRuns returns the most recent run summaries.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows := []struct {
		ID          uuid.UUID `db:"id"`
		Description string    `db:"description"`
		StartedAt   time.Time `db:"started_at"`
		Payload     []byte    `db:"payload"`
	}{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, description, started_at, payload
		FROM pipeline_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list pipeline runs")
	}

	summaries := make([]ports.RunSummary, 0, len(rows))
	for _, row := range rows {
		var r run.Run
		if err := json.Unmarshal(row.Payload, &r); err != nil {
			continue
		}
		summaries = append(summaries, ports.RunSummary{
			ID:          row.ID,
			Description: row.Description,
			StartedAt:   row.StartedAt.Format(time.RFC3339),
			Candidates:  len(r.Ranked),
			TopScore:    r.TopScore(),
		})
	}
	return summaries, nil
}
