package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namecheck/adapters/cache"
	"namecheck/adapters/probe"
	"namecheck/adapters/search"
	"namecheck/domain/candidate"
	"namecheck/domain/run"
	apperrors "namecheck/internal/errors"
	"namecheck/ports"
)

type fakeGenerator struct {
	candidates []candidate.Candidate
	err        error
}

func (f *fakeGenerator) GenerateCandidates(ctx context.Context, description string, max int) ([]candidate.Candidate, error) {
	return f.candidates, f.err
}

// memoryRunRepo records saved runs for assertions.
type memoryRunRepo struct {
	mu    sync.Mutex
	saved []run.Run
}

func (m *memoryRunRepo) SaveRun(ctx context.Context, r run.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, r)
	return nil
}

func (m *memoryRunRepo) GetRun(ctx context.Context, id uuid.UUID) (*run.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.saved {
		if m.saved[i].ID == id {
			return &m.saved[i], nil
		}
	}
	return nil, apperrors.NotFound("run")
}

func (m *memoryRunRepo) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.RunSummary, 0, len(m.saved))
	for _, r := range m.saved {
		out = append(out, ports.RunSummary{ID: r.ID, Description: r.Description})
	}
	return out, nil
}

func newPipelineFixture(gen ports.Generator, repo ports.RunRepository) *PipelineService {
	reg := &fakeRegistrar{free: map[string]bool{
		"lumora.com": true, "lumora.io": true,
		"verdia.com": false, "verdia.io": true,
	}}
	social := probe.NewFixtureProber().
		Script("https://github.com/lumora", ports.ProbeResult{StatusCode: 404}).
		Script("https://github.com/verdia", ports.ProbeResult{StatusCode: 200})
	checks := newTestService(reg, social, &search.MockSearcher{}, cache.Noop{})

	return NewPipelineService(gen, nil, checks, repo, PipelineConfig{
		DefaultTLDs: []string{"com", "io"},
		Platforms:   []string{"github"},
	})
}

func TestPipelineRunRanksByScore(t *testing.T) {
	gen := &fakeGenerator{candidates: []candidate.Candidate{
		{Name: "Verdia", Style: candidate.StyleCoined},
		{Name: "Lumora", Style: candidate.StyleCoined},
	}}
	repo := &memoryRunRepo{}
	svc := newPipelineFixture(gen, repo)

	result, err := svc.Run(context.Background(), "sustainable packaging startup", 10, false)
	require.NoError(t, err)

	require.Len(t, result.Ranked, 2)
	// Lumora has the free .com and the free handle, so it must rank first.
	assert.Equal(t, "lumora", result.Ranked[0].Candidate.Name)
	assert.Equal(t, "verdia", result.Ranked[1].Candidate.Name)
	assert.Greater(t, result.Ranked[0].Score.Total, result.Ranked[1].Score.Total)
	assert.Equal(t, 2, result.Generated)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, result.ID, repo.saved[0].ID)
}

func TestPipelineRunFiltersBadCandidates(t *testing.T) {
	gen := &fakeGenerator{candidates: []candidate.Candidate{
		{Name: "Lumora", Style: candidate.StyleCoined},
		{Name: "ab", Style: candidate.StyleCoined},
		{Name: "bcdfg", Style: candidate.StyleCoined},
	}}
	svc := newPipelineFixture(gen, nil)

	result, err := svc.Run(context.Background(), "a startup", 10, false)
	require.NoError(t, err)

	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "lumora", result.Ranked[0].Candidate.Name)
	require.Len(t, result.Dropped, 2)
}

func TestPipelineRunTruncatesToMax(t *testing.T) {
	gen := &fakeGenerator{candidates: []candidate.Candidate{
		{Name: "Lumora", Style: candidate.StyleCoined},
		{Name: "Verdia", Style: candidate.StyleCoined},
	}}
	svc := newPipelineFixture(gen, nil)

	result, err := svc.Run(context.Background(), "a startup", 1, false)
	require.NoError(t, err)

	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "lumora", result.Ranked[0].Candidate.Name)
}

func TestPipelineRunEmptyGenerationIsTerminalNotError(t *testing.T) {
	repo := &memoryRunRepo{}
	svc := newPipelineFixture(&fakeGenerator{}, repo)

	result, err := svc.Run(context.Background(), "a startup", 10, false)
	require.NoError(t, err)

	assert.Zero(t, result.Generated)
	assert.Empty(t, result.Ranked)
	// A no-results run is still a run worth recording.
	assert.Len(t, repo.saved, 1)
}

func TestPipelineRunPropagatesNotConfigured(t *testing.T) {
	gen := &fakeGenerator{err: apperrors.NotConfigured("candidate generation")}
	svc := newPipelineFixture(gen, nil)

	_, err := svc.Run(context.Background(), "a startup", 10, false)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotConfigured(err))
}

func TestPipelineRunWrapsTransientGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream 500")}
	svc := newPipelineFixture(gen, nil)

	_, err := svc.Run(context.Background(), "a startup", 10, false)

	require.Error(t, err)
	assert.False(t, apperrors.IsNotConfigured(err))
}

func TestPipelineRunRejectsEmptyDescription(t *testing.T) {
	svc := newPipelineFixture(&fakeGenerator{}, nil)

	_, err := svc.Run(context.Background(), "   ", 10, false)

	assert.Error(t, err)
}
