package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namecheck/domain/score"
	"namecheck/domain/verdict"
)

func TestScoreFitParsesJudgment(t *testing.T) {
	mock := &MockLLMClient{Response: `{"score": 82, "rationale": "evokes light, matches the product"}`}
	f := NewFitAdapterWithClient(Config{Model: "gpt-4.1-mini"}, mock)

	judged, err := f.ScoreFit(context.Background(), "lumora", "a lighting brand", verdict.NameCheckResult{})
	require.NoError(t, err)

	assert.Equal(t, 82.0, judged.Score)
	assert.NotEmpty(t, judged.Rationale)
}

func TestScoreFitClampsOutOfRangeScores(t *testing.T) {
	f := NewFitAdapterWithClient(Config{}, &MockLLMClient{Response: `{"score": 140, "rationale": "x"}`})

	judged, err := f.ScoreFit(context.Background(), "lumora", "a brand", verdict.NameCheckResult{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, judged.Score)
}

func TestScoreFitFallsBackToNeutralOnError(t *testing.T) {
	f := NewFitAdapterWithClient(Config{}, &MockLLMClient{Error: errors.New("timeout")})

	judged, err := f.ScoreFit(context.Background(), "lumora", "a brand", verdict.NameCheckResult{})

	// The neutral judgment is returned alongside the error so callers can
	// keep the candidate while recording the degradation.
	require.Error(t, err)
	assert.Equal(t, float64(score.NeutralFit), judged.Score)
}

func TestScoreFitFallsBackToNeutralOnGarbage(t *testing.T) {
	f := NewFitAdapterWithClient(Config{}, &MockLLMClient{Response: "I think it fits well!"})

	judged, err := f.ScoreFit(context.Background(), "lumora", "a brand", verdict.NameCheckResult{})

	require.Error(t, err)
	assert.Equal(t, float64(score.NeutralFit), judged.Score)
}

func TestScoreFitWithoutClient(t *testing.T) {
	f := NewFitAdapter(Config{}) // no key

	judged, err := f.ScoreFit(context.Background(), "lumora", "a brand", verdict.NameCheckResult{})

	require.Error(t, err)
	assert.Equal(t, float64(score.NeutralFit), judged.Score)
}
