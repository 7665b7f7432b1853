package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"namecheck/domain/score"
	"namecheck/domain/verdict"
	"namecheck/internal/errors"
	"namecheck/ports"
)

// FitAdapter implements ports.FitScorer using an LLM judgment call.
type FitAdapter struct {
	config    Config
	llmClient LLMClient
}

// NewFitAdapter creates an LLM fit scorer. Without an API key every judgment
// falls back to the neutral default.
func NewFitAdapter(config Config) *FitAdapter {
	adapter := &FitAdapter{config: config}
	if client, err := newLLMClient(config); err == nil {
		adapter.llmClient = client
	}
	return adapter
}

// NewFitAdapterWithClient wires an explicit client (tests).
func NewFitAdapterWithClient(config Config, client LLMClient) *FitAdapter {
	return &FitAdapter{config: config, llmClient: client}
}

const fitPromptTemplate = `Rate how well the brand name %q fits this business on a 0-100 scale.

Business description:
%s

Known availability signals: .com is %s, trademark status is %s.

Respond with JSON only: {"score": <0-100>, "rationale": "one sentence"}`

// ScoreFit judges name/business relevance. Any failure degrades to the
// neutral default of 50 rather than blocking the candidate.
func (f *FitAdapter) ScoreFit(ctx context.Context, name, businessDescription string, result verdict.NameCheckResult) (ports.FitJudgment, error) {
	neutral := ports.FitJudgment{Score: score.NeutralFit, Rationale: "fit scoring unavailable"}
	if f.llmClient == nil {
		return neutral, errors.NotConfigured("LLM fit scoring")
	}

	comState := "unchecked"
	if v, ok := result.DomainVerdicts["com"]; ok {
		comState = v.State.String()
	}

	prompt := fmt.Sprintf(fitPromptTemplate, name, businessDescription, comState, result.TrademarkStatus)
	content, err := f.llmClient.ChatCompletion(ctx, f.config.Model, prompt, 300)
	if err != nil {
		log.Printf("[FitScorer] Judgment failed for %q, using neutral default: %v", name, err)
		return neutral, errors.ExternalServiceError("llm", err)
	}

	var parsed struct {
		Score     float64 `json:"score"`
		Rationale string  `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(cleanJSONContent(content)), &parsed); err != nil {
		log.Printf("[FitScorer] Unparseable judgment for %q, using neutral default: %v", name, err)
		return neutral, errors.ExternalServiceError("llm", fmt.Errorf("parse judgment: %w", err))
	}

	if parsed.Score < 0 {
		parsed.Score = 0
	}
	if parsed.Score > 100 {
		parsed.Score = 100
	}
	return ports.FitJudgment{Score: parsed.Score, Rationale: parsed.Rationale}, nil
}
