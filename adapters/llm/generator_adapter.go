package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"namecheck/domain/candidate"
	"namecheck/internal/errors"
)

// GeneratorAdapter implements ports.Generator using an LLM.
type GeneratorAdapter struct {
	config    Config
	llmClient LLMClient
}

// NewGeneratorAdapter creates an LLM generator adapter. A missing API key is
// tolerated here: the pipeline reports NOT_CONFIGURED when a run is actually
// requested, which keeps check-only deployments working without an LLM key.
func NewGeneratorAdapter(config Config) *GeneratorAdapter {
	adapter := &GeneratorAdapter{config: config}
	if client, err := newLLMClient(config); err == nil {
		adapter.llmClient = client
	}
	return adapter
}

// NewGeneratorAdapterWithClient wires an explicit client (tests).
func NewGeneratorAdapterWithClient(config Config, client LLMClient) *GeneratorAdapter {
	return &GeneratorAdapter{config: config, llmClient: client}
}

const generatePromptTemplate = `Generate up to %d brand name candidates for the following business.

Business description:
%s

Rules:
- names must be 3-15 characters, single word, lowercase letters only
- mix naming styles: descriptive, suggestive, coined, blend, metaphor
- avoid names with obvious trademark conflicts

Respond with a JSON array only, no prose. Each element:
{"name": "...", "style": "descriptive|suggestive|coined|blend|metaphor", "rationale": "one sentence"}`

// GenerateCandidates asks the model for brand-name candidates.
func (g *GeneratorAdapter) GenerateCandidates(ctx context.Context, businessDescription string, max int) ([]candidate.Candidate, error) {
	if g.llmClient == nil {
		return nil, errors.NotConfigured("LLM candidate generation")
	}
	if max <= 0 {
		max = 10
	}

	prompt := fmt.Sprintf(generatePromptTemplate, max*2, businessDescription)
	log.Printf("[Generator] Requesting up to %d candidates, model=%s", max*2, g.config.Model)

	content, err := g.llmClient.ChatCompletion(ctx, g.config.Model, prompt, g.config.MaxTokens)
	if err != nil {
		return nil, errors.ExternalServiceError("llm", err)
	}

	var raw []candidate.Candidate
	if err := json.Unmarshal([]byte(cleanJSONContent(content)), &raw); err != nil {
		return nil, errors.ExternalServiceError("llm", fmt.Errorf("parse candidates: %w", err))
	}

	// Normalize, drop empties and duplicates, cap at max.
	seen := make(map[string]bool)
	out := make([]candidate.Candidate, 0, max)
	for _, c := range raw {
		c = candidate.Normalize(c)
		if c.Name == "" || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
		if len(out) >= max {
			break
		}
	}

	log.Printf("[Generator] Model returned %d candidates, kept %d after normalization", len(raw), len(out))
	return out, nil
}
