package refinement

import (
	"context"
	"math"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/prompts"
	"github.com/jonathan/yassu-studio/internal/schemas"
	"github.com/jonathan/yassu-studio/internal/types"
)

type analysisPayload struct {
	CoreProblem        string  `json:"coreProblem"`
	IdentifiedTarget   string  `json:"identifiedTarget"`
	NeedsClarification bool    `json:"needsClarification"`
	Confidence         float64 `json:"confidence"`
	Reasoning          string  `json:"reasoning"`
}

func (e *Engine) analyze(ctx context.Context, rawIdea string) (*types.IdeaAnalysis, error) {
	tmpl := prompts.MustGet(prompts.RefinementFile, "analysis")
	prompt := tmpl.Render(map[string]string{"RawIdea": rawIdea})

	raw, err := e.client.GenerateJSON(ctx, tmpl.System, prompt, e.analysisTier)
	if err != nil {
		return nil, err
	}

	payload, err := llm.Decode[analysisPayload](raw, schemas.Analysis)
	if err != nil {
		return nil, err
	}

	return &types.IdeaAnalysis{
		CoreProblem:        payload.CoreProblem,
		IdentifiedTarget:   payload.IdentifiedTarget,
		NeedsClarification: payload.NeedsClarification,
		Confidence:         clampConfidence(payload.Confidence),
		Reasoning:          payload.Reasoning,
	}, nil
}

func clampConfidence(v float64) int {
	c := int(math.Round(v))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
