package refinement

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/prompts"
	"github.com/jonathan/yassu-studio/internal/schemas"
	"github.com/jonathan/yassu-studio/internal/types"
)

// MaxQuestions caps the number of clarifying questions returned.
const MaxQuestions = 4

type questionPayload struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

type questionsPayload struct {
	Questions []questionPayload `json:"questions"`
}

// FallbackQuestions returns the fixed pair used whenever question generation fails.
func FallbackQuestions() []types.ClarifyingQuestion {
	return []types.ClarifyingQuestion{
		{ID: "target-user", Question: "Who specifically faces this problem?", Kind: types.QuestionText},
		{ID: "pain-point", Question: "What is the biggest pain point or frustration?", Kind: types.QuestionText},
	}
}

// clarify never fails; errors and empty results yield FallbackQuestions.
func (e *Engine) clarify(ctx context.Context, rawIdea string, analysis *types.IdeaAnalysis) []types.ClarifyingQuestion {
	tmpl := prompts.MustGet(prompts.RefinementFile, "clarifying_questions")
	prompt := tmpl.Render(map[string]string{
		"RawIdea":          rawIdea,
		"CoreProblem":      analysis.CoreProblem,
		"IdentifiedTarget": analysis.IdentifiedTarget,
	})

	raw, err := e.client.GenerateJSON(ctx, tmpl.System, prompt, e.analysisTier)
	if err != nil {
		e.logger.Warn("clarifying question generation failed, using fallback questions", slog.Any("err", err))
		return FallbackQuestions()
	}

	payload, err := llm.Decode[questionsPayload](raw, schemas.ClarifyingQuestions)
	if err != nil {
		e.logger.Warn("clarifying questions malformed, using fallback questions", slog.Any("err", err))
		return FallbackQuestions()
	}

	questions := normalizeQuestions(payload.Questions)
	if len(questions) == 0 {
		return FallbackQuestions()
	}
	return questions
}

func normalizeQuestions(in []questionPayload) []types.ClarifyingQuestion {
	out := make([]types.ClarifyingQuestion, 0, MaxQuestions)
	for _, q := range in {
		if len(out) == MaxQuestions {
			break
		}
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}

		kind := types.QuestionKind(q.Type)
		options := nonEmpty(q.Options)
		switch {
		case kind.IsChoice() && len(options) == 0:
			kind = types.QuestionText
		case !kind.IsChoice():
			kind = types.QuestionText
			options = nil
		}

		out = append(out, types.ClarifyingQuestion{
			ID:       strings.TrimSpace(q.ID),
			Question: text,
			Kind:     kind,
			Options:  options,
			Required: false,
		})
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
