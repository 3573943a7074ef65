package refinement

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/prompts"
	"github.com/jonathan/yassu-studio/internal/schemas"
	"github.com/jonathan/yassu-studio/internal/types"
)

// Defaults applied to fields the model left out.
const (
	DefaultTitle      = "Untitled Idea"
	DefaultTargetUser = "University students"
	DefaultConfidence = 70
)

// refinedPayload is the model's output before defaults. Absent fields stay zero.
type refinedPayload struct {
	Title         string          `json:"title"`
	Problem       string          `json:"problem"`
	Solution      string          `json:"solution"`
	TargetUser    string          `json:"targetUser"`
	WhyNow        string          `json:"whyNow"`
	Assumptions   json.RawMessage `json:"assumptions"`
	SuggestedTags []string        `json:"suggestedTags"`
	Confidence    float64         `json:"confidence"`
}

func (e *Engine) refine(ctx context.Context, rawIdea string, clarifications map[string]string) (*types.RefinedIdea, error) {
	tmpl := prompts.MustGet(prompts.RefinementFile, "refined_idea")
	prompt := tmpl.Render(map[string]string{
		"RawIdea":           rawIdea,
		"AdditionalContext": formatClarifications(clarifications),
	})

	raw, err := e.client.GenerateJSON(ctx, tmpl.System, prompt, e.refineTier)
	if err != nil {
		return nil, &RefinementError{Message: "completion call failed", Cause: err}
	}

	payload, err := llm.Decode[refinedPayload](raw, schemas.RefinedIdea)
	if err != nil {
		return nil, &RefinementError{Message: "malformed refined idea", Cause: err}
	}

	idea := applyDefaults(payload, rawIdea)
	return &idea, nil
}

// applyDefaults builds a fully populated RefinedIdea from a partial payload.
func applyDefaults(p refinedPayload, rawIdea string) types.RefinedIdea {
	idea := types.RefinedIdea{
		Title:         strings.TrimSpace(p.Title),
		Problem:       strings.TrimSpace(p.Problem),
		Solution:      strings.TrimSpace(p.Solution),
		TargetUser:    strings.TrimSpace(p.TargetUser),
		WhyNow:        strings.TrimSpace(p.WhyNow),
		Assumptions:   assumptionsText(p.Assumptions),
		SuggestedTags: nonEmpty(p.SuggestedTags),
		Confidence:    clampConfidence(p.Confidence),
	}

	if idea.Title == "" {
		idea.Title = DefaultTitle
	}
	if idea.Problem == "" {
		idea.Problem = rawIdea
	}
	if idea.TargetUser == "" {
		idea.TargetUser = DefaultTargetUser
	}
	if idea.SuggestedTags == nil {
		idea.SuggestedTags = []string{}
	}
	if idea.Confidence == 0 {
		idea.Confidence = DefaultConfidence
	}
	return idea
}

// assumptionsText accepts either a string or a list of strings.
func assumptionsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		items = nonEmpty(items)
		for i, item := range items {
			items[i] = "- " + item
		}
		return strings.Join(items, "\n")
	}
	return ""
}

// formatClarifications renders answers sorted by key so prompts are deterministic.
func formatClarifications(clarifications map[string]string) string {
	keys := make([]string, 0, len(clarifications))
	for k, v := range clarifications {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("Additional Context:\n")
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", k, strings.TrimSpace(clarifications[k])))
	}
	sb.WriteString("\n")
	return sb.String()
}
