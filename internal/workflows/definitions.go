package workflows

import (
	"github.com/jonathan/yassu-studio/internal/prompts"
	"github.com/jonathan/yassu-studio/internal/types"
)

// Definition is one fixed analysis workflow.
type Definition struct {
	Type  types.WorkflowType
	Label string
}

// definitions is the canonical order of the business plan sections.
var definitions = []Definition{
	{Type: types.WorkflowIdeaFounderFit, Label: "Idea-Founder Fit"},
	{Type: types.WorkflowCompetitiveLandscape, Label: "Competitive Landscape"},
	{Type: types.WorkflowRiskAndMoat, Label: "Risk & Moat Analysis"},
	{Type: types.WorkflowMVPDesign, Label: "Product & MVP Design"},
	{Type: types.WorkflowTeamAndTalent, Label: "Team & Talent Strategy"},
	{Type: types.WorkflowLaunchPlan, Label: "Go-to-Market Plan"},
	{Type: types.WorkflowSchoolAdvantage, Label: "University Advantage"},
	{Type: types.WorkflowFundingPitch, Label: "Funding & Pitch"},
}

// Definitions returns all workflows in canonical order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Types returns all workflow types in canonical order.
func Types() []types.WorkflowType {
	out := make([]types.WorkflowType, len(definitions))
	for i, d := range definitions {
		out[i] = d.Type
	}
	return out
}

// Label returns the section header label for a workflow type, or "" if unknown.
func Label(t types.WorkflowType) string {
	def, _ := definitionFor(t)
	return def.Label
}

func definitionFor(t types.WorkflowType) (Definition, bool) {
	for _, d := range definitions {
		if d.Type == t {
			return d, true
		}
	}
	return Definition{}, false
}

// Template returns the prompt template for the workflow.
func (d Definition) Template() (prompts.Template, error) {
	return prompts.Get(prompts.WorkflowsFile, string(d.Type))
}
