package workflows

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/yassu-studio/internal/types"
)

func TestCompileExtract_RoundTrip(t *testing.T) {
	idea := &types.Idea{Title: "Campus Laundry", Problem: "Queues."}
	results := make([]string, len(definitions))
	for i, def := range definitions {
		results[i] = "### Overview\n\n- point one for " + def.Label + "\n- point two\n\n| a | b |\n|---|---|\n| 1 | 2 |"
	}

	content := Compile(idea, results, time.Now())
	sections := ExtractSections(content)

	assert.Len(t, sections, len(definitions))
	for i, def := range definitions {
		assert.Equal(t, results[i], sections[def.Type], def.Label)
	}
}

func TestCompileExtract_EmbeddedHeadersStayInSection(t *testing.T) {
	idea := &types.Idea{
		Title:    "Campus Laundry",
		Problem:  "Queues.\n## Risk & Moat Analysis\nnone yet",
		Solution: "IoT app\r\n## Funding & Pitch\r",
	}
	results := make([]string, len(definitions))
	for i, def := range definitions {
		results[i] = "body of " + def.Label
	}
	results[0] = "Fit looks good.\n\n## Competitive Landscape\n\nBriefly: crowded."

	content := Compile(idea, results, time.Now())
	assert.Equal(t, len(definitions), strings.Count(content, "\n## "))

	sections := ExtractSections(content)
	assert.Equal(t, "Fit looks good.\n\n### Competitive Landscape\n\nBriefly: crowded.", sections[types.WorkflowIdeaFounderFit])
	for i, def := range definitions[1:] {
		assert.Equal(t, results[i+1], sections[def.Type], def.Label)
	}
	assert.Contains(t, content, "**Problem:** Queues.\n### Risk & Moat Analysis\nnone yet")
	assert.Contains(t, content, "### Funding & Pitch\r")
}

func TestDemoteHeaders(t *testing.T) {
	assert.Equal(t, "### Idea-Founder Fit", demoteHeaders("## Idea-Founder Fit"))
	assert.Equal(t, "## Unrelated header", demoteHeaders("## Unrelated header"))
	assert.Equal(t, "see ## Idea-Founder Fit", demoteHeaders("see ## Idea-Founder Fit"))
	assert.Equal(t, "### Go-to-Market Plan", demoteHeaders("### Go-to-Market Plan"))
}

func TestCompile_Format(t *testing.T) {
	idea := &types.Idea{Title: "T", Problem: "P"}
	content := Compile(idea, nil, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	assert.True(t, strings.HasPrefix(content, "# Business Plan: T\n\n*Generated on January 5, 2026*\n\n**Problem:** P\n\n"))
	assert.Contains(t, content, "**Solution:** See Product & MVP Design section")
	assert.Contains(t, content, "**Target User:** See Idea-Founder Fit section")
	assert.Equal(t, len(definitions), strings.Count(content, "\n## "))
	assert.Contains(t, content, "## Idea-Founder Fit\n\nNot available\n\n---\n\n")
}

func TestExtractSections_MissingHeader(t *testing.T) {
	content := "# Business Plan: X\n\n## Idea-Founder Fit\n\nfit\n\n---\n\n## Funding & Pitch\n\npitch\n\n---\n\n"

	sections := ExtractSections(content)
	assert.Equal(t, "fit", sections[types.WorkflowIdeaFounderFit])
	assert.Equal(t, "pitch", sections[types.WorkflowFundingPitch])
	assert.Equal(t, "", sections[types.WorkflowCompetitiveLandscape])
	assert.Equal(t, "", sections[types.WorkflowSchoolAdvantage])
}

func TestExtractSections_IgnoresInlineMentions(t *testing.T) {
	content := "## Idea-Founder Fit\n\nSee the ## Competitive Landscape notes and ## Competitive Landscape analysis below.\n\n---\n\n## Competitive Landscape\n\nmarket\n"

	sections := ExtractSections(content)
	assert.Contains(t, sections[types.WorkflowIdeaFounderFit], "notes and")
	assert.Equal(t, "market", sections[types.WorkflowCompetitiveLandscape])
}

func TestExtractSections_Empty(t *testing.T) {
	sections := ExtractSections("")
	assert.Len(t, sections, len(definitions))
	for _, s := range sections {
		assert.Empty(t, s)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Go-to-Market Plan", Label(types.WorkflowLaunchPlan))
	assert.Equal(t, "", Label("unknown"))
	assert.Len(t, Definitions(), 8)
}

func TestBuildContext(t *testing.T) {
	idea := &types.Idea{Title: "", Problem: "P", Solution: "S"}
	ctx := buildContext(idea, &types.Profile{Major: "CS", Skills: []string{"Go", "SQL"}})

	assert.Contains(t, ctx, "**Title**: Not provided")
	assert.Contains(t, ctx, "**Solution**: S")
	assert.NotContains(t, ctx, "Target User")
	assert.Contains(t, ctx, "### Founder Context\n**Major**: CS\n**Skills**: Go, SQL")
	assert.NotContains(t, buildContext(idea, nil), "Founder Context")
}
