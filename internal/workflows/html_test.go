package workflows

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/yassu-studio/internal/types"
)

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# Business Plan: X\n\n## Competitive Landscape\n\n| Name | Edge |\n|---|---|\n| A | cheap |\n")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Business Plan: X</h1>")
	assert.Contains(t, html, "<h2>Competitive Landscape</h2>")
	assert.Contains(t, html, "<table>")
}

func TestSectionCache(t *testing.T) {
	cache, err := NewSectionCache(1)
	require.NoError(t, err)

	a := &types.WorkflowArtifact{ID: uuid.New(), Content: "## Idea-Founder Fit\n\nfit\n"}
	b := &types.WorkflowArtifact{ID: uuid.New(), Content: "## Funding & Pitch\n\npitch\n"}

	assert.Equal(t, "fit", cache.Sections(a)[types.WorkflowIdeaFounderFit])
	assert.Equal(t, 1, cache.Len())

	// Same ID returns the memoized sections even if content were to differ.
	stale := &types.WorkflowArtifact{ID: a.ID, Content: ""}
	assert.Equal(t, "fit", cache.Sections(stale)[types.WorkflowIdeaFounderFit])

	assert.Equal(t, "pitch", cache.Sections(b)[types.WorkflowFundingPitch])
	assert.Equal(t, 1, cache.Len())
}

func TestNewSectionCache_DefaultSize(t *testing.T) {
	cache, err := NewSectionCache(0)
	require.NoError(t, err)
	assert.NotNil(t, cache)
}
