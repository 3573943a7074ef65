package refinement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/yassu-studio/internal/types"
)

func TestEntryStage(t *testing.T) {
	assert.Equal(t, StageAnalyzing, EntryStage(types.RawIdeaInput{RawIdea: "x"}))
	assert.Equal(t, StageAnalyzing, EntryStage(types.RawIdeaInput{RawIdea: "x", Clarifications: map[string]string{}}))
	assert.Equal(t, StageRefined, EntryStage(types.RawIdeaInput{RawIdea: "x", Clarifications: map[string]string{"a": "b"}}))
}

func TestStageAfterAnalysis(t *testing.T) {
	tests := []struct {
		name       string
		needs      bool
		confidence int
		want       Stage
	}{
		{"no clarification needed", false, 10, StageRefined},
		{"needed, low confidence", true, 40, StageClarifying},
		{"needed, at threshold", true, 75, StageClarifying},
		{"needed, above threshold", true, 76, StageRefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StageAfterAnalysis(types.IdeaAnalysis{NeedsClarification: tt.needs, Confidence: tt.confidence})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "analyzing", StageAnalyzing.String())
	assert.Equal(t, "clarifying", StageClarifying.String())
	assert.Equal(t, "refined", StageRefined.String())
	assert.Equal(t, "unknown", Stage(9).String())
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, clampConfidence(-5))
	assert.Equal(t, 100, clampConfidence(140))
	assert.Equal(t, 83, clampConfidence(82.6))
}

func TestFormatClarifications(t *testing.T) {
	assert.Equal(t, "", formatClarifications(nil))
	assert.Equal(t, "", formatClarifications(map[string]string{"a": "  "}))
	assert.Equal(t, "Additional Context:\n- a: 1\n- b: 2\n\n", formatClarifications(map[string]string{"b": "2", "a": "1"}))
}
