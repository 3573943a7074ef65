package refinement

import "github.com/jonathan/yassu-studio/internal/types"

// Stage is a state of the refinement machine.
type Stage int

// Refinement stages. Analyzing is the entry stage; Refined is terminal.
const (
	StageAnalyzing Stage = iota
	StageClarifying
	StageRefined
)

// skipClarificationConfidence is the analysis confidence above which clarification is skipped.
const skipClarificationConfidence = 75

func (s Stage) String() string {
	switch s {
	case StageAnalyzing:
		return "analyzing"
	case StageClarifying:
		return "clarifying"
	case StageRefined:
		return "refined"
	default:
		return "unknown"
	}
}

// EntryStage returns the first stage for an input. Answered clarifications go straight to Refined.
func EntryStage(input types.RawIdeaInput) Stage {
	if input.HasClarifications() {
		return StageRefined
	}
	return StageAnalyzing
}

// StageAfterAnalysis applies the skip rule: refine unless the model asked for
// clarification and its confidence is at most 75.
func StageAfterAnalysis(analysis types.IdeaAnalysis) Stage {
	if !analysis.NeedsClarification || analysis.Confidence > skipClarificationConfidence {
		return StageRefined
	}
	return StageClarifying
}
