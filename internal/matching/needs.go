package matching

import (
	"strings"

	"github.com/jonathan/yassu-studio/internal/types"
)

// DefaultStage is assumed when neither the caller nor the idea names a stage.
const DefaultStage = "idea"

// NeedsForIdea builds the matching needs of a stored idea. stage overrides the idea's own stage.
func NeedsForIdea(idea *types.Idea, stage string, roles []string) types.MatchingNeeds {
	return types.MatchingNeeds{
		IdeaTitle:    idea.Title,
		IdeaProblem:  idea.Problem,
		IdeaSolution: idea.Solution,
		TargetUser:   idea.TargetUser,
		Stage:        firstNonEmpty(stage, idea.Stage, DefaultStage),
		RolesNeeded:  roles,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
