package matching

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/prompts"
	"github.com/jonathan/yassu-studio/internal/schemas"
	"github.com/jonathan/yassu-studio/internal/types"
)

// FallbackStrategy accompanies the fallback role set.
const FallbackStrategy = "Find co-founder first"

// RoleAnalysis is the set of roles derived for an idea.
type RoleAnalysis struct {
	Roles    []types.RoleRequirement
	Strategy string
}

type rolePayload struct {
	Title          string   `json:"title"`
	Skills         []string `json:"skills"`
	Priority       string   `json:"priority"`
	SearchInternal bool     `json:"searchInternal"`
	SearchExternal bool     `json:"searchExternal"`
	SearchLinkedIn bool     `json:"searchLinkedIn"`
	Reason         string   `json:"reason"`
}

type rolesPayload struct {
	Roles    []rolePayload `json:"roles"`
	Strategy string        `json:"strategy"`
}

// FallbackRoles is used whenever role derivation fails.
func FallbackRoles() RoleAnalysis {
	return RoleAnalysis{
		Roles: []types.RoleRequirement{{
			Title:          "Co-Founder",
			Skills:         []string{"Business", "Technical"},
			Priority:       types.PriorityCritical,
			SearchInternal: true,
			SearchExternal: false,
			Reason:         "Need co-founder to build the startup",
		}},
		Strategy: FallbackStrategy,
	}
}

func (e *Engine) deriveRoles(ctx context.Context, needs types.MatchingNeeds) RoleAnalysis {
	tmpl := prompts.MustGet(prompts.MatchingFile, "roles")
	prompt := tmpl.Render(map[string]string{
		"Title":       needs.IdeaTitle,
		"Problem":     needs.IdeaProblem,
		"Solution":    needs.IdeaSolution,
		"TargetUser":  needs.TargetUser,
		"Stage":       needs.Stage,
		"RolesNeeded": strings.Join(needs.RolesNeeded, ", "),
	})

	raw, err := e.client.GenerateJSON(ctx, tmpl.System, prompt, e.roleTier)
	if err != nil {
		e.logger.Warn("role derivation failed, using fallback roles", slog.Any("err", err))
		return FallbackRoles()
	}

	payload, err := llm.Decode[rolesPayload](raw, schemas.Roles)
	if err != nil {
		e.logger.Warn("role derivation malformed, using fallback roles", slog.Any("err", err))
		return FallbackRoles()
	}

	roles := make([]types.RoleRequirement, 0, len(payload.Roles))
	for _, r := range payload.Roles {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		roles = append(roles, types.RoleRequirement{
			Title:          title,
			Skills:         cleanList(r.Skills),
			Priority:       normalizePriority(r.Priority),
			SearchInternal: r.SearchInternal,
			SearchExternal: r.SearchExternal || r.SearchLinkedIn,
			Reason:         strings.TrimSpace(r.Reason),
		})
	}
	if len(roles) == 0 {
		e.logger.Warn("role derivation returned no roles, using fallback roles")
		return FallbackRoles()
	}

	strategy := strings.TrimSpace(payload.Strategy)
	if strategy == "" {
		strategy = FallbackStrategy
	}
	return RoleAnalysis{Roles: roles, Strategy: strategy}
}

func normalizePriority(p string) types.RolePriority {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "critical":
		return types.PriorityCritical
	case "high", "important":
		return types.PriorityImportant
	default:
		return types.PriorityNiceToHave
	}
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
