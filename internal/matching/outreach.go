package matching

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/prompts"
	"github.com/jonathan/yassu-studio/internal/schemas"
	"github.com/jonathan/yassu-studio/internal/types"
)

type outreachPayload struct {
	SearchQuery        string `json:"searchQuery"`
	ProfileDescription string `json:"profileDescription"`
	OutreachTemplate   string `json:"outreachTemplate"`
}

// suggestions drafts one suggestion per externally searched role, sequentially.
// With no such role it returns exactly one generic advisor suggestion.
func (e *Engine) suggestions(ctx context.Context, needs types.MatchingNeeds, roles []types.RoleRequirement) []types.OutreachSuggestion {
	var out []types.OutreachSuggestion
	for _, role := range roles {
		if !role.SearchExternal {
			continue
		}
		out = append(out, e.suggestionForRole(ctx, needs, role))
	}
	if len(out) == 0 {
		out = append(out, e.advisorSuggestion(needs))
	}
	return out
}

func (e *Engine) suggestionForRole(ctx context.Context, needs types.MatchingNeeds, role types.RoleRequirement) types.OutreachSuggestion {
	logger := e.logger.With(slog.String("role", role.Title))
	industry := Industry(needs)

	tmpl := prompts.MustGet(prompts.MatchingFile, "outreach")
	prompt := tmpl.Render(map[string]string{
		"Role":      role.Title,
		"Skills":    strings.Join(role.Skills, ", "),
		"IdeaTitle": needs.IdeaTitle,
		"Industry":  industry,
	})

	raw, err := e.client.GenerateJSON(ctx, tmpl.System, prompt, e.outreachTier)
	if err != nil {
		logger.Warn("outreach drafting failed, using fallback suggestion", slog.Any("err", err))
		return e.fallbackSuggestion(needs, role)
	}

	payload, err := llm.Decode[outreachPayload](raw, schemas.Outreach)
	if err != nil {
		logger.Warn("outreach draft malformed, using fallback suggestion", slog.Any("err", err))
		return e.fallbackSuggestion(needs, role)
	}

	query := strings.TrimSpace(payload.SearchQuery)
	description := strings.TrimSpace(payload.ProfileDescription)
	if description == "" {
		description = fmt.Sprintf("Looking for %s with experience in %s", role.Title, industry)
	}
	template := strings.TrimSpace(payload.OutreachTemplate)
	if template == "" {
		template = defaultOutreach(needs, role)
	}

	return types.OutreachSuggestion{
		ID:                "outreach-" + e.newID(),
		Role:              role.Title,
		Title:             fmt.Sprintf("%s - %s Expert", role.Title, industry),
		Description:       description,
		SearchQuery:       query,
		ExternalSearchURL: SearchURL(e.searchBaseURL, query),
		OutreachTemplate:  template,
		Priority:          suggestionPriority(role.Priority),
	}
}

// fallbackSuggestion is built from the role alone and always has medium priority.
func (e *Engine) fallbackSuggestion(needs types.MatchingNeeds, role types.RoleRequirement) types.OutreachSuggestion {
	industry := Industry(needs)
	skills := role.Skills
	if len(skills) > 2 {
		skills = skills[:2]
	}
	keywords := strings.Join(skills, " ")
	if keywords == "" {
		keywords = role.Title
	}

	return types.OutreachSuggestion{
		ID:                "outreach-" + e.newID(),
		Role:              role.Title,
		Title:             fmt.Sprintf("%s - %s", role.Title, industry),
		Description:       fmt.Sprintf("Looking for %s with %s experience", role.Title, keywords),
		SearchQuery:       fmt.Sprintf("site:linkedin.com %q %q", industry, keywords),
		ExternalSearchURL: SearchURL(e.searchBaseURL, industry+" "+keywords),
		OutreachTemplate:  defaultOutreach(needs, role),
		Priority:          types.SuggestionMedium,
	}
}

func (e *Engine) advisorSuggestion(needs types.MatchingNeeds) types.OutreachSuggestion {
	industry := Industry(needs)
	template := prompts.MustGet(prompts.MatchingFile, "advisor_outreach").Render(map[string]string{
		"IdeaTitle":    needs.IdeaTitle,
		"Solution":     solutionPhrase(needs.IdeaSolution),
		"Industry":     industry,
		"KeyChallenge": KeyChallenge(needs.IdeaProblem),
	})

	return types.OutreachSuggestion{
		ID:                "outreach-advisor-" + e.newID(),
		Role:              "Advisor",
		Title:             industry + " Industry Advisor",
		Description:       fmt.Sprintf("Experienced professional in %s who can provide strategic guidance", industry),
		SearchQuery:       fmt.Sprintf(`site:linkedin.com %q "advisor" OR "mentor" "startup"`, industry),
		ExternalSearchURL: SearchURL(e.searchBaseURL, industry+" advisor mentor startup"),
		OutreachTemplate:  template,
		Priority:          types.SuggestionMedium,
	}
}

func defaultOutreach(needs types.MatchingNeeds, role types.RoleRequirement) string {
	skill := role.Title
	if len(role.Skills) > 0 {
		skill = role.Skills[0]
	}
	return prompts.MustGet(prompts.MatchingFile, "default_outreach").Render(map[string]string{
		"IdeaTitle":    needs.IdeaTitle,
		"Solution":     solutionPhrase(needs.IdeaSolution),
		"Skill":        skill,
		"KeyChallenge": KeyChallenge(needs.IdeaProblem),
	})
}

func solutionPhrase(solution string) string {
	solution = strings.TrimSuffix(strings.TrimSpace(solution), ".")
	if solution == "" {
		return "exploring how to solve this problem"
	}
	return strings.ToLower(solution)
}

func suggestionPriority(p types.RolePriority) types.SuggestionPriority {
	if p == types.PriorityCritical {
		return types.SuggestionHigh
	}
	return types.SuggestionMedium
}

// SearchURL builds a people-search URL from a free-form query. site: filters,
// double quotes and empty tokens are dropped; the remaining keywords are
// escaped and joined with %20.
func SearchURL(base, query string) string {
	var terms []string
	for _, token := range strings.Fields(query) {
		if strings.HasPrefix(strings.ToLower(token), "site:") {
			continue
		}
		token = strings.ReplaceAll(token, `"`, "")
		if token == "" {
			continue
		}
		terms = append(terms, url.QueryEscape(token))
	}
	return base + strings.Join(terms, "%20")
}
