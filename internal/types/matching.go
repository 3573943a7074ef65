package types

// RolePriority ranks how urgently a role must be filled.
type RolePriority string

// RolePriority values
const (
	PriorityCritical   RolePriority = "critical"
	PriorityImportant  RolePriority = "important"
	PriorityNiceToHave RolePriority = "nice-to-have"
)

// SuggestionPriority ranks an outreach suggestion.
type SuggestionPriority string

// SuggestionPriority values
const (
	SuggestionHigh   SuggestionPriority = "high"
	SuggestionMedium SuggestionPriority = "medium"
	SuggestionLow    SuggestionPriority = "low"
)

// MatchingNeeds describes what an idea needs from collaborators.
type MatchingNeeds struct {
	IdeaTitle    string   `json:"idea_title" validate:"required"`
	IdeaProblem  string   `json:"idea_problem"`
	IdeaSolution string   `json:"idea_solution"`
	TargetUser   string   `json:"target_user"`
	Stage        string   `json:"stage"`
	RolesNeeded  []string `json:"roles_needed"`
}

// RoleRequirement is a role derived for an idea.
type RoleRequirement struct {
	Title          string       `json:"title"`
	Skills         []string     `json:"skills"`
	Priority       RolePriority `json:"priority"`
	SearchInternal bool         `json:"search_internal"`
	SearchExternal bool         `json:"search_external"`
	Reason         string       `json:"reason"`
}

// CandidateProfile holds the profile signals used for scoring.
type CandidateProfile struct {
	University string   `json:"university,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	IdeaCount  int      `json:"idea_count"`
}

// Candidate is one entry of the candidate pool. A nil Profile means the user has no profile.
type Candidate struct {
	UserID  int               `json:"user_id"`
	Name    string            `json:"name,omitempty"`
	Email   string            `json:"email,omitempty"`
	Profile *CandidateProfile `json:"profile,omitempty"`
}

// CandidateMatch is a ranked internal match.
type CandidateMatch struct {
	UserID      int      `json:"user_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	University  string   `json:"university"`
	Skills      []string `json:"skills"`
	Bio         string   `json:"bio"`
	MatchScore  float64  `json:"match_score"`
	MatchReason string   `json:"match_reason"`
	Role        string   `json:"role"`
}

// OutreachSuggestion proposes an external search and message for one role.
type OutreachSuggestion struct {
	ID                string             `json:"id"`
	Role              string             `json:"role"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	SearchQuery       string             `json:"search_query"`
	ExternalSearchURL string             `json:"external_search_url"`
	OutreachTemplate  string             `json:"outreach_template"`
	Priority          SuggestionPriority `json:"priority"`
}

// MatchingResult is the output of one matching request.
type MatchingResult struct {
	Matches     []CandidateMatch     `json:"matches"`
	Suggestions []OutreachSuggestion `json:"suggestions"`
	Strategy    string               `json:"strategy"`
}
