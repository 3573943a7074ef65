package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error)
	calls            []string
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	return "", errors.New("not used")
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	m.calls = append(m.calls, prompt)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, system, prompt, tier)
	}
	return "", errors.New("no response configured")
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func isRolePrompt(prompt string) bool {
	return strings.Contains(prompt, "determine what team members are needed")
}

func fixedID() string { return "fixed" }

func campusLaundry() types.MatchingNeeds {
	return types.MatchingNeeds{
		IdeaTitle:    "Campus Laundry",
		IdeaProblem:  "students wait too long for machines",
		IdeaSolution: "IoT-based queue app",
		RolesNeeded:  []string{"Technical Co-Founder"},
	}
}

func TestGenerateMatches_CampusLaundry(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
			if isRolePrompt(prompt) {
				return `{"roles":[{"title":"Technical Co-Founder","skills":["IoT","Mobile"],"priority":"critical","searchInternal":true,"searchExternal":false,"reason":"Build the app"}],"strategy":"Find a technical co-founder"}`, nil
			}
			return "", errors.New("unexpected outreach call")
		},
	}

	pool := []types.Candidate{
		{UserID: 1, Name: "Ada", Email: "ada@uni.edu", Profile: &types.CandidateProfile{
			Skills: []string{"IoT", "Go"}, University: "State U", IdeaCount: 2, Bio: "Builds hardware.",
		}},
		{UserID: 2, Name: "Empty", Profile: &types.CandidateProfile{}},
		{UserID: 3, Name: "Skills Only", Profile: &types.CandidateProfile{Skills: []string{"React"}}},
	}

	engine := NewEngine(client, Options{NewID: fixedID})
	result, err := engine.GenerateMatches(context.Background(), campusLaundry(), pool)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	match := result.Matches[0]
	assert.Equal(t, 1, match.UserID)
	assert.Equal(t, 0.8, match.MatchScore)
	assert.Equal(t, "Technical Co-Founder", match.Role)
	assert.Equal(t, "Has relevant skills: IoT, Go. Attends State U. Active on platform with 2 ideas", match.MatchReason)
	assert.Equal(t, "Find a technical co-founder", result.Strategy)

	// No role searches externally, so exactly one advisor suggestion is produced.
	require.Len(t, result.Suggestions, 1)
	advisor := result.Suggestions[0]
	assert.Equal(t, "Advisor", advisor.Role)
	assert.Equal(t, "EdTech Industry Advisor", advisor.Title)
	assert.Equal(t, types.SuggestionMedium, advisor.Priority)
	assert.Equal(t, "outreach-advisor-fixed", advisor.ID)
	assert.Equal(t, DefaultSearchBaseURL+"EdTech%20advisor%20mentor%20startup", advisor.ExternalSearchURL)
	assert.Contains(t, advisor.OutreachTemplate, "building Campus Laundry, iot-based queue app.")
	assert.Contains(t, advisor.OutreachTemplate, "advice on students wait too long for machines?")
	assert.Len(t, client.calls, 1)
}

func TestGenerateMatches_RoleDerivationFallback(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"call fails", "", &llm.CompletionError{Kind: llm.FailureQuotaExceeded}},
		{"malformed", "definitely not json", nil},
		{"zero roles", `{"roles":[],"strategy":"hire"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockLLMClient{
				GenerateJSONFunc: func(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
					return tt.response, tt.err
				},
			}

			result, err := NewEngine(client, Options{}).GenerateMatches(context.Background(), campusLaundry(), []types.Candidate{
				{UserID: 9, Profile: &types.CandidateProfile{Skills: []string{"Go"}, Bio: longBio}},
			})
			require.NoError(t, err)

			assert.Equal(t, FallbackStrategy, result.Strategy)
			require.Len(t, result.Matches, 1)
			assert.Equal(t, "Co-Founder", result.Matches[0].Role)
			require.Len(t, result.Suggestions, 1)
			assert.Equal(t, "Advisor", result.Suggestions[0].Role)
		})
	}
}

func TestGenerateMatches_ExternalSuggestions(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
			switch {
			case isRolePrompt(prompt):
				return `{"roles":[
					{"title":"Hardware Engineer","skills":["IoT","Embedded C"],"priority":"critical","searchLinkedIn":true},
					{"title":"Growth Advisor","skills":["Marketing"],"priority":"important","searchExternal":true},
					{"title":"Designer","skills":["Figma"],"priority":"nice-to-have","searchInternal":true}
				],"strategy":"Hardware first"}`, nil
			case strings.Contains(prompt, "Role: Hardware Engineer"):
				return `{"searchQuery":"site:linkedin.com \"IoT\" embedded engineer","profileDescription":"Firmware veteran","outreachTemplate":"Hi [Name], want to build laundry sensors?"}`, nil
			default:
				return "", &llm.CompletionError{Kind: llm.FailureUnavailable}
			}
		},
	}

	result, err := NewEngine(client, Options{NewID: fixedID}).GenerateMatches(context.Background(), campusLaundry(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	require.Len(t, result.Suggestions, 2)

	drafted := result.Suggestions[0]
	assert.Equal(t, "Hardware Engineer", drafted.Role)
	assert.Equal(t, "Hardware Engineer - EdTech Expert", drafted.Title)
	assert.Equal(t, "Firmware veteran", drafted.Description)
	assert.Equal(t, DefaultSearchBaseURL+"IoT%20embedded%20engineer", drafted.ExternalSearchURL)
	assert.Equal(t, types.SuggestionHigh, drafted.Priority)
	assert.Equal(t, "outreach-fixed", drafted.ID)

	fallback := result.Suggestions[1]
	assert.Equal(t, "Growth Advisor", fallback.Role)
	assert.Equal(t, "Growth Advisor - EdTech", fallback.Title)
	assert.Equal(t, "Looking for Growth Advisor with Marketing experience", fallback.Description)
	assert.Equal(t, `site:linkedin.com "EdTech" "Marketing"`, fallback.SearchQuery)
	assert.Equal(t, DefaultSearchBaseURL+"EdTech%20Marketing", fallback.ExternalSearchURL)
	assert.Contains(t, fallback.OutreachTemplate, "experience with Marketing")
	assert.Equal(t, types.SuggestionMedium, fallback.Priority)

	// One role call plus one outreach call per external role, issued in role order.
	require.Len(t, client.calls, 3)
	assert.Contains(t, client.calls[1], "Role: Hardware Engineer")
	assert.Contains(t, client.calls[2], "Role: Growth Advisor")
}

func TestGenerateMatches_FallbackSuggestionIsMediumPriority(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
			if isRolePrompt(prompt) {
				return `{"roles":[{"title":"Hardware Engineer","skills":["IoT"],"priority":"critical","searchExternal":true}]}`, nil
			}
			return "", &llm.CompletionError{Kind: llm.FailureUnavailable}
		},
	}

	result, err := NewEngine(client, Options{NewID: fixedID}).GenerateMatches(context.Background(), campusLaundry(), nil)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Hardware Engineer", result.Suggestions[0].Role)
	assert.Equal(t, types.SuggestionMedium, result.Suggestions[0].Priority)
}

func TestGenerateMatches_EveryFieldPopulatedUnderFailure(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
			if isRolePrompt(prompt) {
				return `{"roles":[{"title":"CTO","searchExternal":true}]}`, nil
			}
			return "", errors.New("down")
		},
	}

	result, err := NewEngine(client, Options{}).GenerateMatches(context.Background(), types.MatchingNeeds{IdeaTitle: "X"}, nil)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)

	s := result.Suggestions[0]
	for name, value := range map[string]string{
		"id": s.ID, "role": s.Role, "title": s.Title, "description": s.Description,
		"query": s.SearchQuery, "url": s.ExternalSearchURL, "template": s.OutreachTemplate,
		"priority": string(s.Priority),
	} {
		assert.NotEmpty(t, value, name)
	}
	assert.Equal(t, FallbackStrategy, result.Strategy)
	assert.Contains(t, s.OutreachTemplate, "experience with CTO")
}

func TestGenerateMatches_InvalidNeeds(t *testing.T) {
	client := &MockLLMClient{}
	_, err := NewEngine(client, Options{}).GenerateMatches(context.Background(), types.MatchingNeeds{}, nil)
	require.Error(t, err)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Empty(t, client.calls)
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, types.PriorityCritical, normalizePriority("Critical"))
	assert.Equal(t, types.PriorityImportant, normalizePriority("high"))
	assert.Equal(t, types.PriorityImportant, normalizePriority("important"))
	assert.Equal(t, types.PriorityNiceToHave, normalizePriority("medium"))
	assert.Equal(t, types.PriorityNiceToHave, normalizePriority("nice-to-have"))
	assert.Equal(t, types.PriorityNiceToHave, normalizePriority(""))
}
