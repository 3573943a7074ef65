package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawIdeaInput_Validate(t *testing.T) {
	valid := RawIdeaInput{RawIdea: "laundry machines are always busy"}
	assert.NoError(t, valid.Validate())

	empty := RawIdeaInput{}
	assert.Error(t, empty.Validate())
}

func TestRawIdeaInput_HasClarifications(t *testing.T) {
	assert.False(t, RawIdeaInput{RawIdea: "x"}.HasClarifications())
	assert.False(t, RawIdeaInput{RawIdea: "x", Clarifications: map[string]string{}}.HasClarifications())
	assert.True(t, RawIdeaInput{RawIdea: "x", Clarifications: map[string]string{"target-user": "students"}}.HasClarifications())
}

func TestMatchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request MatchRequest
		wantErr bool
	}{
		{"empty is valid", MatchRequest{}, false},
		{"roles", MatchRequest{Stage: "idea", RolesNeeded: []string{"Technical Co-Founder"}}, false},
		{"empty role", MatchRequest{RolesNeeded: []string{""}}, true},
		{"too many roles", MatchRequest{RolesNeeded: strings.Split("a,b,c,d,e,f,g,h,i,j,k", ",")}, true},
		{"limit too large", MatchRequest{Limit: 1000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuestionKind_IsChoice(t *testing.T) {
	assert.True(t, QuestionSingleChoice.IsChoice())
	assert.True(t, QuestionMultipleChoice.IsChoice())
	assert.False(t, QuestionText.IsChoice())
}

func TestClarifyingQuestion_JSONUsesTypeKey(t *testing.T) {
	q := ClarifyingQuestion{ID: "pain-point", Question: "What hurts?", Kind: QuestionText}

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"text"`)
	assert.Contains(t, string(data), `"required":false`)
	assert.NotContains(t, string(data), "options")
}
