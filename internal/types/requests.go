package types

import "github.com/go-playground/validator/v10"

// MatchRequest is the body of a matching request for a stored idea.
type MatchRequest struct {
	Stage       string   `json:"stage" validate:"omitempty,max=64"`
	RolesNeeded []string `json:"roles_needed" validate:"max=10,dive,min=1,max=100"`
	Limit       int      `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// WorkflowRequest is the optional body of a single-workflow request.
type WorkflowRequest struct {
	Inputs map[string]string `json:"inputs,omitempty" validate:"max=20,dive,keys,min=1,max=64,endkeys,max=4000"`
}

// Validate validates the WorkflowRequest using the validator.
func (r *WorkflowRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RawIdeaInput using the validator.
func (in *RawIdeaInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// Validate validates the MatchingNeeds using the validator.
func (n *MatchingNeeds) Validate() error {
	validate := validator.New()
	return validate.Struct(n)
}
