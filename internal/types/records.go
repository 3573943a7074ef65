package types

import "github.com/google/uuid"

// Idea is a persisted idea as loaded by the orchestrator.
type Idea struct {
	ID               uuid.UUID `json:"id"`
	CreatedBy        int       `json:"created_by"`
	Title            string    `json:"title"`
	Problem          string    `json:"problem"`
	Solution         string    `json:"solution,omitempty"`
	TargetUser       string    `json:"target_user,omitempty"`
	WhyNow           string    `json:"why_now,omitempty"`
	Assumptions      string    `json:"assumptions,omitempty"`
	DesiredTeammates string    `json:"desired_teammates,omitempty"`
	Stage            string    `json:"stage,omitempty"`
}

// Profile is a founder profile used as optional workflow context.
type Profile struct {
	UserID     int      `json:"user_id"`
	FullName   string   `json:"full_name,omitempty"`
	Email      string   `json:"email,omitempty"`
	University string   `json:"university,omitempty"`
	Major      string   `json:"major,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Bio        string   `json:"bio,omitempty"`
}
