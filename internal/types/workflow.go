package types

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowType identifies one of the eight business plan analyses.
type WorkflowType string

// Workflow types in canonical order.
const (
	WorkflowIdeaFounderFit       WorkflowType = "ideaFounderFit"
	WorkflowCompetitiveLandscape WorkflowType = "competitiveLandscape"
	WorkflowRiskAndMoat          WorkflowType = "riskAndMoat"
	WorkflowMVPDesign            WorkflowType = "mvpDesign"
	WorkflowTeamAndTalent        WorkflowType = "teamAndTalent"
	WorkflowLaunchPlan           WorkflowType = "launchPlan"
	WorkflowSchoolAdvantage      WorkflowType = "schoolAdvantage"
	WorkflowFundingPitch         WorkflowType = "fundingPitch"
)

// RunStatus is the lifecycle status of a workflow run.
type RunStatus string

// RunStatus values
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ArtifactTypeBusinessPlan marks an artifact compiled from all eight workflows.
const ArtifactTypeBusinessPlan = "full_business_plan"

// WorkflowRun is one business plan generation.
type WorkflowRun struct {
	ID          uuid.UUID  `json:"id"`
	IdeaID      uuid.UUID  `json:"idea_id"`
	UserID      int        `json:"user_id"`
	Status      RunStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ArtifactMetadata describes a compiled artifact.
type ArtifactMetadata struct {
	Type      string         `json:"type"`
	Sections  []WorkflowType `json:"sections"`
	IdeaTitle string         `json:"idea_title"`
}

// WorkflowArtifact is the immutable compiled output of a run.
type WorkflowArtifact struct {
	ID            uuid.UUID        `json:"id"`
	WorkflowRunID uuid.UUID        `json:"workflow_run_id"`
	Version       int              `json:"version"`
	Content       string           `json:"content"`
	Metadata      ArtifactMetadata `json:"metadata"`
	CreatedAt     time.Time        `json:"created_at"`
}
