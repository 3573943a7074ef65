package workflows

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/yassu-studio/internal/types"
)

// Store is the persistence the orchestrator writes through.
// Lookups of missing rows return nil, nil.
type Store interface {
	GetIdea(ctx context.Context, id uuid.UUID) (*types.Idea, error)
	GetProfile(ctx context.Context, userID int) (*types.Profile, error)
	CreateWorkflowRun(ctx context.Context, ideaID uuid.UUID, userID int) (*types.WorkflowRun, error)
	UpdateWorkflowRunStatus(ctx context.Context, runID uuid.UUID, status types.RunStatus, completedAt *time.Time) error
	CreateWorkflowArtifact(ctx context.Context, runID uuid.UUID, content string, metadata types.ArtifactMetadata) (*types.WorkflowArtifact, error)
}

// Archiver receives a copy of each compiled business plan.
type Archiver interface {
	Archive(ctx context.Context, runID uuid.UUID, name string, content []byte) error
}

// ArchiveName is the object name used for compiled plans.
const ArchiveName = "business_plan.md"
