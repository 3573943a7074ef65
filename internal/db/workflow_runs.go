package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/yassu-studio/internal/types"
)

// workflowTypeBusinessPlan is the workflow_runs.workflow_type of a full plan run.
const workflowTypeBusinessPlan = "business_plan"

// CreateWorkflowRun creates a running workflow run for an idea
func (db *DB) CreateWorkflowRun(ctx context.Context, ideaID uuid.UUID, userID int) (*types.WorkflowRun, error) {
	var run types.WorkflowRun
	err := db.pool.QueryRow(ctx,
		`INSERT INTO workflow_runs (idea_id, user_id, workflow_type, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, idea_id, user_id, status, created_at, completed_at`,
		ideaID, userID, workflowTypeBusinessPlan, types.RunStatusRunning,
	).Scan(&run.ID, &run.IdeaID, &run.UserID, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow run: %w", err)
	}
	return &run, nil
}

// UpdateWorkflowRunStatus sets the status and completion time of a run
func (db *DB) UpdateWorkflowRunStatus(ctx context.Context, runID uuid.UUID, status types.RunStatus, completedAt *time.Time) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE workflow_runs SET status = $1, completed_at = $2 WHERE id = $3`,
		status, completedAt, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("workflow run not found: %s", runID)
	}
	return nil
}

// GetWorkflowRun retrieves a run by ID. Returns nil, nil when it does not exist.
func (db *DB) GetWorkflowRun(ctx context.Context, runID uuid.UUID) (*types.WorkflowRun, error) {
	var run types.WorkflowRun
	var ideaID *uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id, idea_id, user_id, COALESCE(status, ''), created_at, completed_at
		 FROM workflow_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &ideaID, &run.UserID, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workflow run: %w", err)
	}
	if ideaID != nil {
		run.IdeaID = *ideaID
	}
	return &run, nil
}

// CreateWorkflowArtifact stores the compiled content of a run as version 1
func (db *DB) CreateWorkflowArtifact(ctx context.Context, runID uuid.UUID, content string, metadata types.ArtifactMetadata) (*types.WorkflowArtifact, error) {
	metadataJSON, err := encodeMetadata(metadata)
	if err != nil {
		return nil, err
	}

	artifact := types.WorkflowArtifact{Content: content, Metadata: metadata}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO workflow_artifacts (workflow_run_id, version, content, metadata)
		 VALUES ($1, 1, $2, $3)
		 RETURNING id, workflow_run_id, version, created_at`,
		runID, content, metadataJSON,
	).Scan(&artifact.ID, &artifact.WorkflowRunID, &artifact.Version, &artifact.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow artifact: %w", err)
	}
	return &artifact, nil
}

// GetArtifactByRunID retrieves the latest artifact of a run. Returns nil, nil when none exists.
func (db *DB) GetArtifactByRunID(ctx context.Context, runID uuid.UUID) (*types.WorkflowArtifact, error) {
	var artifact types.WorkflowArtifact
	var content, metadata *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, workflow_run_id, COALESCE(version, 1), content, metadata, created_at
		 FROM workflow_artifacts WHERE workflow_run_id = $1
		 ORDER BY version DESC, created_at DESC
		 LIMIT 1`,
		runID,
	).Scan(&artifact.ID, &artifact.WorkflowRunID, &artifact.Version, &content, &metadata, &artifact.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workflow artifact: %w", err)
	}

	if content != nil {
		artifact.Content = *content
	}
	if metadata != nil {
		artifact.Metadata = decodeMetadata(*metadata)
	}
	return &artifact, nil
}

func encodeMetadata(m types.ArtifactMetadata) (string, error) {
	if m.Sections == nil {
		m.Sections = []types.WorkflowType{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal artifact metadata: %w", err)
	}
	return string(b), nil
}

// decodeMetadata ignores malformed metadata and returns what could be read.
func decodeMetadata(raw string) types.ArtifactMetadata {
	var m types.ArtifactMetadata
	_ = json.Unmarshal([]byte(raw), &m)
	return m
}
