package server

import (
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/jonathan/yassu-studio/internal/types"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

// ArtifactResponse represents the response for GET /workflow-runs/{id}/artifact
type ArtifactResponse struct {
	ID            string                        `json:"id"`
	WorkflowRunID string                        `json:"workflow_run_id"`
	Version       int                           `json:"version"`
	Content       string                        `json:"content"`
	Metadata      types.ArtifactMetadata        `json:"metadata"`
	Sections      map[types.WorkflowType]string `json:"sections"`
	CreatedAt     string                        `json:"created_at"`
}

// handleGetRun returns the status of a workflow run for polling
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := pathUUID(r, "id", "run ID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	run, err := s.store.GetWorkflowRun(r.Context(), runID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if run == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "workflow run", ID: runID.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// handleGetArtifact returns the compiled plan of a run with its parsed sections
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	artifact, ok := s.loadArtifact(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, ArtifactResponse{
		ID:            artifact.ID.String(),
		WorkflowRunID: artifact.WorkflowRunID.String(),
		Version:       artifact.Version,
		Content:       artifact.Content,
		Metadata:      artifact.Metadata,
		Sections:      s.sections.Sections(artifact),
		CreatedAt:     artifact.CreatedAt.Format(time.RFC3339),
	})
}

// handleGetArtifactHTML renders the compiled plan as a standalone HTML page
func (s *Server) handleGetArtifactHTML(w http.ResponseWriter, r *http.Request) {
	artifact, ok := s.loadArtifact(w, r)
	if !ok {
		return
	}

	body, err := workflows.RenderHTML(artifact.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	title := artifact.Metadata.IdeaTitle
	if title == "" {
		title = "Business Plan"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), body)
}

func (s *Server) loadArtifact(w http.ResponseWriter, r *http.Request) (*types.WorkflowArtifact, bool) {
	runID, err := pathUUID(r, "id", "run ID")
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}

	artifact, err := s.store.GetArtifactByRunID(r.Context(), runID)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	if artifact == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "artifact for run", ID: runID.String()})
		return nil, false
	}
	return artifact, true
}
