package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/yassu-studio/internal/matching"
	"github.com/jonathan/yassu-studio/internal/types"
)

const maxBodyBytes = 1 << 20

// PlanResponse represents the response for POST /ideas/{id}/business-plan
type PlanResponse struct {
	RunID      string `json:"run_id,omitempty"`
	ArtifactID string `json:"artifact_id,omitempty"`
	Content    string `json:"content"`
}

// handleRefine runs the refinement state machine on a raw idea
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var input types.RawIdeaInput
	if err := decodeBody(w, r, &input, false); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.refiner.Refine(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleBusinessPlan generates the full business plan for a stored idea.
// Generation continues even if the client disconnects.
func (s *Server) handleBusinessPlan(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id", "idea ID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.planner.GenerateBusinessPlan(context.WithoutCancel(r.Context()), ideaID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := PlanResponse{Content: result.Content}
	if result.RunID != uuid.Nil {
		resp.RunID = result.RunID.String()
	}
	if result.Artifact != nil {
		resp.ArtifactID = result.Artifact.ID.String()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleWorkflow runs one analysis workflow for a stored idea without persisting it.
func (s *Server) handleWorkflow(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id", "idea ID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.WorkflowRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.planner.RunWorkflow(r.Context(), ideaID, types.WorkflowType(r.PathValue("type")), req.Inputs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleMatches ranks platform users against a stored idea and drafts outreach
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id", "idea ID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.MatchRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	idea, err := s.store.GetIdea(ctx, ideaID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if idea == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "idea", ID: ideaID.String()})
		return
	}

	pool, err := s.store.ListCandidatePool(ctx, idea.CreatedBy, s.poolLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.matcher.GenerateMatches(ctx, matching.NeedsForIdea(idea, req.Stage, req.RolesNeeded), pool)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Limit > 0 && len(result.Matches) > req.Limit {
		result.Matches = result.Matches[:req.Limit]
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// decodeBody decodes a JSON body. An empty body is accepted when allowEmpty is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// pathUUID parses a UUID path value.
func pathUUID(r *http.Request, name, label string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, &ErrValidation{Field: name, Message: label + " is required"}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "invalid " + label + " format"}
	}
	return id, nil
}
