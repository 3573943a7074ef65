// Package server provides the HTTP REST API for idea refinement, business plans and matching.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/yassu-studio/internal/db"
	"github.com/jonathan/yassu-studio/internal/server/middleware"
	"github.com/jonathan/yassu-studio/internal/server/ratelimit"
	"github.com/jonathan/yassu-studio/internal/types"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

// DefaultPoolLimit bounds the candidate pool loaded for one matching request.
const DefaultPoolLimit = 200

// Store is the persistence the API reads and writes through.
type Store interface {
	workflows.Store
	GetWorkflowRun(ctx context.Context, runID uuid.UUID) (*types.WorkflowRun, error)
	GetArtifactByRunID(ctx context.Context, runID uuid.UUID) (*types.WorkflowArtifact, error)
	ListCandidatePool(ctx context.Context, excludeUserID, limit int) ([]types.Candidate, error)
	Ping(ctx context.Context) error
}

var _ Store = (*db.DB)(nil)

// Refiner refines raw ideas.
type Refiner interface {
	Refine(ctx context.Context, input types.RawIdeaInput) (*types.IdeaRefinementResponse, error)
}

// Planner generates business plans and runs single workflows.
type Planner interface {
	GenerateBusinessPlan(ctx context.Context, ideaID uuid.UUID) (*workflows.PlanResult, error)
	RunWorkflow(ctx context.Context, ideaID uuid.UUID, workflowType types.WorkflowType, inputs map[string]string) (*workflows.WorkflowResult, error)
}

var _ Planner = (*workflows.Orchestrator)(nil)

// Matcher matches candidates to an idea.
type Matcher interface {
	GenerateMatches(ctx context.Context, needs types.MatchingNeeds, pool []types.Candidate) (*types.MatchingResult, error)
}

// Config holds server configuration
type Config struct {
	Port int
	// RateLimit nil disables rate limiting.
	RateLimit *ratelimit.Config
	// PoolLimit caps the candidate pool per matching request.
	PoolLimit int
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Store   Store
	Refiner Refiner
	Planner Planner
	Matcher Matcher
	// Sections is created with the default size when nil.
	Sections *workflows.SectionCache
	Logger   *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	refiner     Refiner
	planner     Planner
	matcher     Matcher
	sections    *workflows.SectionCache
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger
	poolLimit   int
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Refiner == nil || deps.Planner == nil || deps.Matcher == nil {
		return nil, fmt.Errorf("server requires a store, refiner, planner and matcher")
	}

	s := &Server{
		store:     deps.Store,
		refiner:   deps.Refiner,
		planner:   deps.Planner,
		matcher:   deps.Matcher,
		sections:  deps.Sections,
		logger:    deps.Logger,
		poolLimit: cfg.PoolLimit,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.poolLimit <= 0 {
		s.poolLimit = DefaultPoolLimit
	}
	if s.sections == nil {
		sections, err := workflows.NewSectionCache(workflows.DefaultCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create section cache: %w", err)
		}
		s.sections = sections
	}

	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = &ratelimit.Config{Enabled: false}
	}
	s.rateLimiter = ratelimit.NewLimiter(rateCfg)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for business plan generation
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /ideas/refine", s.handleRefine)
	mux.HandleFunc("POST /ideas/{id}/business-plan", s.handleBusinessPlan)
	mux.HandleFunc("POST /ideas/{id}/workflows/{type}", s.handleWorkflow)
	mux.HandleFunc("POST /ideas/{id}/matches", s.handleMatches)

	mux.HandleFunc("GET /workflow-runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /workflow-runs/{id}/artifact", s.handleGetArtifact)
	mux.HandleFunc("GET /workflow-runs/{id}/artifact.html", s.handleGetArtifactHTML)

	return middleware.RequestID(s.withRateLimit(s.withLogging(s.withCORS(mux))))
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetRequestID(r.Context())))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", slog.Any("err", err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.Any("err", err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code and writes it.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.Any("err", err))
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		slog.String("client", extractClientID(r)),
		slog.String("path", r.URL.Path),
		slog.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
