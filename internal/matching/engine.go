// Package matching ranks platform users against an idea's needs and drafts external outreach.
//
// Role derivation and outreach drafting use the completion client and fall back to
// deterministic output on failure. Candidate scoring never calls the model.
package matching

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/types"
)

// Defaults for Options.
const (
	DefaultMaxMatches    = 10
	DefaultSearchBaseURL = "https://www.linkedin.com/search/results/people/?keywords="
)

// Options configures an Engine.
type Options struct {
	// MaxMatches truncates the ranked matches.
	MaxMatches int
	// SearchBaseURL is prefixed to the encoded search keywords.
	SearchBaseURL string
	// RoleTier is used for role derivation; OutreachTier for outreach drafts.
	RoleTier     llm.ModelTier
	OutreachTier llm.ModelTier
	Logger       *slog.Logger
	// NewID generates suggestion IDs; defaults to random UUIDs.
	NewID func() string
}

// Engine produces MatchingResults.
type Engine struct {
	client        llm.Client
	logger        *slog.Logger
	maxMatches    int
	searchBaseURL string
	roleTier      llm.ModelTier
	outreachTier  llm.ModelTier
	newID         func() string
}

// NewEngine creates an Engine backed by client.
func NewEngine(client llm.Client, opts Options) *Engine {
	e := &Engine{
		client:        client,
		logger:        opts.Logger,
		maxMatches:    opts.MaxMatches,
		searchBaseURL: opts.SearchBaseURL,
		roleTier:      opts.RoleTier,
		outreachTier:  opts.OutreachTier,
		newID:         opts.NewID,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.maxMatches <= 0 {
		e.maxMatches = DefaultMaxMatches
	}
	if e.searchBaseURL == "" {
		e.searchBaseURL = DefaultSearchBaseURL
	}
	if e.roleTier == "" {
		e.roleTier = llm.TierStandard
	}
	if e.outreachTier == "" {
		e.outreachTier = llm.TierLite
	}
	if e.newID == nil {
		e.newID = func() string { return uuid.NewString() }
	}
	return e
}

// GenerateMatches derives roles, ranks the candidate pool and drafts outreach suggestions.
// Completion failures never abort the request; only invalid needs return an error.
func (e *Engine) GenerateMatches(ctx context.Context, needs types.MatchingNeeds, pool []types.Candidate) (*types.MatchingResult, error) {
	if err := needs.Validate(); err != nil {
		return nil, &ValidationError{Message: "idea title is required", Cause: err}
	}

	analysis := e.deriveRoles(ctx, needs)
	matches := RankCandidates(pool, analysis.Roles, e.maxMatches)
	suggestions := e.suggestions(ctx, needs, analysis.Roles)

	e.logger.Info("matching complete",
		slog.String("idea", needs.IdeaTitle),
		slog.Int("roles", len(analysis.Roles)),
		slog.Int("pool", len(pool)),
		slog.Int("matches", len(matches)),
		slog.Int("suggestions", len(suggestions)))

	return &types.MatchingResult{
		Matches:     matches,
		Suggestions: suggestions,
		Strategy:    analysis.Strategy,
	}, nil
}
