// Package refinement turns a free-text startup idea into a structured RefinedIdea.
//
// A request moves through Analyzing, Clarifying and Refined. Analysis and clarification
// degrade to safe defaults when the completion client fails; only the final refinement
// call surfaces errors.
package refinement

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/types"
)

// Options configures an Engine.
type Options struct {
	Logger *slog.Logger
	// AnalysisTier is used for analysis and clarifying questions.
	AnalysisTier llm.ModelTier
	// RefineTier is used for the final structured idea.
	RefineTier llm.ModelTier
}

// Engine runs the refinement stage machine. It performs no persistence.
type Engine struct {
	client       llm.Client
	logger       *slog.Logger
	analysisTier llm.ModelTier
	refineTier   llm.ModelTier
}

// NewEngine creates an Engine backed by client.
func NewEngine(client llm.Client, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	analysisTier := opts.AnalysisTier
	if analysisTier == "" {
		analysisTier = llm.TierLite
	}
	refineTier := opts.RefineTier
	if refineTier == "" {
		refineTier = llm.TierStandard
	}
	return &Engine{
		client:       client,
		logger:       logger,
		analysisTier: analysisTier,
		refineTier:   refineTier,
	}
}

// Refine runs one refinement request. It makes at most two completion calls.
func (e *Engine) Refine(ctx context.Context, input types.RawIdeaInput) (*types.IdeaRefinementResponse, error) {
	input.RawIdea = strings.TrimSpace(input.RawIdea)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	rawIdea := input.RawIdea

	stage := EntryStage(input)
	var analysis *types.IdeaAnalysis

	for {
		e.logger.Debug("refinement stage", slog.String("stage", stage.String()))

		switch stage {
		case StageAnalyzing:
			result, err := e.analyze(ctx, rawIdea)
			if err != nil {
				e.logger.Warn("idea analysis failed, refining directly",
					slog.String("stage", stage.String()), slog.Any("err", err))
				stage = StageRefined
				continue
			}
			analysis = result
			stage = StageAfterAnalysis(*analysis)

		case StageClarifying:
			questions := e.clarify(ctx, rawIdea, analysis)
			return &types.IdeaRefinementResponse{
				Stage: types.StageClarification,
				Analysis: &types.AnalysisSummary{
					CoreProblem:      analysis.CoreProblem,
					IdentifiedTarget: analysis.IdentifiedTarget,
				},
				ClarifyingQuestions: questions,
			}, nil

		default:
			idea, err := e.refine(ctx, rawIdea, input.Clarifications)
			if err != nil {
				return nil, err
			}
			return &types.IdeaRefinementResponse{
				Stage:       types.StageRefined,
				RefinedIdea: idea,
			}, nil
		}
	}
}
