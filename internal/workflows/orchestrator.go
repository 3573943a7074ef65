// Package workflows generates business plans by running eight analysis workflows over an idea
// and compiling their outputs into one markdown artifact.
package workflows

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/types"
)

// Defaults for Options.
const (
	DefaultConcurrency = 2
	DefaultBatchDelay  = 500 * time.Millisecond
)

// Options configures an Orchestrator.
type Options struct {
	// Concurrency is the batch size; workflows within a batch run concurrently.
	Concurrency int
	// BatchDelay is the pause between consecutive batches. Negative disables it.
	BatchDelay time.Duration
	// Tier selects the model used for workflow calls.
	Tier     llm.ModelTier
	Archiver Archiver
	Logger   *slog.Logger
	// Now returns the generation timestamp; defaults to time.Now.
	Now func() time.Time
}

// PlanResult is the outcome of one business plan generation.
// RunID is uuid.Nil when the run could not be recorded.
type PlanResult struct {
	RunID    uuid.UUID
	Content  string
	Artifact *types.WorkflowArtifact
}

// WorkflowResult is the output of a single on-demand workflow.
type WorkflowResult struct {
	Type    types.WorkflowType `json:"workflow_type"`
	Label   string             `json:"label"`
	Content string             `json:"content"`
}

// Orchestrator runs the workflows for an idea.
type Orchestrator struct {
	client      llm.Client
	store       Store
	archiver    Archiver
	logger      *slog.Logger
	concurrency int
	batchDelay  time.Duration
	tier        llm.ModelTier
	now         func() time.Time
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(client llm.Client, store Store, opts Options) *Orchestrator {
	o := &Orchestrator{
		client:      client,
		store:       store,
		archiver:    opts.Archiver,
		logger:      opts.Logger,
		concurrency: opts.Concurrency,
		batchDelay:  opts.BatchDelay,
		tier:        opts.Tier,
		now:         opts.Now,
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.concurrency < 1 {
		o.concurrency = DefaultConcurrency
	}
	if o.batchDelay == 0 {
		o.batchDelay = DefaultBatchDelay
	}
	if o.tier == "" {
		o.tier = llm.TierAdvanced
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// GenerateBusinessPlan loads the idea, records a run, executes every workflow and persists
// the compiled artifact. Workflow failures are recorded in the document; persistence
// failures after the idea is loaded are logged and the document is still returned.
func (o *Orchestrator) GenerateBusinessPlan(ctx context.Context, ideaID uuid.UUID) (*PlanResult, error) {
	logger := o.logger.With(slog.String("idea_id", ideaID.String()))

	idea, err := o.store.GetIdea(ctx, ideaID)
	if err != nil {
		return nil, &LoadError{IdeaID: ideaID, Cause: err}
	}
	if idea == nil {
		return nil, &IdeaNotFoundError{IdeaID: ideaID}
	}

	profile, err := o.store.GetProfile(ctx, idea.CreatedBy)
	if err != nil {
		logger.Warn("failed to load founder profile, continuing without it", slog.Any("err", err))
		profile = nil
	}

	result := &PlanResult{}
	run, err := o.store.CreateWorkflowRun(ctx, ideaID, idea.CreatedBy)
	if err != nil {
		logger.Error("failed to create workflow run", slog.Any("err", err))
	} else if run != nil {
		result.RunID = run.ID
		logger = logger.With(slog.String("run_id", run.ID.String()))
	}

	outputs := o.runAll(ctx, logger, buildContext(idea, profile))

	result.Content = Compile(idea, outputs, o.now())

	if result.RunID == uuid.Nil {
		return result, nil
	}

	artifact, err := o.store.CreateWorkflowArtifact(ctx, result.RunID, result.Content, Metadata(idea))
	if err != nil {
		logger.Error("failed to save business plan artifact", slog.Any("err", err))
		o.setStatus(ctx, logger, result.RunID, types.RunStatusFailed)
		return result, nil
	}
	result.Artifact = artifact

	o.setStatus(ctx, logger, result.RunID, types.RunStatusCompleted)
	o.archive(ctx, logger, result)

	logger.Info("business plan generated", slog.String("title", idea.Title))
	return result, nil
}

// runAll executes every workflow in batches of o.concurrency. Each task writes only its own
// slot of the result slice and never returns an error, so one failure cannot cancel siblings.
func (o *Orchestrator) runAll(ctx context.Context, logger *slog.Logger, ideaContext string) []string {
	outputs := make([]string, len(definitions))

	for start := 0; start < len(definitions); start += o.concurrency {
		end := min(start+o.concurrency, len(definitions))

		var g errgroup.Group
		g.SetLimit(o.concurrency)
		for i := start; i < end; i++ {
			def := definitions[i]
			g.Go(func() error {
				outputs[i] = o.runOne(ctx, logger, def, ideaContext)
				return nil
			})
		}
		_ = g.Wait()

		if end < len(definitions) && o.batchDelay > 0 {
			select {
			case <-time.After(o.batchDelay):
			case <-ctx.Done():
			}
		}
	}

	return outputs
}

func (o *Orchestrator) runOne(ctx context.Context, logger *slog.Logger, def Definition, ideaContext string) string {
	logger = logger.With(slog.String("workflow", string(def.Type)))

	content, err := o.generate(ctx, logger, def, ideaContext)
	if err != nil {
		logger.Warn("workflow failed", slog.Any("err", err))
		return failureText(def.Label)
	}
	return content
}

func (o *Orchestrator) generate(ctx context.Context, logger *slog.Logger, def Definition, ideaContext string) (string, error) {
	tmpl, err := def.Template()
	if err != nil {
		return "", fmt.Errorf("workflow prompt missing: %w", err)
	}

	logger.Debug("running workflow")
	return o.client.GenerateContent(ctx, tmpl.System, tmpl.Render(map[string]string{"Context": ideaContext}), o.tier)
}

// RunWorkflow runs one workflow for a stored idea and returns its text. inputs are extra
// founder answers appended to the idea context. Nothing is persisted, and unlike the full plan
// a completion failure is returned as a *WorkflowError.
func (o *Orchestrator) RunWorkflow(ctx context.Context, ideaID uuid.UUID, workflowType types.WorkflowType, inputs map[string]string) (*WorkflowResult, error) {
	def, ok := definitionFor(workflowType)
	if !ok {
		return nil, &UnknownWorkflowError{Type: workflowType}
	}
	logger := o.logger.With(slog.String("idea_id", ideaID.String()), slog.String("workflow", string(def.Type)))

	idea, err := o.store.GetIdea(ctx, ideaID)
	if err != nil {
		return nil, &LoadError{IdeaID: ideaID, Cause: err}
	}
	if idea == nil {
		return nil, &IdeaNotFoundError{IdeaID: ideaID}
	}

	profile, err := o.store.GetProfile(ctx, idea.CreatedBy)
	if err != nil {
		logger.Warn("failed to load founder profile, continuing without it", slog.Any("err", err))
		profile = nil
	}

	ideaContext := buildContext(idea, profile) + additionalInput(inputs)
	content, err := o.generate(ctx, logger, def, ideaContext)
	if err != nil {
		return nil, &WorkflowError{Type: def.Type, Cause: err}
	}

	return &WorkflowResult{Type: def.Type, Label: def.Label, Content: strings.TrimSpace(content)}, nil
}

func (o *Orchestrator) setStatus(ctx context.Context, logger *slog.Logger, runID uuid.UUID, status types.RunStatus) {
	completedAt := o.now()
	if err := o.store.UpdateWorkflowRunStatus(ctx, runID, status, &completedAt); err != nil {
		logger.Error("failed to update workflow run status",
			slog.String("status", string(status)), slog.Any("err", err))
	}
}

func (o *Orchestrator) archive(ctx context.Context, logger *slog.Logger, result *PlanResult) {
	if o.archiver == nil {
		return
	}
	if err := o.archiver.Archive(ctx, result.RunID, ArchiveName, []byte(result.Content)); err != nil {
		logger.Warn("failed to archive business plan", slog.Any("err", err))
	}
}
