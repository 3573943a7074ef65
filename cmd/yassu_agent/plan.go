package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/yassu-studio/internal/observability"
	"github.com/jonathan/yassu-studio/internal/types"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the business plan for a stored idea",
	Long: "Run every analysis workflow for a stored idea, compile the business plan and record it as a workflow run artifact.\n" +
		"With --workflow, run only that analysis and print its text without recording a run.",
	RunE:  runPlan,
}

var (
	planIdeaID   string
	planOutFile  string
	planWorkflow string
	planInputs   map[string]string
)

func init() {
	planCmd.Flags().StringVar(&planIdeaID, "idea-id", "", "ID of the stored idea (required)")
	planCmd.Flags().StringVarP(&planOutFile, "out", "o", "", "Write the compiled markdown to this file")
	planCmd.Flags().StringVar(&planWorkflow, "workflow", "", "Run a single workflow type (e.g. launchPlan) instead of the full plan")
	planCmd.Flags().StringToStringVar(&planInputs, "input", nil, "Additional input for --workflow as key=value (repeatable)")
	_ = planCmd.MarkFlagRequired("idea-id")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ideaID, err := uuid.Parse(planIdeaID)
	if err != nil {
		return fmt.Errorf("invalid idea ID format: %w", err)
	}
	workflowType := types.WorkflowType(planWorkflow)
	if planWorkflow != "" && workflows.Label(workflowType) == "" {
		return fmt.Errorf("unknown workflow type %q (valid: %v)", planWorkflow, workflows.Types())
	}
	if planWorkflow == "" && len(planInputs) > 0 {
		return fmt.Errorf("--input requires --workflow")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	archiver, err := newArchiver(cfg)
	if err != nil {
		return err
	}

	orchestrator := newOrchestrator(client, store, archiver, cfg)
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if planWorkflow != "" {
		result, err := orchestrator.RunWorkflow(ctx, ideaID, workflowType, planInputs)
		if err != nil {
			return err
		}
		if err := writeOutFile(result.Content, "workflow output"); err != nil {
			return err
		}
		printer.PrintWorkflow(result)
		return nil
	}

	result, err := orchestrator.GenerateBusinessPlan(ctx, ideaID)
	if err != nil {
		return fmt.Errorf("business plan generation failed: %w", err)
	}

	if err := writeOutFile(result.Content, "business plan"); err != nil {
		return err
	}
	printer.PrintPlan(result)
	return nil
}

func writeOutFile(content, what string) error {
	if planOutFile == "" {
		return nil
	}
	if err := os.WriteFile(planOutFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	slog.Info(what+" written", slog.String("path", planOutFile))
	return nil
}
