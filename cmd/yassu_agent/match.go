package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/yassu-studio/internal/matching"
	"github.com/jonathan/yassu-studio/internal/observability"
	"github.com/jonathan/yassu-studio/internal/server"
	"github.com/jonathan/yassu-studio/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find teammates for a stored idea",
	Long:  "Derive the roles a stored idea needs, rank platform users against them and draft external outreach.",
	RunE:  runMatch,
}

var (
	matchIdeaID string
	matchStage  string
	matchRoles  []string
	matchLimit  int
	matchJSON   bool
)

func init() {
	matchCmd.Flags().StringVar(&matchIdeaID, "idea-id", "", "ID of the stored idea (required)")
	matchCmd.Flags().StringVar(&matchStage, "stage", "", "Idea stage (defaults to the stored stage)")
	matchCmd.Flags().StringSliceVar(&matchRoles, "roles", nil, "Roles the founder is looking for")
	matchCmd.Flags().IntVar(&matchLimit, "pool-limit", server.DefaultPoolLimit, "Maximum number of candidates loaded")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Print the raw JSON result")
	_ = matchCmd.MarkFlagRequired("idea-id")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ideaID, err := uuid.Parse(matchIdeaID)
	if err != nil {
		return fmt.Errorf("invalid idea ID format: %w", err)
	}
	req := types.MatchRequest{Stage: matchStage, RolesNeeded: matchRoles}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid match request: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	idea, err := store.GetIdea(ctx, ideaID)
	if err != nil {
		return fmt.Errorf("failed to load idea: %w", err)
	}
	if idea == nil {
		return fmt.Errorf("idea not found: %s", ideaID)
	}

	pool, err := store.ListCandidatePool(ctx, idea.CreatedBy, matchLimit)
	if err != nil {
		return fmt.Errorf("failed to load candidate pool: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := newMatcher(client, cfg).GenerateMatches(ctx, matching.NeedsForIdea(idea, req.Stage, req.RolesNeeded), pool)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if matchJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMatches(result)
	return nil
}
