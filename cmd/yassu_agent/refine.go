package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/yassu-studio/internal/observability"
	"github.com/jonathan/yassu-studio/internal/types"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Refine a raw idea into a structured idea",
	Long: `Run the refinement state machine on a raw idea. Without answers the idea is analyzed and
clarifying questions may be returned; pass answers with --answer id=value to produce the refined idea.`,
	RunE: runRefine,
}

var (
	refineIdea    string
	refineInFile  string
	refineAnswers map[string]string
	refineJSON    bool
)

func init() {
	refineCmd.Flags().StringVar(&refineIdea, "idea", "", "Raw idea text")
	refineCmd.Flags().StringVarP(&refineInFile, "in", "i", "", "Path to a file containing the raw idea")
	refineCmd.Flags().StringToStringVar(&refineAnswers, "answer", nil, "Clarification answer as question_id=value (repeatable)")
	refineCmd.Flags().BoolVar(&refineJSON, "json", false, "Print the raw JSON response")
	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, _ []string) error {
	input, err := readIdeaInput(refineIdea, refineInFile, refineAnswers)
	if err != nil {
		return err
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

	resp, err := newRefiner(client).Refine(ctx, input)
	if err != nil {
		return fmt.Errorf("refinement failed: %w", err)
	}

	if refineJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRefinement(resp)
	return nil
}

// readIdeaInput builds the refinement input from exactly one of an inline idea or a file.
func readIdeaInput(idea, path string, answers map[string]string) (types.RawIdeaInput, error) {
	if idea != "" && path != "" {
		return types.RawIdeaInput{}, fmt.Errorf("cannot use --idea with --in")
	}
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return types.RawIdeaInput{}, fmt.Errorf("failed to read input file: %w", err)
		}
		idea = string(content)
	}
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return types.RawIdeaInput{}, fmt.Errorf("either --idea or --in must be provided")
	}
	return types.RawIdeaInput{RawIdea: idea, Clarifications: answers}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
