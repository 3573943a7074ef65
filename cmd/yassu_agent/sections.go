package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/yassu-studio/internal/observability"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Split a compiled business plan into its sections",
	Long:  "Parse a compiled business plan, from a markdown file or a stored workflow run, into its eight sections. Optionally render it as HTML.",
	RunE:  runSections,
}

var (
	sectionsInFile   string
	sectionsRunID    string
	sectionsHTMLFile string
	sectionsJSON     bool
)

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsInFile, "in", "i", "", "Path to a compiled business plan markdown file")
	sectionsCmd.Flags().StringVar(&sectionsRunID, "run-id", "", "Workflow run ID to load the artifact from the database")
	sectionsCmd.Flags().StringVar(&sectionsHTMLFile, "html", "", "Also render the plan as HTML to this file")
	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "Print the sections as JSON")
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, _ []string) error {
	content, err := loadPlanContent(sectionsInFile, sectionsRunID)
	if err != nil {
		return err
	}

	if sectionsHTMLFile != "" {
		body, err := workflows.RenderHTML(content)
		if err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
		if err := os.WriteFile(sectionsHTMLFile, []byte(body), 0644); err != nil {
			return fmt.Errorf("failed to write HTML file: %w", err)
		}
	}

	sections := workflows.ExtractSections(content)
	if sectionsJSON {
		return writeJSON(cmd.OutOrStdout(), sections)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSections(sections)
	return nil
}

// loadPlanContent reads the plan from exactly one of a file or a stored run.
func loadPlanContent(path, runID string) (string, error) {
	switch {
	case path != "" && runID != "":
		return "", fmt.Errorf("cannot use --in with --run-id")
	case path != "":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(content), nil
	case runID != "":
		id, err := uuid.Parse(runID)
		if err != nil {
			return "", fmt.Errorf("invalid run ID format: %w", err)
		}
		cfg, err := loadConfig()
		if err != nil {
			return "", err
		}
		ctx := context.Background()
		store, err := openStore(ctx, cfg)
		if err != nil {
			return "", err
		}
		defer store.Close()

		artifact, err := store.GetArtifactByRunID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to load artifact: %w", err)
		}
		if artifact == nil {
			return "", fmt.Errorf("no artifact found for run %s", id)
		}
		return artifact.Content, nil
	default:
		return "", fmt.Errorf("either --in or --run-id must be provided")
	}
}
