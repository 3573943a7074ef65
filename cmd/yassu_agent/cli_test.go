package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/yassu-studio/internal/types"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

// execute runs the root command in-process with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	refineIdea, refineInFile, refineAnswers, refineJSON = "", "", nil, false
	sectionsInFile, sectionsRunID, sectionsHTMLFile, sectionsJSON = "", "", "", false
	planIdeaID, planOutFile, planWorkflow, planInputs = "", "", "", nil

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writePlan(t *testing.T) string {
	t.Helper()
	content := workflows.Compile(&types.Idea{Title: "Campus Laundry", Problem: "waiting"},
		[]string{"Strong founder fit.", "Two competitors."}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadIdeaInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idea.txt")
	require.NoError(t, os.WriteFile(path, []byte("  laundry app for dorms\n"), 0644))

	tests := []struct {
		name    string
		idea    string
		path    string
		want    string
		wantErr string
	}{
		{name: "inline", idea: "laundry app", want: "laundry app"},
		{name: "file", path: path, want: "laundry app for dorms"},
		{name: "both", idea: "x", path: path, wantErr: "cannot use --idea with --in"},
		{name: "neither", wantErr: "either --idea or --in must be provided"},
		{name: "blank", idea: "   ", wantErr: "either --idea or --in must be provided"},
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.txt"), wantErr: "failed to read input file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := readIdeaInput(tt.idea, tt.path, map[string]string{"target_user": "students"})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, input.RawIdea)
			assert.Equal(t, "students", input.Clarifications["target_user"])
		})
	}
}

func TestLoadPlanContent_FlagValidation(t *testing.T) {
	_, err := loadPlanContent("", "")
	assert.ErrorContains(t, err, "either --in or --run-id must be provided")

	_, err = loadPlanContent("plan.md", "00000000-0000-0000-0000-000000000000")
	assert.ErrorContains(t, err, "cannot use --in with --run-id")

	_, err = loadPlanContent("", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid run ID format")
}

func TestSectionsCommand_JSON(t *testing.T) {
	path := writePlan(t)

	output, err := execute(t, "sections", "--in", path, "--json")
	require.NoError(t, err)

	var sections map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &sections))
	assert.Len(t, sections, 8)
	assert.Equal(t, "Strong founder fit.", sections[string(types.WorkflowIdeaFounderFit)])
	assert.Equal(t, "Two competitors.", sections[string(types.WorkflowCompetitiveLandscape)])
	assert.Equal(t, "Not available", sections[string(types.WorkflowFundingPitch)])
}

func TestSectionsCommand_PrinterAndHTML(t *testing.T) {
	path := writePlan(t)
	htmlPath := filepath.Join(t.TempDir(), "plan.html")

	output, err := execute(t, "sections", "--in", path, "--html", htmlPath)
	require.NoError(t, err)
	assert.Contains(t, output, "PLAN SECTIONS")
	assert.Contains(t, output, "Competitive Landscape")

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Business Plan: Campus Laundry</h1>")
	assert.Contains(t, string(html), "<h2>Idea-Founder Fit</h2>")
}

func TestRefineCommand_MissingInput(t *testing.T) {
	_, err := execute(t, "refine")
	assert.ErrorContains(t, err, "either --idea or --in must be provided")
}

func TestPlanCommand_InvalidIdeaID(t *testing.T) {
	_, err := execute(t, "plan", "--idea-id", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid idea ID format")
}

func TestPlanCommand_UnknownWorkflow(t *testing.T) {
	_, err := execute(t, "plan", "--idea-id", "4f1c2a9e-8b3d-4c6e-9f0a-1b2c3d4e5f60", "--workflow", "pricing")
	assert.ErrorContains(t, err, `unknown workflow type "pricing"`)
}

func TestPlanCommand_InputRequiresWorkflow(t *testing.T) {
	_, err := execute(t, "plan", "--idea-id", "4f1c2a9e-8b3d-4c6e-9f0a-1b2c3d4e5f60", "--input", "budget=500")
	assert.ErrorContains(t, err, "--input requires --workflow")
}
