// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/yassu-studio/internal/types"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLength bounds section previews
	previewLength = 80
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintRefinement outputs the stage reached by a refinement request and its payload.
func (p *Printer) PrintRefinement(resp *types.IdeaRefinementResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stage: %s\n", resp.Stage))

	if a := resp.Analysis; a != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Problem: %s\n", a.CoreProblem))
		sb.WriteString(fmt.Sprintf("Target:  %s\n", a.IdentifiedTarget))
	}

	if len(resp.ClarifyingQuestions) > 0 {
		sb.WriteString("\nQuestions:\n")
		for _, q := range resp.ClarifyingQuestions {
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", q.ID, q.Question))
			if len(q.Options) > 0 {
				sb.WriteString(fmt.Sprintf("      %s\n", strings.Join(q.Options, " | ")))
			}
		}
	}

	if idea := resp.RefinedIdea; idea != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Title:      %s\n", idea.Title))
		sb.WriteString(fmt.Sprintf("Target:     %s\n", idea.TargetUser))
		sb.WriteString(fmt.Sprintf("Confidence: %d%%\n", idea.Confidence))
		if len(idea.SuggestedTags) > 0 {
			sb.WriteString(fmt.Sprintf("Tags:       %s\n", strings.Join(idea.SuggestedTags, ", ")))
		}
	}

	p.printBox("IDEA REFINEMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs ranked candidates and outreach suggestions.
func (p *Printer) PrintMatches(result *types.MatchingResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Strategy != "" {
		sb.WriteString(fmt.Sprintf("Strategy: %s\n\n", result.Strategy))
	}

	if len(result.Matches) == 0 {
		sb.WriteString("No internal matches\n")
	} else {
		sb.WriteString(fmt.Sprintf("Matches: %d\n", len(result.Matches)))
		count := min(len(result.Matches), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := result.Matches[i]
			sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, nameOrID(m), m.Role))
			sb.WriteString(fmt.Sprintf("    Score: %.2f\n", m.MatchScore))
			if len(m.Skills) > 0 {
				sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(m.Skills, ", ")))
			}
		}
		if len(result.Matches) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Matches)-maxItemsToShow))
		}
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nOutreach:\n")
		for _, s := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", s.Title, s.Priority))
			sb.WriteString(fmt.Sprintf("    %s\n", s.SearchQuery))
		}
	}

	p.printBox("TEAM MATCHING", strings.TrimSuffix(sb.String(), "\n"))
}

func nameOrID(m types.CandidateMatch) string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("user %d", m.UserID)
}

// PrintPlan outputs the run identifiers and a preview of each section.
func (p *Printer) PrintPlan(result *workflows.PlanResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.RunID != uuid.Nil {
		sb.WriteString(fmt.Sprintf("Run:      %s\n", result.RunID))
	} else {
		sb.WriteString("Run:      not recorded\n")
	}
	if result.Artifact != nil {
		sb.WriteString(fmt.Sprintf("Artifact: %s (v%d)\n", result.Artifact.ID, result.Artifact.Version))
	}
	sb.WriteString("\n")
	sb.WriteString(sectionPreview(workflows.ExtractSections(result.Content)))

	p.printBox("BUSINESS PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWorkflow outputs the text of a single workflow run.
func (p *Printer) PrintWorkflow(result *workflows.WorkflowResult) {
	if result == nil {
		return
	}
	p.printBox(strings.ToUpper(result.Label), result.Content)
}

// PrintSections outputs a preview of each section in canonical order.
func (p *Printer) PrintSections(sections map[types.WorkflowType]string) {
	if len(sections) == 0 {
		return
	}
	p.printBox("PLAN SECTIONS", strings.TrimSuffix(sectionPreview(sections), "\n"))
}

func sectionPreview(sections map[types.WorkflowType]string) string {
	var sb strings.Builder
	for _, def := range workflows.Definitions() {
		body, ok := sections[def.Type]
		if !ok {
			continue
		}
		first, _, _ := strings.Cut(strings.TrimSpace(body), "\n")
		sb.WriteString(fmt.Sprintf("%s\n", def.Label))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(first, previewLength)))
	}
	return sb.String()
}
