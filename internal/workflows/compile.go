package workflows

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/yassu-studio/internal/types"
)

const (
	sectionRule  = "---"
	notAvailable = "Not available"
	dateLayout   = "January 2, 2006"
)

// Compile assembles the business plan markdown. results is indexed like Definitions();
// every workflow gets a "## <label>" header even when its result is an error text.
func Compile(idea *types.Idea, results []string, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Business Plan: %s\n\n", demoteHeaders(idea.Title)))
	sb.WriteString(fmt.Sprintf("*Generated on %s*\n\n", generatedAt.Format(dateLayout)))

	sb.WriteString(fmt.Sprintf("**Problem:** %s\n\n", demoteHeaders(orDefault(idea.Problem, "Not provided"))))
	sb.WriteString(fmt.Sprintf("**Solution:** %s\n\n", demoteHeaders(orDefault(idea.Solution, "See Product & MVP Design section"))))
	sb.WriteString(fmt.Sprintf("**Target User:** %s\n\n", demoteHeaders(orDefault(idea.TargetUser, "See Idea-Founder Fit section"))))
	sb.WriteString(sectionRule + "\n\n")

	for i, def := range definitions {
		content := ""
		if i < len(results) {
			content = demoteHeaders(strings.TrimSpace(results[i]))
		}
		if content == "" {
			content = notAvailable
		}
		sb.WriteString("## " + def.Label + "\n\n")
		sb.WriteString(content)
		sb.WriteString("\n\n" + sectionRule + "\n\n")
	}

	return sb.String()
}

// demoteHeaders rewrites any line that would parse as a section header to a "###" header,
// so embedded text cannot move section boundaries.
func demoteHeaders(text string) string {
	if !strings.Contains(text, "## ") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isSectionHeader(strings.TrimRight(line, "\r")) {
			lines[i] = "#" + line
		}
	}
	return strings.Join(lines, "\n")
}

func isSectionHeader(line string) bool {
	label, ok := strings.CutPrefix(line, "## ")
	if !ok {
		return false
	}
	for _, def := range definitions {
		if def.Label == label {
			return true
		}
	}
	return false
}

// Metadata returns the artifact metadata for a compiled plan.
func Metadata(idea *types.Idea) types.ArtifactMetadata {
	return types.ArtifactMetadata{
		Type:      types.ArtifactTypeBusinessPlan,
		Sections:  Types(),
		IdeaTitle: idea.Title,
	}
}

// failureText is substituted for a workflow that failed.
func failureText(label string) string {
	return "Error generating " + label
}
