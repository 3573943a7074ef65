package workflows

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/yassu-studio/internal/types"
)

// buildContext renders the idea and optional founder profile the workflows analyze.
func buildContext(idea *types.Idea, profile *types.Profile) string {
	var sb strings.Builder
	sb.WriteString("## Context\n\n")

	sb.WriteString("### Idea\n")
	sb.WriteString(fmt.Sprintf("**Title**: %s\n", orDefault(idea.Title, "Not provided")))
	sb.WriteString(fmt.Sprintf("**Problem**: %s\n", orDefault(idea.Problem, "Not provided")))
	writeField(&sb, "Solution", idea.Solution)
	writeField(&sb, "Target User", idea.TargetUser)
	writeField(&sb, "Why Now", idea.WhyNow)
	writeField(&sb, "Assumptions", idea.Assumptions)
	writeField(&sb, "Desired Teammates", idea.DesiredTeammates)
	sb.WriteString("\n")

	if profile != nil {
		sb.WriteString("### Founder Context\n")
		writeField(&sb, "University", profile.University)
		writeField(&sb, "Major", profile.Major)
		writeField(&sb, "Skills", strings.Join(profile.Skills, ", "))
		writeField(&sb, "Interests", strings.Join(profile.Interests, ", "))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// additionalInput renders non-empty extra answers as a sorted section appended to the context.
func additionalInput(inputs map[string]string) string {
	keys := make([]string, 0, len(inputs))
	for k, v := range inputs {
		if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("\n\n### Additional Input\n")
	for _, k := range keys {
		writeField(&sb, strings.TrimSpace(k), inputs[k])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeField(sb *strings.Builder, name, value string) {
	if value = strings.TrimSpace(value); value != "" {
		sb.WriteString(fmt.Sprintf("**%s**: %s\n", name, value))
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
