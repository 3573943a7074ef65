package workflows

import (
	"strings"

	"github.com/jonathan/yassu-studio/internal/types"
)

// ExtractSections splits a compiled plan into its workflow sections.
// Each known header is located in canonical order; a section runs to the next known
// header that follows it. A missing header yields an empty section.
func ExtractSections(content string) map[types.WorkflowType]string {
	sections := make(map[types.WorkflowType]string, len(definitions))

	type span struct{ start, bodyStart int }
	spans := make([]span, len(definitions))
	from := 0
	for i, def := range definitions {
		idx := findHeader(content, def.Label, from)
		if idx < 0 {
			spans[i] = span{-1, -1}
			continue
		}
		bodyStart := idx + len("## "+def.Label)
		spans[i] = span{idx, bodyStart}
		from = bodyStart
	}

	for i, def := range definitions {
		if spans[i].start < 0 {
			sections[def.Type] = ""
			continue
		}
		end := len(content)
		for j := i + 1; j < len(definitions); j++ {
			if spans[j].start >= 0 {
				end = spans[j].start
				break
			}
		}
		sections[def.Type] = trimSection(content[spans[i].bodyStart:end])
	}

	return sections
}

// findHeader returns the index of a "## <label>" line at or after from, or -1.
func findHeader(content, label string, from int) int {
	header := "## " + label
	for from <= len(content) {
		rel := strings.Index(content[from:], header)
		if rel < 0 {
			return -1
		}
		idx := from + rel
		end := idx + len(header)
		atLineStart := idx == 0 || content[idx-1] == '\n'
		atLineEnd := end == len(content) || content[end] == '\n' || content[end] == '\r'
		if atLineStart && atLineEnd {
			return idx
		}
		from = end
	}
	return -1
}

func trimSection(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, sectionRule)
	return strings.TrimSpace(s)
}
