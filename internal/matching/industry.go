package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/yassu-studio/internal/types"
)

// DefaultIndustry is used when no bucket matches.
const DefaultIndustry = "Technology"

const maxChallengeLength = 100

type industryBucket struct {
	name     string
	keywords []string
}

// industryBuckets are evaluated in order; the first match wins.
var industryBuckets = []industryBucket{
	{"Food Delivery", []string{"food", "delivery", "restaurant"}},
	{"EdTech", []string{"education", "learning", "student"}},
	{"HealthTech", []string{"health", "fitness", "wellness"}},
	{"Social", []string{"social", "community", "network"}},
	{"FinTech", []string{"finance", "payment", "money"}},
}

// Industry classifies an idea from its title, problem and solution.
func Industry(needs types.MatchingNeeds) string {
	text := strings.ToLower(needs.IdeaTitle + " " + needs.IdeaProblem + " " + needs.IdeaSolution)
	for _, bucket := range industryBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(text, kw) {
				return bucket.name
			}
		}
	}
	return DefaultIndustry
}

// KeyChallenge returns the first sentence of the problem, truncated to 100 characters.
func KeyChallenge(problem string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(problem), ".")
	first = strings.TrimSpace(first)
	if first == "" {
		return "the challenges we're tackling"
	}
	if utf8.RuneCountInString(first) > maxChallengeLength {
		return string([]rune(first)[:maxChallengeLength]) + "..."
	}
	return first
}
