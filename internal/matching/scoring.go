package matching

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/yassu-studio/internal/types"
)

// Scores are computed in integer tenths so that thresholds compare exactly.
const (
	pointsProfile    = 2
	pointsSkills     = 3
	pointsBio        = 2
	pointsUniversity = 1
	pointsIdeas      = 2
	pointsMax        = 10

	// minBioLength is the bio length a candidate must exceed to earn the bio signal.
	minBioLength = 50
	// keepAbovePoints drops candidates scoring 0.5 or less.
	keepAbovePoints = 5
	reasonSkills    = 3
)

// Points returns the candidate's score in tenths, in [0, 10].
func Points(c types.Candidate) int {
	p := c.Profile
	if p == nil {
		return 0
	}

	points := pointsProfile
	if len(cleanList(p.Skills)) > 0 {
		points += pointsSkills
	}
	if utf8.RuneCountInString(p.Bio) > minBioLength {
		points += pointsBio
	}
	if strings.TrimSpace(p.University) != "" {
		points += pointsUniversity
	}
	if p.IdeaCount > 0 {
		points += pointsIdeas
	}
	return min(points, pointsMax)
}

// Score returns the candidate's match score in [0, 1].
func Score(c types.Candidate) float64 {
	return float64(Points(c)) / pointsMax
}

// RankCandidates scores the pool, keeps candidates above 0.5, sorts by score descending
// (ties keep pool order) and truncates to limit.
func RankCandidates(pool []types.Candidate, roles []types.RoleRequirement, limit int) []types.CandidateMatch {
	role := "Team Member"
	if len(roles) > 0 {
		role = roles[0].Title
	}

	type scored struct {
		points int
		match  types.CandidateMatch
	}

	var kept []scored
	for _, c := range pool {
		points := Points(c)
		if points <= keepAbovePoints {
			continue
		}
		kept = append(kept, scored{points: points, match: buildMatch(c, points, role)})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].points > kept[j].points
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	matches := make([]types.CandidateMatch, len(kept))
	for i, k := range kept {
		matches[i] = k.match
	}
	return matches
}

func buildMatch(c types.Candidate, points int, role string) types.CandidateMatch {
	p := c.Profile
	match := types.CandidateMatch{
		UserID:      c.UserID,
		Name:        strings.TrimSpace(c.Name),
		Email:       c.Email,
		University:  strings.TrimSpace(p.University),
		Skills:      cleanList(p.Skills),
		Bio:         p.Bio,
		MatchScore:  float64(points) / pointsMax,
		MatchReason: matchReason(*p),
		Role:        role,
	}
	if match.Name == "" {
		match.Name = "Anonymous"
	}
	if match.University == "" {
		match.University = "Unknown"
	}
	return match
}

func matchReason(p types.CandidateProfile) string {
	var reasons []string

	if skills := cleanList(p.Skills); len(skills) > 0 {
		if len(skills) > reasonSkills {
			skills = skills[:reasonSkills]
		}
		reasons = append(reasons, "Has relevant skills: "+strings.Join(skills, ", "))
	}
	if uni := strings.TrimSpace(p.University); uni != "" {
		reasons = append(reasons, "Attends "+uni)
	}
	if p.IdeaCount > 0 {
		reasons = append(reasons, fmt.Sprintf("Active on platform with %d ideas", p.IdeaCount))
	}

	if len(reasons) == 0 {
		return "Potential team member"
	}
	return strings.Join(reasons, ". ")
}
