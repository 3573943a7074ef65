package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/yassu-studio/internal/types"
)

// DefaultPoolLimit caps ListCandidatePool when no limit is given.
const DefaultPoolLimit = 500

// GetIdea retrieves an idea by ID. Returns nil, nil when it does not exist.
func (db *DB) GetIdea(ctx context.Context, id uuid.UUID) (*types.Idea, error) {
	var idea types.Idea
	err := db.pool.QueryRow(ctx,
		`SELECT id, created_by, title, problem,
		        COALESCE(solution, ''), COALESCE(target_user, ''), COALESCE(why_now, ''),
		        COALESCE(assumptions, ''), COALESCE(desired_teammates, ''), COALESCE(stage::text, '')
		 FROM ideas WHERE id = $1`,
		id,
	).Scan(&idea.ID, &idea.CreatedBy, &idea.Title, &idea.Problem,
		&idea.Solution, &idea.TargetUser, &idea.WhyNow,
		&idea.Assumptions, &idea.DesiredTeammates, &idea.Stage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}
	return &idea, nil
}

// GetProfile retrieves the profile of a user. Returns nil, nil when the user has none.
func (db *DB) GetProfile(ctx context.Context, userID int) (*types.Profile, error) {
	var p types.Profile
	err := db.pool.QueryRow(ctx,
		`SELECT p.user_id, COALESCE(p.full_name, ''), COALESCE(p.email, ''),
		        COALESCE(un.name, p.other_university, ''), COALESCE(p.major, ''),
		        COALESCE(p.skills, '{}'), COALESCE(p.interests, '{}'), COALESCE(p.bio, '')
		 FROM profiles p
		 LEFT JOIN universities un ON un.id = p.university_id
		 WHERE p.user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.FullName, &p.Email, &p.University, &p.Major, &p.Skills, &p.Interests, &p.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// ListCandidatePool lists platform users for matching, excluding excludeUserID.
// Users without a profile are returned with a nil Profile.
func (db *DB) ListCandidatePool(ctx context.Context, excludeUserID, limit int) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT us.id, COALESCE(p.full_name, us.full_name, ''), us.email,
		        p.user_id IS NOT NULL,
		        COALESCE(un.name, p.other_university, ''), COALESCE(p.bio, ''), COALESCE(p.skills, '{}'),
		        (SELECT COUNT(*) FROM ideas i WHERE i.created_by = us.id)
		 FROM users us
		 LEFT JOIN profiles p ON p.user_id = us.id
		 LEFT JOIN universities un ON un.id = p.university_id
		 WHERE us.id <> $1
		 ORDER BY us.id
		 LIMIT $2`,
		excludeUserID, poolLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate pool: %w", err)
	}
	defer rows.Close()

	var pool []types.Candidate
	for rows.Next() {
		var (
			c          types.Candidate
			hasProfile bool
			profile    types.CandidateProfile
			ideaCount  int64
		)
		if err := rows.Scan(&c.UserID, &c.Name, &c.Email, &hasProfile,
			&profile.University, &profile.Bio, &profile.Skills, &ideaCount); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if hasProfile {
			profile.IdeaCount = int(ideaCount)
			c.Profile = &profile
		}
		pool = append(pool, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidate pool: %w", err)
	}
	return pool, nil
}

func poolLimit(limit int) int {
	if limit <= 0 || limit > DefaultPoolLimit {
		return DefaultPoolLimit
	}
	return limit
}
