package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"devhub-api/internal/models"
	"github.com/lib/pq"
)

const profileSelect = `
	SELECT p.user_id, u.name, u.avatar, p.company, p.website, p.location,
	       p.status, p.bio, p.github_username, p.skills, p.social,
	       p.experience, p.education, p.updated_at
	FROM devhub.profiles p
	JOIN devhub.users u ON u.id = p.user_id`

// SaveProfile writes a full profile row, inserting or updating by user id
func (r *Repository) SaveProfile(ctx context.Context, profile *models.Profile) error {
	social, err := json.Marshal(profile.Social)
	if err != nil {
		return fmt.Errorf("failed to encode social links: %w", err)
	}
	experience, err := json.Marshal(profile.Experience)
	if err != nil {
		return fmt.Errorf("failed to encode experience: %w", err)
	}
	education, err := json.Marshal(profile.Education)
	if err != nil {
		return fmt.Errorf("failed to encode education: %w", err)
	}

	query := `
		INSERT INTO devhub.profiles
			(user_id, company, website, location, status, bio, github_username,
			 skills, social, experience, education, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at`
	err = r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.Company, profile.Website, profile.Location,
		profile.Status, profile.Bio, profile.GithubUsername,
		pq.Array(profile.Skills), social, experience, education).
		Scan(&profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// FindProfileByUserID retrieves a profile joined with the owner's name and avatar
func (r *Repository) FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, profileSelect+` WHERE p.user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// ListProfiles retrieves all profiles, most recently updated first
func (r *Repository) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, profileSelect+` ORDER BY p.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	profile := &models.Profile{}
	var social, experience, education []byte
	err := row.Scan(&profile.UserID, &profile.Name, &profile.Avatar,
		&profile.Company, &profile.Website, &profile.Location, &profile.Status,
		&profile.Bio, &profile.GithubUsername, pq.Array(&profile.Skills),
		&social, &experience, &education, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(social, &profile.Social); err != nil {
		return nil, fmt.Errorf("failed to decode social links: %w", err)
	}
	if err := json.Unmarshal(experience, &profile.Experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience: %w", err)
	}
	if err := json.Unmarshal(education, &profile.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	return profile, nil
}
