package service

import (
	"context"
	"errors"
	"strings"

	"devhub-api/internal/models"
	"devhub-api/internal/repository"
	"github.com/google/uuid"
)

// ProfileInput is a sparse patch: empty fields never overwrite stored values.
type ProfileInput struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// GetProfile returns the profile owned by userID
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.store.FindProfileByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles returns all profiles
func (s *Service) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.store.ListProfiles(ctx)
}

// UpsertProfile applies a sparse patch to the caller's profile, creating it if absent
func (s *Service) UpsertProfile(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	profile, err := s.store.FindProfileByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		profile = &models.Profile{
			UserID:     userID,
			Skills:     []string{},
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
	} else if err != nil {
		return nil, err
	}

	patch := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	patch(&profile.Company, in.Company)
	patch(&profile.Website, in.Website)
	patch(&profile.Location, in.Location)
	patch(&profile.Status, in.Status)
	patch(&profile.Bio, in.Bio)
	patch(&profile.GithubUsername, in.GithubUsername)
	patch(&profile.Social.Youtube, in.Youtube)
	patch(&profile.Social.Twitter, in.Twitter)
	patch(&profile.Social.Facebook, in.Facebook)
	patch(&profile.Social.Linkedin, in.Linkedin)
	patch(&profile.Social.Instagram, in.Instagram)

	if in.Skills != "" {
		profile.Skills = splitSkills(in.Skills)
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Infof("Profile saved for user %s", userID)
	return s.GetProfile(ctx, userID)
}

// AddExperience prepends a work experience entry to the caller's profile
func (s *Service) AddExperience(ctx context.Context, userID string, exp models.Experience) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = uuid.NewString()
	profile.Experience = append([]models.Experience{exp}, profile.Experience...)

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience deletes the experience entry with the given id.
// An unknown id leaves the profile unchanged.
func (s *Service) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Experience[:0]
	for _, e := range profile.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	profile.Experience = kept

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation prepends an education entry to the caller's profile
func (s *Service) AddEducation(ctx context.Context, userID string, edu models.Education) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ID = uuid.NewString()
	profile.Education = append([]models.Education{edu}, profile.Education...)

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation deletes the education entry with the given id.
// An unknown id leaves the profile unchanged.
func (s *Service) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Education[:0]
	for _, e := range profile.Education {
		if e.ID != eduID {
			kept = append(kept, e)
		}
	}
	profile.Education = kept

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func splitSkills(raw string) []string {
	skills := []string{}
	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
