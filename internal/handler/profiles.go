package handler

import (
	"errors"
	"net/http"

	"devhub-api/internal/integrations/github"
	"devhub-api/internal/middleware"
	"devhub-api/internal/models"
	"devhub-api/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// MyProfile returns the authenticated user's profile
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	profile, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// ListProfiles returns all profiles
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.ListProfiles(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profiles)
}

// GetProfileByUser returns the profile owned by the user id in the path
func (h *Handler) GetProfileByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if _, err := uuid.Parse(userID); err != nil {
		h.respondMsg(w, http.StatusBadRequest, "Profile not found")
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), userID)
	if errors.Is(err, service.ErrNoProfile) {
		h.respondMsg(w, http.StatusBadRequest, "Profile not found")
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// UpsertProfile creates or sparsely updates the authenticated user's profile
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var in service.ProfileInput
	if err := decodeBody(r, &in); err != nil {
		h.respondValidation(w, []string{"Invalid request body"})
		return
	}

	var msgs []string
	if in.Status == "" {
		msgs = append(msgs, "Status is required")
	}
	if in.Skills == "" {
		msgs = append(msgs, "Skills is required")
	}
	if len(msgs) > 0 {
		h.respondValidation(w, msgs)
		return
	}

	profile, err := h.svc.UpsertProfile(r.Context(), userID, in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// DeleteAccount removes the authenticated user, their profile, and their posts
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.svc.DeleteAccount(r.Context(), userID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondMsg(w, http.StatusOK, "User removed")
}

// AddExperience prepends a work experience entry to the caller's profile
func (h *Handler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var exp models.Experience
	if err := decodeBody(r, &exp); err != nil {
		h.respondValidation(w, []string{"Invalid request body"})
		return
	}

	var msgs []string
	if exp.Title == "" {
		msgs = append(msgs, "Title is required")
	}
	if exp.Company == "" {
		msgs = append(msgs, "Company is required")
	}
	if exp.From == "" {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		h.respondValidation(w, msgs)
		return
	}

	profile, err := h.svc.AddExperience(r.Context(), userID, exp)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// RemoveExperience deletes an experience entry; an unknown id is a no-op
func (h *Handler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	profile, err := h.svc.RemoveExperience(r.Context(), userID, mux.Vars(r)["exp_id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// AddEducation prepends an education entry to the caller's profile
func (h *Handler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var edu models.Education
	if err := decodeBody(r, &edu); err != nil {
		h.respondValidation(w, []string{"Invalid request body"})
		return
	}

	var msgs []string
	if edu.School == "" {
		msgs = append(msgs, "School is required")
	}
	if edu.Degree == "" {
		msgs = append(msgs, "Degree is required")
	}
	if edu.FieldOfStudy == "" {
		msgs = append(msgs, "Field of study is required")
	}
	if edu.From == "" {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		h.respondValidation(w, msgs)
		return
	}

	profile, err := h.svc.AddEducation(r.Context(), userID, edu)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// RemoveEducation deletes an education entry; an unknown id is a no-op
func (h *Handler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	profile, err := h.svc.RemoveEducation(r.Context(), userID, mux.Vars(r)["edu_id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// GithubRepos proxies the GitHub repository listing for a username
func (h *Handler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.gh.GetUserRepos(r.Context(), mux.Vars(r)["username"])
	if errors.Is(err, github.ErrNoProfile) {
		h.respondMsg(w, http.StatusNotFound, "No Github profile found")
		return
	}
	if err != nil {
		h.log.Errorf("Github lookup failed: %v", err)
		h.respondMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(repos)
}
