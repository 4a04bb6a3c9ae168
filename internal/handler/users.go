package handler

import (
	"net/http"

	"devhub-api/internal/middleware"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondValidation(w, []string{"Invalid request body"})
		return
	}

	var msgs []string
	if req.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	if req.Email == "" {
		msgs = append(msgs, "Email is required")
	} else if !emailPattern.MatchString(req.Email) {
		msgs = append(msgs, "Invalid Email")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "Please enter a password with 6 or more characters")
	}
	if len(msgs) > 0 {
		h.respondValidation(w, msgs)
		return
	}

	token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondValidation(w, []string{"Invalid request body"})
		return
	}

	var msgs []string
	if req.Email == "" {
		msgs = append(msgs, "Email is required")
	} else if !emailPattern.MatchString(req.Email) {
		msgs = append(msgs, "Invalid Email")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password required")
	}
	if len(msgs) > 0 {
		h.respondValidation(w, msgs)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CurrentUser returns the authenticated user's record without the password hash
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	user, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}
