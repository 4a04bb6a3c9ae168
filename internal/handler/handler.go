package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"devhub-api/internal/integrations/github"
	"devhub-api/internal/service"
	"github.com/sirupsen/logrus"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Handler exposes the HTTP API
type Handler struct {
	svc *service.Service
	gh  *github.Client
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, gh *github.Client, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, gh: gh, log: log}
}

// Root reports that the API is up
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"msg": "API running"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to write response: %v", err)
	}
}

func (h *Handler) respondMsg(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"msg": msg})
}

type fieldError struct {
	Msg string `json:"msg"`
}

// respondValidation reports field-level validation failures
func (h *Handler) respondValidation(w http.ResponseWriter, msgs []string) {
	errs := make([]fieldError, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, fieldError{Msg: m})
	}
	h.respondJSON(w, http.StatusBadRequest, map[string][]fieldError{"errors": errs})
}

// respondServiceError maps service failures to the HTTP error taxonomy.
// Unrecognized errors are logged and reported as a generic server error.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		h.respondValidation(w, []string{"Email has already existed"})
	case errors.Is(err, service.ErrInvalidCredentials):
		h.respondValidation(w, []string{"Invalid credentials"})
	case errors.Is(err, service.ErrNoProfile):
		h.respondMsg(w, http.StatusBadRequest, "There is no profile for this user")
	case errors.Is(err, service.ErrNotAuthorised):
		h.respondMsg(w, http.StatusForbidden, "User not authorised")
	case errors.Is(err, service.ErrNotFound):
		h.respondMsg(w, http.StatusNotFound, "Not found")
	default:
		h.log.Errorf("Request failed: %v", err)
		h.respondMsg(w, http.StatusInternalServerError, "Server error")
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
