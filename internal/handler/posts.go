package handler

import (
	"errors"
	"net/http"

	"devhub-api/internal/middleware"
	"devhub-api/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type postRequest struct {
	Text string `json:"text"`
}

// CreatePost creates a feed post authored by the authenticated user
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req postRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondValidation(w, []string{"Invalid request body"})
		return
	}
	if req.Text == "" {
		h.respondValidation(w, []string{"Text is required"})
		return
	}

	post, err := h.svc.CreatePost(r.Context(), userID, req.Text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, post)
}

// ListPosts returns all posts, newest first
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, posts)
}

// GetPost returns a post by id
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.svc.GetPost(r.Context(), postID)
	if errors.Is(err, service.ErrNotFound) {
		h.respondMsg(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, post)
}

// DeletePost removes a post; only its author may do so
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	postID, ok := h.postID(w, r)
	if !ok {
		return
	}

	err := h.svc.DeletePost(r.Context(), userID, postID)
	if errors.Is(err, service.ErrNotFound) {
		h.respondMsg(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondMsg(w, http.StatusOK, "Post removed")
}

// LikePost adds the caller's like; liking twice reports "Already liked"
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	postID, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.svc.LikePost(r.Context(), userID, postID)
	switch {
	case errors.Is(err, service.ErrAlreadyLiked):
		h.respondMsg(w, http.StatusOK, "Already liked")
	case errors.Is(err, service.ErrNotFound):
		h.respondMsg(w, http.StatusNotFound, "Post not found")
	case err != nil:
		h.respondServiceError(w, err)
	default:
		h.respondJSON(w, http.StatusOK, post)
	}
}

// UnlikePost removes the caller's like; unliking an unliked post reports
// "Post has not been liked yet"
func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	postID, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.svc.UnlikePost(r.Context(), userID, postID)
	switch {
	case errors.Is(err, service.ErrNotLiked):
		h.respondMsg(w, http.StatusOK, "Post has not been liked yet")
	case errors.Is(err, service.ErrNotFound):
		h.respondMsg(w, http.StatusNotFound, "Post not found")
	case err != nil:
		h.respondServiceError(w, err)
	default:
		h.respondJSON(w, http.StatusOK, post)
	}
}

// AddComment adds a comment to a post and returns its comments
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	postID, ok := h.postID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondValidation(w, []string{"Invalid request body"})
		return
	}
	if req.Text == "" {
		h.respondValidation(w, []string{"Text is required"})
		return
	}

	comments, err := h.svc.AddComment(r.Context(), userID, postID, req.Text)
	if errors.Is(err, service.ErrNotFound) {
		h.respondMsg(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, comments)
}

// RemoveComment deletes a comment; only its author may do so
func (h *Handler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	postID, ok := h.postID(w, r)
	if !ok {
		return
	}

	comments, err := h.svc.RemoveComment(r.Context(), userID, postID, mux.Vars(r)["comment_id"])
	if errors.Is(err, service.ErrNotFound) {
		h.respondMsg(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, comments)
}

// postID extracts and validates the post id path variable. A malformed id is
// reported the same way as a missing post.
func (h *Handler) postID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		h.respondMsg(w, http.StatusNotFound, "Post not found")
		return "", false
	}
	return id, true
}
