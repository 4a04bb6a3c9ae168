package handler

import (
	"github.com/gorilla/mux"
)

// Routes builds the API router. Private routes run behind authMW, which must
// attach the authenticated user id to the request context before any handler
// touches per-user state.
func (h *Handler) Routes(authMW mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Root).Methods("GET")

	// Public routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.Register).Methods("POST")
	api.HandleFunc("/auth", h.Login).Methods("POST")
	api.HandleFunc("/profiles", h.ListProfiles).Methods("GET")
	api.HandleFunc("/profiles/user/{user_id}", h.GetProfileByUser).Methods("GET")
	api.HandleFunc("/profiles/github/{username}", h.GithubRepos).Methods("GET")

	// Protected routes
	private := r.PathPrefix("/api").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/auth", h.CurrentUser).Methods("GET")
	private.HandleFunc("/profiles/me", h.MyProfile).Methods("GET")
	private.HandleFunc("/profiles", h.UpsertProfile).Methods("POST")
	private.HandleFunc("/profiles", h.DeleteAccount).Methods("DELETE")
	private.HandleFunc("/profiles/experience", h.AddExperience).Methods("PUT")
	private.HandleFunc("/profiles/experience/{exp_id}", h.RemoveExperience).Methods("DELETE")
	private.HandleFunc("/profiles/education", h.AddEducation).Methods("PUT")
	private.HandleFunc("/profiles/education/{edu_id}", h.RemoveEducation).Methods("DELETE")
	private.HandleFunc("/posts", h.CreatePost).Methods("POST")
	private.HandleFunc("/posts", h.ListPosts).Methods("GET")
	private.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	private.HandleFunc("/posts/{id}", h.DeletePost).Methods("DELETE")
	private.HandleFunc("/posts/like/{id}", h.LikePost).Methods("PUT")
	private.HandleFunc("/posts/dislike/{id}", h.UnlikePost).Methods("PUT")
	private.HandleFunc("/posts/comment/{id}", h.AddComment).Methods("POST")
	private.HandleFunc("/posts/comment/{id}/{comment_id}", h.RemoveComment).Methods("DELETE")

	return r
}
