package service

import (
	"context"
	"errors"
	"time"

	"devhub-api/internal/models"
	"devhub-api/internal/repository"
	"github.com/google/uuid"
)

// CreatePost creates a feed post with an author snapshot taken from the
// user record at write time
func (s *Service) CreatePost(ctx context.Context, userID, text string) (*models.Post, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Text:     text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Infof("Post %s created by user %s", post.ID, userID)
	return post, nil
}

// ListPosts returns all posts, newest first
func (s *Service) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.store.ListPosts(ctx)
}

// GetPost returns a post by id
func (s *Service) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.store.FindPostByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only the author may delete it.
func (s *Service) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotAuthorised
	}
	if err := s.store.DeletePost(ctx, postID); err != nil {
		return err
	}
	s.log.Infof("Post %s deleted by user %s", postID, userID)
	return nil
}

// LikePost adds the caller to a post's likes. A second like by the same
// user is reported as ErrAlreadyLiked without mutating the list.
func (s *Service) LikePost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if likeIndex(post.Likes, userID) >= 0 {
		return nil, ErrAlreadyLiked
	}

	post.Likes = append([]models.Like{{UserID: userID}}, post.Likes...)
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UnlikePost removes the caller's like from a post. Unliking a post that was
// never liked is reported as ErrNotLiked without mutating the list.
func (s *Service) UnlikePost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := likeIndex(post.Likes, userID)
	if idx < 0 {
		return nil, ErrNotLiked
	}

	post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment prepends a comment with its own author snapshot and returns
// the post's comments
func (s *Service) AddComment(ctx context.Context, userID, postID, text string) ([]models.Comment, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// RemoveComment deletes a comment by id. Only the comment's author may remove it.
func (s *Service) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]models.Comment, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range post.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	if post.Comments[idx].UserID != userID {
		return nil, ErrNotAuthorised
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func likeIndex(likes []models.Like, userID string) int {
	for i, l := range likes {
		if l.UserID == userID {
			return i
		}
	}
	return -1
}
