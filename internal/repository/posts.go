package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"devhub-api/internal/models"
)

const postSelect = `
	SELECT id, user_id, text, name, avatar, likes, comments, created_at
	FROM devhub.posts`

// CreatePost inserts a new post
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	likes, comments, err := encodePostLists(post)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO devhub.posts (id, user_id, text, name, avatar, likes, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query,
		post.ID, post.UserID, post.Text, post.Name, post.Avatar, likes, comments).
		Scan(&post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// FindPostByID retrieves a post by id
func (r *Repository) FindPostByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, postSelect+` WHERE id = $1`, id)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// ListPosts retrieves all posts, newest first
func (r *Repository) ListPosts(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// UpdatePost writes back a post's likes and comments lists
func (r *Repository) UpdatePost(ctx context.Context, post *models.Post) error {
	likes, comments, err := encodePostLists(post)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE devhub.posts SET likes = $2, comments = $3 WHERE id = $1`,
		post.ID, likes, comments)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post by id
func (r *Repository) DeletePost(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM devhub.posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodePostLists(post *models.Post) ([]byte, []byte, error) {
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	likes, err := json.Marshal(post.Likes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode likes: %w", err)
	}
	comments, err := json.Marshal(post.Comments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode comments: %w", err)
	}
	return likes, comments, nil
}

func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{}
	var likes, comments []byte
	err := row.Scan(&post.ID, &post.UserID, &post.Text, &post.Name, &post.Avatar,
		&likes, &comments, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(likes, &post.Likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	if err := json.Unmarshal(comments, &post.Comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return post, nil
}
