package models

import "time"

// Post represents a feed post. Name and Avatar are the author snapshot taken
// at creation time; they are not resynced if the user record changes later.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// Like marks that a user liked a post. At most one entry per user per post.
type Like struct {
	UserID string `json:"user"`
}

// Comment represents a comment on a post, with its own author snapshot.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
