package domain

import "time"

// Blog is a post owned by exactly one user. Thumbnail holds the durable media
// URL; it is uploaded before the document is persisted.
type Blog struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	Thumbnail string    `json:"thumbnail"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
