package domain

import "time"

// Comment is a flat reply to a blog. No nesting.
type Comment struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blog"`
	OwnerID   string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
