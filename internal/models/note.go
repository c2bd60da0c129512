package models

import "time"

// Note is a piece of free text owned by exactly one account.
type Note struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
