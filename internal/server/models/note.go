package models

import "time"

// Note is a user-owned note. Titles are unique across all users, the slug is
// derived from the title, and Image (when set) is the relative path of an
// uploaded file under the upload directory. UserID is set at creation and
// never changes.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image,omitempty"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
