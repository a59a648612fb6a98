// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account identified by a unique email. The password is stored
// only as a bcrypt hash. Users are immutable after registration.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
