package models

import "time"

// RefreshToken tracks the single live refresh token of a user. The row is
// upserted on login, replaced on every refresh, and deleted on logout.
type RefreshToken struct {
	UserID    string
	Token     string
	UpdatedAt time.Time
}
