package domain

import "time"

// User is an account able to log in. Access is the free-text level carried
// in the user's tokens.
type User struct {
	ID           string
	LastName     string
	FirstName    string
	Email        string
	Username     *string
	PasswordHash string
	Access       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
