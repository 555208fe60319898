package domain

import "time"

// User is an account identified by email that owns ingredients.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
