package domain

import "time"

// User models a registered account. Email is the login key.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the verified subject of a bearer token. It is resolved once per
// request and passed explicitly to every operation that needs an owner.
type Identity struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}
