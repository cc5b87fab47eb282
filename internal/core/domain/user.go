package domain

import "time"

// User is an account record. Email is unique across users and is the login key.
type User struct {
	ID           string
	Name         string
	Lastname     string
	Nickname     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ProfileUpdate holds the fields a user may change from the settings page.
// An empty PasswordHash leaves the stored hash untouched.
type ProfileUpdate struct {
	Name         string
	Lastname     string
	Nickname     string
	PasswordHash string
}

// Claims is the verified identity carried by a session token.
type Claims struct {
	UserID    string
	Nickname  string
	ExpiresAt time.Time
}
