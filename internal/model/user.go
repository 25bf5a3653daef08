package model

// UserID uniquely identifies a user account. It is chosen by the user at
// registration and never changes afterwards.
type UserID string

// User represents a registered account
type User struct {
	ID           UserID
	Name         string
	PasswordHash string // bcrypt hash; never the plaintext password
}
