package auth

import "github.com/accountweb/accountweb/internal/model"

// Request/response types for the auth service operations. They are built
// from form input, validated, and discarded; never persisted.

type RegisterRequest struct {
	ID       string
	Name     string
	Password string
}

type RegisterResponse struct {
	User *model.User
}

type LoginRequest struct {
	ID       string
	Password string
}

type LoginResponse struct {
	User *model.User
}

type ProfileUpdateRequest struct {
	ID   string
	Name string
}

type ProfileUpdateResponse struct {
	User *model.User
}

type PasswordUpdateRequest struct {
	ID          string
	OldPassword string
	NewPassword string
}

type PasswordUpdateResponse struct {
	User *model.User
}
