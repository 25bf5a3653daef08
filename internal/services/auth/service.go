package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/accountweb/accountweb/internal/model"
	"github.com/accountweb/accountweb/internal/storage"
)

// Business-rule messages, preserved verbatim. Login failures use one generic
// message for unknown id and wrong password so responses do not reveal which
// accounts exist.
const (
	msgUserExists    = "User id already exist"
	msgBadCredential = "Id or password is wrong"
	msgUserNotFound  = "User not found"
	msgOldPassword   = "Old password is wrong"
)

// Service orchestrates account and session operations
type Service struct {
	users    storage.UserStore
	sessions storage.SessionStore
	hasher   *PasswordHasher
	logger   *slog.Logger
}

// New creates a new auth Service
func New(users storage.UserStore, sessions storage.SessionStore, hasher *PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}
}

// Register creates a new user account. The existence check and insert run in
// one store transaction; the store's duplicate-id rejection is the backstop
// if a concurrent registration wins the race.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := ValidateRegister(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:           model.UserID(req.ID),
		Name:         req.Name,
		PasswordHash: hash,
	}

	err = s.users.InTransaction(ctx, func(ctx context.Context) error {
		_, err := s.users.FindUserByID(ctx, user.ID)
		if err == nil {
			return model.NewValidationError(msgUserExists)
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		return s.users.SaveUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, model.ErrUserExists) {
			// Lost the check-then-insert race; same outcome as the pre-check.
			return nil, model.NewValidationError(msgUserExists)
		}
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", string(user.ID)))
	return &RegisterResponse{User: user}, nil
}

// Login verifies credentials and returns the user. Unknown id and wrong
// password produce the identical error message.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, model.UserID(req.ID))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewValidationError(msgBadCredential)
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, model.NewValidationError(msgBadCredential)
	}

	return &LoginResponse{User: user}, nil
}

// UpdateProfile changes the user's display name
func (s *Service) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*ProfileUpdateResponse, error) {
	if err := ValidateProfileUpdate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, model.UserID(req.ID))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewValidationError(msgUserNotFound)
		}
		return nil, err
	}

	user.Name = req.Name
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return &ProfileUpdateResponse{User: user}, nil
}

// UpdatePassword verifies the old password and stores a hash of the new one
func (s *Service) UpdatePassword(ctx context.Context, req PasswordUpdateRequest) (*PasswordUpdateResponse, error) {
	if err := ValidatePasswordUpdate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, model.UserID(req.ID))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewValidationError(msgUserNotFound)
		}
		return nil, err
	}

	if !s.hasher.Verify(req.OldPassword, user.PasswordHash) {
		return nil, model.NewValidationError(msgOldPassword)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = hash
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return &PasswordUpdateResponse{User: user}, nil
}

// CreateSession issues a fresh session for the user and persists it
func (s *Service) CreateSession(ctx context.Context, userID model.UserID) (*model.Session, error) {
	session := &model.Session{
		ID:     model.SessionID(generateToken()),
		UserID: userID,
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// SessionUser resolves a session id to its user. Unknown sessions and
// sessions whose user no longer exists both report ErrSessionNotFound, so
// stale cookies degrade to anonymous requests.
func (s *Service) SessionUser(ctx context.Context, id model.SessionID) (*model.User, error) {
	session, err := s.sessions.FindSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	return user, nil
}

// DestroySession deletes a session. Destroying an absent session is a no-op.
func (s *Service) DestroySession(ctx context.Context, id model.SessionID) error {
	return s.sessions.DeleteSession(ctx, id)
}

// generateToken returns an opaque random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
