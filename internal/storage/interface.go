package storage

import (
	"context"

	"github.com/accountweb/accountweb/internal/model"
)

// UserStore defines persistence for user records. The store exclusively owns
// User rows; callers never mutate a fetched User in place.
type UserStore interface {
	// SaveUser inserts a new user. Returns model.ErrUserExists if the id is
	// already taken, even when the caller pre-checked existence.
	SaveUser(ctx context.Context, user *model.User) error

	// FindUserByID returns model.ErrUserNotFound when the id is absent.
	FindUserByID(ctx context.Context, id model.UserID) (*model.User, error)

	// UpdateUser overwrites name and password hash for an existing id.
	// Returns model.ErrUserNotFound when the id is absent.
	UpdateUser(ctx context.Context, user *model.User) error

	// DeleteAllUsers clears every user record. Test/maintenance hook only.
	DeleteAllUsers(ctx context.Context) error

	// InTransaction runs fn atomically: store calls made with the context fn
	// receives either all commit or all roll back. fn returning an error
	// rolls back and the error is returned unchanged.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SessionStore defines persistence for session records, keyed by the opaque
// session id. Sessions hold a non-owning reference to a user id.
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error

	// FindSessionByID returns model.ErrSessionNotFound when the id is absent.
	FindSessionByID(ctx context.Context, id model.SessionID) (*model.Session, error)

	// DeleteSession removes a session. Deleting an absent session is not an error.
	DeleteSession(ctx context.Context, id model.SessionID) error

	// DeleteAllSessions clears every session record. Test hook only.
	DeleteAllSessions(ctx context.Context) error
}
