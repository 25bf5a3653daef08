package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accountweb/accountweb/internal/model"
	"github.com/accountweb/accountweb/internal/storage"
)

// DB is the subset of pgxpool.Pool the store uses. It is satisfied by both
// *pgxpool.Pool and pgxmock's pool for tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is a PostgreSQL-backed implementation of the storage interfaces
type Store struct {
	db DB
}

// New connects to PostgreSQL and verifies the connection
func New(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Store{db: pool}, nil
}

// NewWithDB creates a store over an existing connection (for testing)
func NewWithDB(db DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying pool if the store owns one
func (s *Store) Close() {
	if pool, ok := s.db.(*pgxpool.Pool); ok {
		pool.Close()
	}
}

// Ensure Store implements the interfaces
var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.SessionStore = (*Store)(nil)
)

// txKey carries the active pgx.Tx through the context so store calls made
// inside InTransaction share the transaction.
type txKey struct{}

// q returns the transaction bound to ctx, or the pool when none is active
func (s *Store) q(ctx context.Context) DB {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.db
}

// InTransaction begins a transaction, stores it in ctx, and calls fn.
// fn returning nil commits; any error rolls back and is returned unchanged.
func (s *Store) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// User operations

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO users (id, name, password)
		VALUES ($1, $2, $3)
	`, string(user.ID), user.Name, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUserExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.q(ctx).QueryRow(ctx, `
		SELECT id, name, password FROM users
		WHERE id = $1
	`, string(id))

	var userID, name, password string
	if err := row.Scan(&userID, &name, &password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &model.User{ID: model.UserID(userID), Name: name, PasswordHash: password}, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	tag, err := s.q(ctx).Exec(ctx, `
		UPDATE users SET name = $2, password = $3
		WHERE id = $1
	`, string(user.ID), user.Name, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (s *Store) DeleteAllUsers(ctx context.Context) error {
	if _, err := s.q(ctx).Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("deleting users: %w", err)
	}
	return nil
}

// Session operations

func (s *Store) SaveSession(ctx context.Context, session *model.Session) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO sessions (id, user_id)
		VALUES ($1, $2)
	`, string(session.ID), string(session.UserID))
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (s *Store) FindSessionByID(ctx context.Context, id model.SessionID) (*model.Session, error) {
	row := s.q(ctx).QueryRow(ctx, `
		SELECT id, user_id FROM sessions
		WHERE id = $1
	`, string(id))

	var sessionID, userID string
	if err := row.Scan(&sessionID, &userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return &model.Session{ID: model.SessionID(sessionID), UserID: model.UserID(userID)}, nil
}

func (s *Store) DeleteSession(ctx context.Context, id model.SessionID) error {
	if _, err := s.q(ctx).Exec(ctx, `DELETE FROM sessions WHERE id = $1`, string(id)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllSessions(ctx context.Context) error {
	if _, err := s.q(ctx).Exec(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("deleting sessions: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
