package memory

import (
	"context"
	"sync"

	"github.com/accountweb/accountweb/internal/model"
	"github.com/accountweb/accountweb/internal/storage"
)

// Store is an in-memory implementation of the storage interfaces
type Store struct {
	mu sync.RWMutex

	// txMu serializes transactions so check-then-insert sequences cannot
	// interleave. It is distinct from mu: store methods called inside a
	// transaction still take mu per call.
	txMu sync.Mutex

	users    map[model.UserID]*model.User
	sessions map[model.SessionID]*model.Session
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		users:    make(map[model.UserID]*model.User),
		sessions: make(map[model.SessionID]*model.Session),
	}
}

// Ensure Store implements the interfaces
var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.SessionStore = (*Store)(nil)
)

// User operations

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return model.ErrUserExists
	}
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *Store) DeleteAllUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[model.UserID]*model.User)
	return nil
}

// InTransaction serializes fn against other transactions. The in-memory
// store has no rollback; atomicity here means mutual exclusion, with the
// duplicate-id check in Save as the backstop.
func (s *Store) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// Session operations

func (s *Store) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[session.ID] = &sess
	return nil
}

func (s *Store) FindSessionByID(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Store) DeleteAllSessions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[model.SessionID]*model.Session)
	return nil
}
