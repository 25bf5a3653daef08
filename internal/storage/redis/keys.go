package redis

import (
	"fmt"

	"github.com/accountweb/accountweb/internal/model"
)

// Key prefix for all session data
const keyPrefix = "accountweb"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionIndexKey returns the Redis key for the SET of all session keys,
// used by DeleteAllSessions.
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
