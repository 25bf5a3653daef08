package model

// SessionID is the opaque random token stored in the session cookie.
type SessionID string

// Session binds a cookie token to a user id. Sessions are created at login
// and deleted at logout; they are never renewed.
type Session struct {
	ID     SessionID
	UserID UserID
}
