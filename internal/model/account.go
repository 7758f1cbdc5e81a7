package model

import "time"

// Account is the platform-level identity record. The facade only ever reads
// it (except at creation time) and never mutates it.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the server-side record of an authenticated login. Secret is the
// bearer value the client attaches to authenticated calls; the facade only
// ever addresses the implicit "current" session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Secret    string    `json:"secret,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// CurrentSessionID addresses the active session on delete, rather than a
// session by explicit id.
const CurrentSessionID = "current"
