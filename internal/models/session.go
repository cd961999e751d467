package models

import "time"

// Session represents one authenticated device login as issued by the backend.
// Exactly one session record is current per installation; others returned by
// the session list are read-only representations and never hold the local
// credential.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Token     string    `json:"token"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the session is still valid at the given instant.
// A session expiring exactly now is no longer active.
func (s *Session) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}
