package models

import "time"

// AccessLogAction labels a user action recorded against a document.
type AccessLogAction string

const (
	AccessActionView     AccessLogAction = "view"
	AccessActionDownload AccessLogAction = "download"
	AccessActionPrint    AccessLogAction = "print"
	AccessActionShare    AccessLogAction = "share"
	AccessActionComment  AccessLogAction = "comment"
	AccessActionRate     AccessLogAction = "rate"
)

// Valid reports whether the action is one the backend accepts.
func (a AccessLogAction) Valid() bool {
	switch a {
	case AccessActionView, AccessActionDownload, AccessActionPrint,
		AccessActionShare, AccessActionComment, AccessActionRate:
		return true
	}
	return false
}

// AccessLogEntry is an audit record of a user action on a document. Entries
// are write-once from the client's perspective: the server assigns the
// identifier and timestamp, and the client never mutates or deletes them.
type AccessLogEntry struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id,omitempty"`
	DocumentID string          `json:"document_id"`
	Action     AccessLogAction `json:"action"`
	SessionID  string          `json:"session_id,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	UserAgent  string          `json:"user_agent,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}
