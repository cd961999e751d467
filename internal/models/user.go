package models

import "time"

// UserRole distinguishes administrative accounts from ordinary members.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// User is the account record returned by the backend alongside tokens and
// from the user administration endpoints.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Role        UserRole   `json:"role"`
	IsActive    bool       `json:"is_active,omitempty"`
	IsVerified  bool       `json:"is_verified"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Address     string     `json:"address,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

// IsAdmin reports whether the account may use the admin console surfaces.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
