package models

import "time"

// AdminType distinguishes permanent console accounts from temporary ones
// that stop working once their expiry passes.
type AdminType string

const (
	AdminPermanent AdminType = "permanent"
	AdminTemporary AdminType = "temporary"
)

// AdminUser represents an admin console account.
type AdminUser struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	Role           string     `db:"role" json:"role"`
	AdminType      AdminType  `db:"admin_type" json:"admin_type"`
	AdminExpiresAt *time.Time `db:"admin_expires_at" json:"admin_expires_at,omitempty"`
	Theme          string     `db:"theme" json:"theme"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Expired reports whether a temporary admin's access window has elapsed.
func (u AdminUser) Expired(now time.Time) bool {
	return u.AdminType == AdminTemporary && u.AdminExpiresAt != nil && !u.AdminExpiresAt.After(now)
}

// AdminMetadata is the metadata block returned by the admin-user listing,
// matching the shape consoles read.
type AdminMetadata struct {
	Role           string     `json:"role"`
	AdminType      AdminType  `json:"admin_type"`
	AdminExpiresAt *time.Time `json:"admin_expires_at,omitempty"`
}

// AdminUserInfo is an admin account as exposed by the management API.
type AdminUserInfo struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	CreatedAt   time.Time     `json:"created_at"`
	AppMetadata AdminMetadata `json:"app_metadata"`
}

// Info shapes the account for the management API.
func (u AdminUser) Info() AdminUserInfo {
	return AdminUserInfo{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		AppMetadata: AdminMetadata{
			Role:           u.Role,
			AdminType:      u.AdminType,
			AdminExpiresAt: u.AdminExpiresAt,
		},
	}
}
