package models

import "time"

// UserStatus is the account lifecycle state. New registrations start
// pending and become active on admin approval.
type UserStatus string

const (
	StatusPending UserStatus = "pending"
	StatusActive  UserStatus = "active"
)

// Role controls authorization. Admins approve registrations and may
// delete any message.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account record. PasswordHash never leaves the process.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"displayName"`
	Status       UserStatus `json:"status"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// PublicUser is the projection safe to return to other users.
type PublicUser struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	Status      UserStatus `json:"status"`
}

// Public returns the user's public projection.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      u.Status,
	}
}
