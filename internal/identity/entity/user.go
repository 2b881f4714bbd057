package entity

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Ensure() Role {
	if r == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	Password     string // hashed
	Role         Role
	ProfileImage string
	Reset        ResetState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileChange is a full replacement of the editable profile columns.
// An empty PasswordHash keeps the current password.
type ProfileChange struct {
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
}
