package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a persisted account. PasswordHash never leaves the service layer:
// it is excluded from JSON and only compared through the password helpers.
type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:64;not null" json:"name"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Roles        []string  `gorm:"serializer:json;size:191" json:"roles"`
	Created      time.Time `json:"created"`
	Version      int64     `json:"version"`
}

func (User) TableName() string { return "users" }

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint64) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	// UpdateVersioned persists u only if the stored version still equals
	// u.Version, bumping it by one. Returns ErrStaleVersion on a lost race
	// and ErrUserNotFound if the row vanished.
	UpdateVersioned(ctx context.Context, u *User) error
}
