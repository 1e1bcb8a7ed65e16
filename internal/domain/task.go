package domain

import (
	"context"
	"time"
)

// Task belongs to exactly one user. OwnerID, Created and ID are set on
// creation and never change; Version increments by one on every write.
type Task struct {
	ID       uint64     `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"size:191;not null" json:"name"`
	Priority *int       `json:"priority,omitempty"`
	OwnerID  uint64     `gorm:"index;not null" json:"ownerId"`
	Complete bool       `json:"complete"`
	Due      *time.Time `json:"due,omitempty"`
	Created  time.Time  `json:"created"`
	Version  int64      `json:"version"`
}

func (Task) TableName() string { return "tasks" }

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uint64) (*Task, error)
	// ListByOwner returns the owner's tasks in insertion order.
	ListByOwner(ctx context.Context, ownerID uint64) ([]Task, error)
	// UpdateVersioned persists t only if the stored version still equals
	// t.Version, bumping it by one. Returns ErrStaleVersion on a lost race
	// and ErrTaskNotFound if the row vanished.
	UpdateVersioned(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uint64) error
}
