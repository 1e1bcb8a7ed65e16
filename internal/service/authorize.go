package service

import "go-todo-api/internal/domain"

// Action names a capability checked by Authorize.
type Action int

const (
	// ReadTask allows reading a single task; admins may read any task.
	ReadTask Action = iota
	// MutateTask allows update/delete/complete; owner only, no admin bypass.
	MutateTask
	// ManageUsers allows the admin-only user operations.
	ManageUsers
)

// Authorize is the single capability check evaluated before every operation.
// Services call it before any version comparison, so a non-owner never learns
// whether the version they submitted was stale.
func Authorize(p domain.Principal, action Action, ownerID uint64) error {
	switch action {
	case ReadTask:
		if p.ID == ownerID || p.IsAdmin() {
			return nil
		}
		return domain.ErrNotOwner
	case MutateTask:
		if p.ID == ownerID {
			return nil
		}
		return domain.ErrNotOwner
	case ManageUsers:
		if p.IsAdmin() {
			return nil
		}
	}
	return domain.ErrForbidden
}
