package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-todo-api/internal/domain"
)

func TestAuthorize(t *testing.T) {
	owner := domain.Principal{ID: 7, Roles: []string{domain.RoleUser}}
	other := domain.Principal{ID: 8, Roles: []string{domain.RoleUser}}
	admin := domain.Principal{ID: 0, Roles: []string{domain.RoleAdmin}}

	tests := []struct {
		name    string
		p       domain.Principal
		action  Action
		ownerID uint64
		want    error
	}{
		{"owner reads own task", owner, ReadTask, 7, nil},
		{"admin reads any task", admin, ReadTask, 7, nil},
		{"stranger cannot read", other, ReadTask, 7, domain.ErrNotOwner},
		{"owner mutates own task", owner, MutateTask, 7, nil},
		{"admin cannot mutate others", admin, MutateTask, 7, domain.ErrNotOwner},
		{"stranger cannot mutate", other, MutateTask, 7, domain.ErrNotOwner},
		{"admin manages users", admin, ManageUsers, 0, nil},
		{"user cannot manage users", owner, ManageUsers, 0, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.p, tt.action, tt.ownerID)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
