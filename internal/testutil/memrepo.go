// Package testutil provides in-memory repositories with the same error and
// versioning contract as the gorm implementations, so service and handler
// tests can run against deterministic storage.
package testutil

import (
	"context"
	"sync"

	"go-todo-api/internal/domain"
)

type MemTaskRepo struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]domain.Task
	order  []uint64
}

func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{nextID: 1, tasks: map[uint64]domain.Task{}}
}

func (r *MemTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.tasks[t.ID] = *t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *MemTaskRepo) FindByID(_ context.Context, id uint64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := t
	return &out, nil
}

func (r *MemTaskRepo) ListByOwner(_ context.Context, ownerID uint64) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, id := range r.order {
		if t, ok := r.tasks[id]; ok && t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemTaskRepo) UpdateVersioned(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[t.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if stored.Version != t.Version {
		return domain.ErrStaleVersion
	}
	t.Version++
	// owner and created stay as stored regardless of what the caller passes
	t.OwnerID = stored.OwnerID
	t.Created = stored.Created
	r.tasks[t.ID] = *t
	return nil
}

func (r *MemTaskRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// MemUserRepo assigns ids from 0 so the first seeded account matches the
// conventional admin id 0 of the fixtures.
type MemUserRepo struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]domain.User
	order  []uint64
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: map[uint64]domain.User{}}
}

func (r *MemUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Name == u.Name {
			return domain.ErrNameTaken
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *MemUserRepo) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := u
	return &out, nil
}

func (r *MemUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if u, ok := r.users[id]; ok && u.Name == name {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *MemUserRepo) UpdateVersioned(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if stored.Version != u.Version {
		return domain.ErrStaleVersion
	}
	for id, other := range r.users {
		if id != u.ID && other.Name == u.Name {
			return domain.ErrNameTaken
		}
	}
	u.Version++
	u.Created = stored.Created
	r.users[u.ID] = *u
	return nil
}
