package repo

import (
	"context"
	"fmt"
	"time"

	"go-todo-api/internal/core/cache"
	"go-todo-api/internal/domain"
)

const ownerListTTL = 30 * time.Second

// CachedTaskRepo decorates a TaskRepository with a read-through redis cache
// of per-owner task lists. Every mutation drops the owner's list key, so a
// reader after a write always sees fresh state; the TTL only bounds staleness
// across instances that missed an invalidation.
type CachedTaskRepo struct {
	domain.TaskRepository
	c cache.Store
}

func NewCachedTaskRepo(inner domain.TaskRepository, c cache.Store) *CachedTaskRepo {
	return &CachedTaskRepo{TaskRepository: inner, c: c}
}

func ownerKey(ownerID uint64) string { return fmt.Sprintf("tasks:owner:%d", ownerID) }

func (r *CachedTaskRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]domain.Task, error) {
	out, err := cache.GetOrLoadJSON[[]domain.Task](r.c, ctx, ownerKey(ownerID), ownerListTTL,
		func(ctx context.Context) (*[]domain.Task, error) {
			tasks, err := r.TaskRepository.ListByOwner(ctx, ownerID)
			if err != nil {
				return nil, err
			}
			if tasks == nil {
				tasks = []domain.Task{}
			}
			return &tasks, nil
		})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (r *CachedTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if err := r.TaskRepository.Create(ctx, t); err != nil {
		return err
	}
	r.c.Invalidate(ctx, ownerKey(t.OwnerID))
	return nil
}

func (r *CachedTaskRepo) UpdateVersioned(ctx context.Context, t *domain.Task) error {
	if err := r.TaskRepository.UpdateVersioned(ctx, t); err != nil {
		return err
	}
	r.c.Invalidate(ctx, ownerKey(t.OwnerID))
	return nil
}

func (r *CachedTaskRepo) Delete(ctx context.Context, id uint64) error {
	t, err := r.TaskRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.TaskRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.c.Invalidate(ctx, ownerKey(t.OwnerID))
	return nil
}
