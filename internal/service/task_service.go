package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-todo-api/internal/domain"
)

// TaskDraft is the caller-supplied part of a new task. Owner, timestamps and
// version are assigned by the service.
type TaskDraft struct {
	Name     string     `json:"name"`
	Priority *int       `json:"priority"`
	Due      *time.Time `json:"due"`
}

// TaskPatch updates the mutable fields of a task. Version must match the
// stored record; id/owner/created cannot be changed through a patch and are
// therefore not part of it.
type TaskPatch struct {
	ID       uint64     `json:"id"`
	Name     string     `json:"name"`
	Priority *int       `json:"priority"`
	Due      *time.Time `json:"due"`
	Version  int64      `json:"version"`
}

type TaskService struct {
	tasks domain.TaskRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewTaskService(tasks domain.TaskRepository, log *zap.Logger) *TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{tasks: tasks, log: log, now: time.Now}
}

// ListForUser returns the caller's own tasks in creation order.
func (s *TaskService) ListForUser(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, p.ID)
}

func (s *TaskService) Create(ctx context.Context, p domain.Principal, draft TaskDraft) (*domain.Task, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, domain.NewValidationError("name", "must not be blank")
	}
	t := &domain.Task{
		Name:     draft.Name,
		Priority: draft.Priority,
		OwnerID:  p.ID,
		Due:      draft.Due,
		Created:  s.now(),
		Version:  0,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Debug("task created", zap.Uint64("id", t.ID), zap.Uint64("owner", p.ID))
	return t, nil
}

func (s *TaskService) FindByID(ctx context.Context, p domain.Principal, id uint64) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(p, ReadTask, t.OwnerID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, p domain.Principal, patch TaskPatch) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	// Ownership strictly before the version comparison.
	if err := Authorize(p, MutateTask, t.OwnerID); err != nil {
		return nil, err
	}
	if patch.Version != t.Version {
		return nil, domain.ErrStaleVersion
	}
	if strings.TrimSpace(patch.Name) == "" {
		return nil, domain.NewValidationError("name", "must not be blank")
	}
	t.Name = patch.Name
	t.Priority = patch.Priority
	t.Due = patch.Due
	if err := s.tasks.UpdateVersioned(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id uint64) error {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(p, MutateTask, t.OwnerID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// SetComplete flips the completion flag and returns the new value.
func (s *TaskService) SetComplete(ctx context.Context, p domain.Principal, id uint64, complete bool) (bool, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := Authorize(p, MutateTask, t.OwnerID); err != nil {
		return false, err
	}
	t.Complete = complete
	if err := s.tasks.UpdateVersioned(ctx, t); err != nil {
		return false, err
	}
	return t.Complete, nil
}
