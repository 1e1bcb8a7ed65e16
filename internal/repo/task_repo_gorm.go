package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-todo-api/internal/domain"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepo) FindByID(ctx context.Context, id uint64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepo) UpdateVersioned(ctx context.Context, t *domain.Task) error {
	expected := t.Version
	res := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("id = ? AND version = ?", t.ID, expected).
		Select("name", "priority", "complete", "due", "version").
		Updates(&domain.Task{
			Name:     t.Name,
			Priority: t.Priority,
			Complete: t.Complete,
			Due:      t.Due,
			Version:  expected + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", t.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrTaskNotFound
		}
		return domain.ErrStaleVersion
	}
	t.Version = expected + 1
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
