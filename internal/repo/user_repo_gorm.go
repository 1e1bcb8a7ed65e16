package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-todo-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && isDupKey(err) {
		// Unique index on name; a concurrent create slipped in first.
		return domain.ErrNameTaken
	}
	return err
}

func (r *UserRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepo) UpdateVersioned(ctx context.Context, u *domain.User) error {
	expected := u.Version
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND version = ?", u.ID, expected).
		Select("name", "password_hash", "roles", "version").
		Updates(&domain.User{
			Name:         u.Name,
			PasswordHash: u.PasswordHash,
			Roles:        u.Roles,
			Version:      expected + 1,
		})
	if res.Error != nil {
		if isDupKey(res.Error) {
			return domain.ErrNameTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		// CAS miss: tell a vanished row apart from a stale version.
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrUserNotFound
		}
		return domain.ErrStaleVersion
	}
	u.Version = expected + 1
	return nil
}

// isDupKey avoids depending on gorm.ErrDuplicatedKey, which not every driver
// version reports.
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
