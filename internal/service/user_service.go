package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-todo-api/internal/domain"
	"go-todo-api/pkg/utils"
)

// UserDraft is the admin-supplied part of a new account. The password is
// hashed before anything is persisted.
type UserDraft struct {
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UserPatch updates name and roles. The password is never mutated through
// this path; ChangeOwnPassword is the only way to replace it.
type UserPatch struct {
	ID      uint64   `json:"id"`
	Name    string   `json:"name"`
	Roles   []string `json:"roles"`
	Version int64    `json:"version"`
}

type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, log: log, now: time.Now}
}

// ListAll returns every account. Admin only.
func (s *UserService) ListAll(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	if err := Authorize(p, ManageUsers, 0); err != nil {
		return nil, err
	}
	return s.users.ListAll(ctx)
}

func (s *UserService) Create(ctx context.Context, p domain.Principal, draft UserDraft) (*domain.User, error) {
	if err := Authorize(p, ManageUsers, 0); err != nil {
		return nil, err
	}
	if strings.TrimSpace(draft.Name) == "" {
		return nil, domain.NewValidationError("name", "must not be blank")
	}
	if draft.Password == "" {
		return nil, domain.NewValidationError("password", "must not be blank")
	}
	if _, err := s.users.FindByName(ctx, draft.Name); err == nil {
		return nil, domain.ErrNameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	roles := draft.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	u := &domain.User{
		Name:         draft.Name,
		PasswordHash: utils.HashPassword(draft.Password),
		Roles:        roles,
		Created:      s.now(),
		Version:      0,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.Uint64("id", u.ID), zap.String("name", u.Name))
	return u, nil
}

func (s *UserService) FindByID(ctx context.Context, p domain.Principal, id uint64) (*domain.User, error) {
	if err := Authorize(p, ManageUsers, 0); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// GetSelf returns the caller's own record; any authenticated principal.
func (s *UserService) GetSelf(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.users.FindByID(ctx, p.ID)
}

func (s *UserService) Update(ctx context.Context, p domain.Principal, patch UserPatch) (*domain.User, error) {
	if err := Authorize(p, ManageUsers, 0); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	if patch.Version != u.Version {
		return nil, domain.ErrStaleVersion
	}
	if strings.TrimSpace(patch.Name) == "" {
		return nil, domain.NewValidationError("name", "must not be blank")
	}
	if patch.Name != u.Name {
		if _, err := s.users.FindByName(ctx, patch.Name); err == nil {
			return nil, domain.ErrNameTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	u.Name = patch.Name
	if patch.Roles != nil {
		u.Roles = patch.Roles
	}
	if err := s.users.UpdateVersioned(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureSeedAdmin creates the administrative account if it is absent. Called
// at startup and from cmd/admin; not reachable through HTTP.
func (s *UserService) EnsureSeedAdmin(ctx context.Context, name, password string) (*domain.User, error) {
	if name == "" {
		name = "admin"
	}
	u, err := s.users.FindByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "seed admin password must be set")
	}
	u = &domain.User{
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		Roles:        []string{domain.RoleAdmin, domain.RoleUser},
		Created:      s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrNameTaken) {
			// another instance seeded first
			return s.users.FindByName(ctx, name)
		}
		return nil, err
	}
	s.log.Info("seed admin created", zap.Uint64("id", u.ID), zap.String("name", u.Name))
	return u, nil
}

// Authenticate verifies name/password for token issuance at the boundary.
// The boundary reports every failure the same way so callers cannot probe
// which names exist.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (*domain.User, error) {
	u, err := s.users.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrPasswordMismatch
	}
	return u, nil
}

// ChangeOwnPassword replaces the caller's password hash after verifying the
// current one. A mismatch is reported as a conflict, matching the stale-write
// semantics of every other rejected mutation.
func (s *UserService) ChangeOwnPassword(ctx context.Context, p domain.Principal, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.NewValidationError("newPassword", "must not be blank")
	}
	u, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(currentPassword, u.PasswordHash) {
		return domain.ErrPasswordMismatch
	}
	u.PasswordHash = utils.HashPassword(newPassword)
	if err := s.users.UpdateVersioned(ctx, u); err != nil {
		return err
	}
	s.log.Info("password changed", zap.Uint64("id", u.ID))
	return nil
}
