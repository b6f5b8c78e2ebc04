package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/events"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
)

type Repository interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdatePermissions(ctx context.Context, id int64, flat permission.FlatMap) error
}

type RoleLookup interface {
	GetByID(ctx context.Context, id int64) (*role.Role, error)
}

// Hasher hashes and checks passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type Service struct {
	repo   Repository
	roles  RoleLookup
	hasher Hasher
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo Repository, roles RoleLookup, hasher Hasher, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		roles:  roles,
		hasher: hasher,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func (s *Service) Me(ctx context.Context, sess identity.SessionContext) (*MeView, error) {
	u, err := s.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return &MeView{
		ID:           u.ID,
		Username:     u.Username,
		RoleClass:    string(sess.RoleClass),
		EmployeeName: sess.EmployeeName,
		Permissions:  u.Permissions,
	}, nil
}

// loadRole resolves an optional role id. No id means no role; an id that
// matches nothing is ErrRoleNotFound.
func (s *Service) loadRole(ctx context.Context, id *int64) (*role.Role, error) {
	if id == nil {
		return nil, nil
	}
	return s.roles.GetByID(ctx, *id)
}

// CreateUser adds a login. Its page map and class come from the role; with
// no role every page is off. Non-personnel accounts never carry an employee link.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, internal.ErrDuplicateUsername
	} else if !errors.Is(err, internal.ErrUserNotFound) {
		return nil, err
	}

	r, err := s.loadRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Username:         req.Username,
		PasswordHash:     hash,
		EmployeeFullName: req.EmployeeFullName,
		NonPersonnel:     req.NonPersonnel,
	}
	if req.NonPersonnel {
		u.EmployeeFullName = nil
	}
	m := u.membership()
	role.Apply(&m, r)
	u.adopt(m)

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", req.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role_class", u.RoleClass)
	return u, nil
}

// EditUser renames, relinks and reassigns a user. The bootstrap admin keeps
// its username and full access.
func (s *Service) EditUser(ctx context.Context, id int64, req EditUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsBootstrapAdmin() && req.Username != identity.BootstrapUsername {
		s.logger.Warn("attempt to rename the bootstrap admin", "user_id", id, "username", req.Username)
		return nil, internal.ErrProtectedAccount
	}

	r, err := s.loadRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	u.Username = req.Username
	u.EmployeeFullName = req.EmployeeFullName
	m := u.membership()
	role.Apply(&m, r)
	u.adopt(m)

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "username", u.Username)
	return u, nil
}

// DeleteUser removes a user and then revokes their sessions through the
// user.deleted event.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.IsBootstrapAdmin() {
		return internal.ErrProtectedAccount
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deleted", "user_id", id, "username", u.Username)

	if s.events != nil {
		if err := s.events.PublishSync(ctx, events.NewUserDeletedEvent(id, u.Username)); err != nil {
			return fmt.Errorf("revoke sessions for user %d: %w", id, err)
		}
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.logger.Info("user password changed", "user_id", id)
	return nil
}

// ReconcileBootstrapAdmin widens the bootstrap admin's page map to full
// access. Missing admin accounts are left alone.
func (s *Service) ReconcileBootstrapAdmin(ctx context.Context) error {
	u, err := s.repo.GetByUsername(ctx, identity.BootstrapUsername)
	if errors.Is(err, internal.ErrUserNotFound) {
		s.logger.Info("bootstrap admin not present, nothing to reconcile")
		return nil
	}
	if err != nil {
		return err
	}

	flat := u.Permissions.Union(permission.FullFlat())
	if err := s.repo.UpdatePermissions(ctx, u.ID, flat); err != nil {
		return fmt.Errorf("reconcile bootstrap admin: %w", err)
	}
	s.logger.Info("bootstrap admin reconciled", "user_id", u.ID)
	return nil
}
