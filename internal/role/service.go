package role

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/maritime-backoffice/internal/core/events"
)

type Repository interface {
	List(ctx context.Context) ([]*Role, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	Create(ctx context.Context, r *Role) error
	// UpdateAndSync saves r and runs assign over every member of the role in
	// the same transaction. It returns how many members were rewritten.
	UpdateAndSync(ctx context.Context, r *Role, assign func(*Membership)) (int64, error)
	// DeleteAndDetach runs detach over every member, then deletes the role,
	// all in one transaction.
	DeleteAndDetach(ctx context.Context, id int64, detach func(*Membership)) (*Role, int64, error)
}

type Service struct {
	repo   Repository
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Role, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Role, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req RoleRequest) (*Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := &Role{Name: req.Name, Permissions: req.Permissions.Normalize()}
	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error("failed to create role", "error", err, "name", req.Name)
		return nil, err
	}

	s.logger.Info("role created", "role_id", r.ID, "name", r.Name)
	return r, nil
}

// Update replaces a role's name and grid and re-derives the cached page map
// and class of every user holding it.
func (s *Service) Update(ctx context.Context, id int64, req RoleRequest) (*Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := &Role{ID: id, Name: req.Name, Permissions: req.Permissions.Normalize()}
	synced, err := s.repo.UpdateAndSync(ctx, r, func(m *Membership) {
		Apply(m, r)
	})
	if err != nil {
		s.logger.Error("failed to update role", "error", err, "role_id", id)
		return nil, err
	}

	s.logger.Info("role updated", "role_id", id, "name", r.Name, "users_synced", synced)
	s.publish(ctx, events.NewRoleUpdatedEvent(id, r.Name, synced))
	return r, nil
}

// Delete detaches every member from the role, then removes it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, detached, err := s.repo.DeleteAndDetach(ctx, id, Detach)
	if err != nil {
		s.logger.Error("failed to delete role", "error", err, "role_id", id)
		return err
	}

	s.logger.Info("role deleted", "role_id", id, "name", deleted.Name, "users_detached", detached)
	s.publish(ctx, events.NewRoleDeletedEvent(id, deleted.Name, detached))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish role event", "event_type", event.EventType(), "error", err)
	}
}
