package employee

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/maritime-backoffice/internal/user"
)

type Repository interface {
	List(ctx context.Context) ([]*Employee, error)
	GetByID(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int64) error
	Names(ctx context.Context) ([]string, error)
}

// AccountCreator creates the optional login tied to a new employee.
type AccountCreator interface {
	CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.User, error)
}

// TxRunner runs fn in one transaction; repositories called with the ctx it
// hands to fn join that transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo     Repository
	accounts AccountCreator
	inTx     TxRunner
	logger   *slog.Logger
}

func NewService(repo Repository, accounts AccountCreator, inTx TxRunner, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		inTx:     inTx,
		logger:   logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// Names lists every employee full name in id order.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	return s.repo.Names(ctx)
}

// Create adds an employee and, when the request carries one, a linked user
// account. Both rows commit together or not at all.
func (s *Service) Create(ctx context.Context, req EmployeeRequest) (*Employee, *user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	e := &Employee{}
	req.apply(e)

	if req.User == nil {
		if err := s.repo.Create(ctx, e); err != nil {
			s.logger.Error("failed to create employee", "error", err, "full_name", e.FullName)
			return nil, nil, err
		}
		s.logger.Info("employee created", "employee_id", e.ID, "full_name", e.FullName)
		return e, nil, nil
	}

	var account *user.User
	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return err
		}
		name := e.FullName
		u, err := s.accounts.CreateUser(ctx, user.CreateUserRequest{
			Username:         req.User.Username,
			Password:         req.User.Password,
			RoleID:           req.User.RoleID,
			EmployeeFullName: &name,
		})
		if err != nil {
			return err
		}
		account = u
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create employee with account", "error", err, "full_name", e.FullName)
		return nil, nil, err
	}

	s.logger.Info("employee created", "employee_id", e.ID, "full_name", e.FullName, "user_id", account.ID)
	return e, account, nil
}

func (s *Service) Update(ctx context.Context, id int64, req EmployeeRequest) (*Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(e)

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
