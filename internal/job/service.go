package job

import (
	"context"
	"log/slog"
)

type Repository interface {
	List(ctx context.Context) ([]*Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	Create(ctx context.Context, j *Job) error
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id int64) error
	JobNumbers(ctx context.Context) ([]string, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns jobs newest first.
func (s *Service) List(ctx context.Context) ([]*Job, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) JobNumbers(ctx context.Context) ([]string, error) {
	return s.repo.JobNumbers(ctx)
}

// Create stores a job; its number is assigned on insert.
func (s *Service) Create(ctx context.Context, req JobRequest) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	j := &Job{}
	req.apply(j)
	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.Error("failed to create job", "error", err)
		return nil, err
	}

	s.logger.Info("job created", "job_id", j.ID, "job_number", j.JobNumber)
	return j, nil
}

func (s *Service) Update(ctx context.Context, id int64, req JobRequest) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(j)

	if err := s.repo.Update(ctx, j); err != nil {
		s.logger.Error("failed to update job", "error", err, "job_id", id)
		return nil, err
	}
	return j, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("job deleted", "job_id", id)
	return nil
}
