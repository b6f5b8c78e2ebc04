package preference

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/maritime-backoffice/internal"
)

type Repository interface {
	Get(ctx context.Context, userID int64) (*Preference, error)
	Upsert(ctx context.Context, p *Preference) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the stored colors, or the defaults when the user never saved any.
func (s *Service) Get(ctx context.Context, userID int64) (*Preference, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, internal.ErrRecordNotFound) {
		return Defaults(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Save(ctx context.Context, userID int64, req PreferenceRequest) (*Preference, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &Preference{
		UserID:          userID,
		HeaderColor:     strings.ToLower(req.HeaderColor),
		ButtonColor:     strings.ToLower(req.ButtonColor),
		BackgroundColor: strings.ToLower(req.BackgroundColor),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		s.logger.Error("failed to save preferences", "error", err, "user_id", userID)
		return nil, err
	}
	return p, nil
}
