package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/session"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type TokenGenerator interface {
	Generate(kind TokenKind, userID int64, sessionID string) (string, error)
	Validate(kind TokenKind, tokenString string) (*Claims, error)
}

type Service struct {
	users      UserLookup
	hasher     user.Hasher
	tokens     TokenGenerator
	sessions   session.Store
	sessionTTL time.Duration
	accessTTL  time.Duration
	logger     *slog.Logger
}

func NewService(users UserLookup, hasher user.Hasher, tokens TokenGenerator, sessions session.Store, sessionTTL, accessTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		accessTTL:  accessTTL,
		logger:     logger,
	}
}

// Login checks the credentials, opens a session and issues tokens bound to it.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByUsername(ctx, req.Username)
	if errors.Is(err, internal.ErrUserNotFound) {
		return nil, internal.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, req.Password) {
		s.logger.Warn("login rejected", "username", req.Username)
		return nil, internal.ErrInvalidCredentials
	}

	sess := session.New(u.ID, u.Username, s.sessionTTL)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, internal.NewInternalError("failed to open session", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID, "username", u.Username, "session_id", sess.ID)
	return s.issue(u.ID, sess.ID)
}

// Refresh trades a refresh token for a new pair while its session is alive.
func (s *Service) Refresh(ctx context.Context, req RefreshTokenRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.tokens.Validate(RefreshToken, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if _, err := s.liveSession(ctx, claims); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrSessionExpired
		}
		return nil, err
	}

	return s.issue(claims.UserID, claims.SessionID)
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return internal.NewInternalError("failed to close session", err)
	}
	s.logger.Info("user logged out", "session_id", sessionID)
	return nil
}

// Authenticate resolves an access token to the current identity. The user
// row is read fresh so role changes apply to open sessions.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (identity.SessionContext, *user.User, error) {
	claims, err := s.tokens.Validate(AccessToken, accessToken)
	if err != nil {
		return identity.SessionContext{}, nil, err
	}
	if _, err := s.liveSession(ctx, claims); err != nil {
		return identity.SessionContext{}, nil, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, internal.ErrUserNotFound) {
		return identity.SessionContext{}, nil, internal.ErrSessionExpired
	}
	if err != nil {
		return identity.SessionContext{}, nil, err
	}

	return identity.SessionContext{
		SessionID:    claims.SessionID,
		UserID:       u.ID,
		Username:     u.Username,
		RoleClass:    u.SessionClass(),
		EmployeeName: u.EmployeeName(),
	}, u, nil
}

func (s *Service) liveSession(ctx context.Context, claims *Claims) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, internal.ErrInvalidToken
	}
	return sess, nil
}

func (s *Service) issue(userID int64, sessionID string) (*AuthTokens, error) {
	access, err := s.tokens.Generate(AccessToken, userID, sessionID)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}
	refresh, err := s.tokens.Generate(RefreshToken, userID, sessionID)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}
	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
