package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/transport"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

type ServiceAPI interface {
	Login(ctx context.Context, req LoginRequest) (*AuthTokens, error)
	Refresh(ctx context.Context, req RefreshTokenRequest) (*AuthTokens, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, accessToken string) (identity.SessionContext, *user.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	tokens, err := h.Service.Login(r.Context(), req)
	if err != nil {
		h.Logger.Error("Login: authentication failed", "error", err, "username", req.Username)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	tokens, err := h.Service.Refresh(r.Context(), req)
	if err != nil {
		h.Logger.Error("RefreshToken: token refresh failed", "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	if err := h.Service.Logout(r.Context(), sess.SessionID); err != nil {
		h.Logger.Error("Logout: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware resolves the bearer token to a session and a fresh user row
// and attaches both to the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteAppError(w, internal.ErrInvalidToken)
			return
		}

		sess, u, err := h.Service.Authenticate(r.Context(), token)
		if err != nil {
			h.Logger.Warn("auth middleware: rejected token", "error", err)
			h.WriteAppError(w, err)
			return
		}

		ctx := identity.WithSession(r.Context(), sess)
		ctx = WithUser(ctx, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
