package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/auth"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/transport"
)

// Guard builds the page and admin checks that sit behind the auth middleware.
type Guard struct {
	*transport.BaseHandler
}

func NewGuard(logger *slog.Logger) *Guard {
	return &Guard{BaseHandler: transport.NewBaseHandler(logger)}
}

// RequirePage lets a request through when the user's page map allows page.
// Admins pass every page check.
func (g *Guard) RequirePage(page permission.Page) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.UserFromContext(r.Context())
			if !ok {
				g.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !u.CanAccess(page) {
				g.Logger.Warn("access denied: page not granted", "user_id", u.ID, "page", page)
				g.WriteAppError(w, internal.ErrPageForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := identity.FromContext(r.Context())
			if !ok {
				g.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !sess.IsAdmin() {
				g.Logger.Warn("access denied: admin required", "user_id", sess.UserID)
				g.WriteAppError(w, internal.ErrAdminRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
