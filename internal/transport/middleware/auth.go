package middleware

import (
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

// SessionLogger tags the request logger with the authenticated user.
func SessionLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := identity.FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "user_id", sess.UserID, "role_class", sess.RoleClass)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
