package session

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/maritime-backoffice/internal/core/events"
)

// RevokeOnUserDeleted drops every session of a deleted user once the
// user.deleted event is published.
func RevokeOnUserDeleted(bus events.Subscriber, store Store, logger *slog.Logger) {
	events.OnUserDeleted(bus, func(ctx context.Context, e *events.UserDeletedEvent) error {
		n, err := store.DeleteForUser(ctx, e.UserID)
		if err != nil {
			return err
		}
		logger.Info("sessions revoked", "user_id", e.UserID, "username", e.Username, "count", n)
		return nil
	})
}
