package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserDeleted = "user.deleted"
	EventTypeRoleUpdated = "role.updated"
	EventTypeRoleDeleted = "role.deleted"
)

type UserDeletedEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func NewUserDeletedEvent(userID int64, username string) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"username": username,
			},
		},
		UserID:   userID,
		Username: username,
	}
}

// RoleChangedEvent is published after a role update or delete commits.
// UsersSynced counts the accounts whose cached permissions were rewritten.
type RoleChangedEvent struct {
	BaseEvent
	RoleID      int64  `json:"role_id"`
	Name        string `json:"name"`
	UsersSynced int64  `json:"users_synced"`
}

func NewRoleUpdatedEvent(roleID int64, name string, usersSynced int64) *RoleChangedEvent {
	return newRoleChangedEvent(EventTypeRoleUpdated, roleID, name, usersSynced)
}

func NewRoleDeletedEvent(roleID int64, name string, usersSynced int64) *RoleChangedEvent {
	return newRoleChangedEvent(EventTypeRoleDeleted, roleID, name, usersSynced)
}

func newRoleChangedEvent(eventType string, roleID int64, name string, usersSynced int64) *RoleChangedEvent {
	return &RoleChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"role_id":      roleID,
				"name":         name,
				"users_synced": usersSynced,
			},
		},
		RoleID:      roleID,
		Name:        name,
		UsersSynced: usersSynced,
	}
}

// OnUserDeleted subscribes fn to user.deleted.
func OnUserDeleted(bus Subscriber, fn func(ctx context.Context, e *UserDeletedEvent) error) {
	bus.Subscribe(EventTypeUserDeleted, typed(fn))
}

// OnRoleChanged subscribes fn to both role.updated and role.deleted.
func OnRoleChanged(bus Subscriber, fn func(ctx context.Context, e *RoleChangedEvent) error) {
	h := typed(fn)
	bus.Subscribe(EventTypeRoleUpdated, h)
	bus.Subscribe(EventTypeRoleDeleted, h)
}

// typed adapts fn to a Handler. An event of any other concrete type is an error.
func typed[E Event](fn func(ctx context.Context, e E) error) Handler {
	return func(ctx context.Context, event Event) error {
		e, ok := event.(E)
		if !ok {
			return fmt.Errorf("unexpected event %T for %s", event, event.EventType())
		}
		return fn(ctx, e)
	}
}
