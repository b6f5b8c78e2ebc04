package auth

import (
	"context"

	"github.com/frahmantamala/maritime-backoffice/internal/user"
)

type ctxKey string

const contextUserKey ctxKey = "user"

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(contextUserKey).(*user.User)
	return u, ok && u != nil
}
