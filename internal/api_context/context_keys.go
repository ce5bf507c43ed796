package api_context

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type ctxKey string

const (
	IDKey          ctxKey = "id"
	RequesterIDKey ctxKey = "requesterID"
	AuthRolesKey   ctxKey = "authRoles"
)

func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(IDKey).(uuid.UUID)
	return id, ok
}

func RequesterIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RequesterIDKey).(uuid.UUID)
	return id, ok
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}
