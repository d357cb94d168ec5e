package services

import (
	"context"

	"aichat-server/pkg/logger"
)

// WithOwnerContext stamps the authenticated owner id onto the request
// context, both for handler access and for log correlation.
func WithOwnerContext(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, logger.OwnerIdKey, ownerID)
}

// OwnerIDFromContext returns the owner id placed by the auth
// middleware, and whether one was present.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(logger.OwnerIdKey).(string)
	if !ok || ownerID == "" {
		return "", false
	}
	return ownerID, true
}
