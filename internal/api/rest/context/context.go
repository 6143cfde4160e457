package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

type userIDKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager represents an HTTP request context manager for user ID operations.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a copy of ctx carrying the authenticated user ID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID.
//
// Returns the user UUID and a boolean indicating if a non-nil user ID was found.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
