package session

import (
	"context"
	"errors"

	"glambook/models"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store persists conversation memory between turns.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationMemory, error)
	Save(ctx context.Context, mem *models.ConversationMemory) error
	Delete(ctx context.Context, sessionID string) error
}
