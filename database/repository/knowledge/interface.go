package knowledge

import (
	"context"
	"errors"

	"glambook/models"
)

// ErrNotFound is returned when no entry matches.
var ErrNotFound = errors.New("knowledge entry not found")

// Repository stores the admin-managed knowledge base used to ground
// question answering.
type Repository interface {
	ActiveContent(ctx context.Context, language string) ([]models.KnowledgeEntry, error)
	List(ctx context.Context, language string) ([]models.KnowledgeEntry, error)
	Create(ctx context.Context, entry *models.KnowledgeEntry) (string, error)
	Update(ctx context.Context, id string, entry *models.KnowledgeEntry) error
	Delete(ctx context.Context, id string) error
}
