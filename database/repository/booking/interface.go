package booking

import (
	"context"
	"errors"

	"glambook/models"
)

// ErrNotFound is returned when no booking matches the query.
var ErrNotFound = errors.New("booking not found")

// Repository stores and retrieves agent bookings.
type Repository interface {
	SavePending(ctx context.Context, b *models.Booking) error
	MarkVerified(ctx context.Context, sessionID string) (string, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	List(ctx context.Context, status string, limit, offset int64) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
}
