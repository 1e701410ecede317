package store

import (
	"context"

	"github.com/mbranch/crud-api/internal/domain"
)

// CalendarStore defines the persistence operations for calendar dimension
// rows, used by the seeding command.
type CalendarStore interface {
	// CreateBatch inserts the given calendar days in a single statement.
	CreateBatch(ctx context.Context, days []*domain.CalendarDay) error

	// Count returns the number of calendar rows currently stored.
	Count(ctx context.Context) (int64, error)
}
