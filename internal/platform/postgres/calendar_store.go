package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mbranch/crud-api/internal/domain"
	"github.com/mbranch/crud-api/internal/platform/logger"
	"github.com/mbranch/crud-api/internal/store"
)

// calendarColumnCount is the number of columns per calendar row, used to
// compute placeholder positions in the batch insert.
const calendarColumnCount = 11

// CalendarStore implements the store.CalendarStore interface using a
// PostgreSQL database as the storage backend.
type CalendarStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCalendarStore creates a new PostgreSQL implementation of the
// CalendarStore interface.
func NewCalendarStore(db store.DBTX, log *slog.Logger) *CalendarStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CalendarStore{
		db:     db,
		logger: log.With(slog.String("component", "calendar_store")),
	}
}

// Ensure CalendarStore implements store.CalendarStore interface
var _ store.CalendarStore = (*CalendarStore)(nil)

// CreateBatch implements store.CalendarStore.CreateBatch. All rows go into
// a single multi-row INSERT; re-seeding an overlapping range is a no-op for
// days already present.
func (s *CalendarStore) CreateBatch(ctx context.Context, days []*domain.CalendarDay) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if len(days) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO calendar_days
		(date, year, quarter, month, week, day_of_month, day_of_week, day_of_year, month_name, day_name, weekend)
		VALUES `)

	args := make([]any, 0, len(days)*calendarColumnCount)
	for i, d := range days {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * calendarColumnCount
		sb.WriteString("(")
		for j := 1; j <= calendarColumnCount; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteString(")")

		args = append(args,
			d.Date, d.Year, d.Quarter, d.Month, d.Week,
			d.DayOfMonth, d.DayOfWeek, d.DayOfYear,
			d.MonthName, d.DayName, d.Weekend,
		)
	}
	sb.WriteString(" ON CONFLICT (date) DO NOTHING")

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		log.Error("failed to insert calendar batch",
			slog.String("error", err.Error()),
			slog.Int("rows", len(days)))
		return MapError(err)
	}

	log.Debug("inserted calendar batch", slog.Int("rows", len(days)))
	return nil
}

// Count implements store.CalendarStore.Count.
func (s *CalendarStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM calendar_days").Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}
