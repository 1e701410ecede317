// Package service contains application services that coordinate domain
// logic with the persistence layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mbranch/crud-api/internal/domain"
	"github.com/mbranch/crud-api/internal/platform/logger"
	"github.com/mbranch/crud-api/internal/store"
)

// Year bounds accepted by the seeder. The upper bound keeps generated ranges
// well inside what a date dimension table is expected to hold.
const (
	MinSeedYear = 1970
	MaxSeedYear = 2047
)

// seedBatchSize is the number of calendar rows accumulated before a flush to
// the store.
const seedBatchSize = 1000

// CalendarSeeder populates the calendar dimension table with one row per day
// over an inclusive range of years.
type CalendarSeeder struct {
	calendarStore store.CalendarStore
	logger        *slog.Logger
}

// NewCalendarSeeder creates a CalendarSeeder with the given store.
func NewCalendarSeeder(calendarStore store.CalendarStore, log *slog.Logger) *CalendarSeeder {
	if calendarStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("calendarStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CalendarSeeder{
		calendarStore: calendarStore,
		logger:        log.With(slog.String("component", "calendar_seeder")),
	}
}

// ValidateYear checks that a single year is inside the supported range.
func ValidateYear(year int) error {
	if year < MinSeedYear || year > MaxSeedYear {
		return fmt.Errorf("%w: %d (must be between %d and %d)",
			domain.ErrYearOutOfRange, year, MinSeedYear, MaxSeedYear)
	}
	return nil
}

// ValidateYearRange checks both bounds and their ordering.
func ValidateYearRange(startYear, endYear int) error {
	if err := ValidateYear(startYear); err != nil {
		return err
	}
	if err := ValidateYear(endYear); err != nil {
		return err
	}
	if endYear < startYear {
		return fmt.Errorf("%w: %d > %d", domain.ErrYearRangeInverted, startYear, endYear)
	}
	return nil
}

// Seed inserts one calendar row per day from January 1 of startYear through
// December 31 of endYear, flushing to the store every seedBatchSize rows. It
// returns the number of rows generated.
func (s *CalendarSeeder) Seed(ctx context.Context, startYear, endYear int) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ValidateYearRange(startYear, endYear); err != nil {
		return 0, err
	}

	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	log.Info("seeding calendar dimension",
		slog.Int("start_year", startYear),
		slog.Int("end_year", endYear))

	var total int64
	batch := make([]*domain.CalendarDay, 0, seedBatchSize)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		batch = append(batch, domain.NewCalendarDay(d))
		total++

		if len(batch) == seedBatchSize {
			if err := s.calendarStore.CreateBatch(ctx, batch); err != nil {
				return total - int64(len(batch)), fmt.Errorf("failed to insert calendar batch: %w", err)
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := s.calendarStore.CreateBatch(ctx, batch); err != nil {
			return total - int64(len(batch)), fmt.Errorf("failed to insert calendar batch: %w", err)
		}
	}

	log.Info("calendar seeding complete", slog.Int64("rows", total))
	return total, nil
}
