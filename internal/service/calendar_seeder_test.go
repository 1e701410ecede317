package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranch/crud-api/internal/domain"
)

// recordingCalendarStore captures every batch passed to CreateBatch so tests
// can assert on batching behavior without a database.
type recordingCalendarStore struct {
	batches [][]*domain.CalendarDay
	failOn  int // 1-based batch index to fail on; 0 means never fail
	err     error
}

func (s *recordingCalendarStore) CreateBatch(_ context.Context, days []*domain.CalendarDay) error {
	copied := make([]*domain.CalendarDay, len(days))
	copy(copied, days)
	s.batches = append(s.batches, copied)
	if s.failOn != 0 && len(s.batches) == s.failOn {
		return s.err
	}
	return nil
}

func (s *recordingCalendarStore) Count(_ context.Context) (int64, error) {
	var n int64
	for _, b := range s.batches {
		n += int64(len(b))
	}
	return n, nil
}

func (s *recordingCalendarStore) rows() []*domain.CalendarDay {
	var all []*domain.CalendarDay
	for _, b := range s.batches {
		all = append(all, b...)
	}
	return all
}

func TestCalendarSeeder_Seed_LeapYear(t *testing.T) {
	t.Parallel()

	rec := &recordingCalendarStore{}
	seeder := NewCalendarSeeder(rec, nil)

	total, err := seeder.Seed(context.Background(), 2020, 2020)
	require.NoError(t, err)
	assert.Equal(t, int64(366), total, "2020 is a leap year")

	rows := rec.rows()
	require.Len(t, rows, 366)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC), rows[len(rows)-1].Date)
}

func TestCalendarSeeder_Seed_BatchesEveryThousandRows(t *testing.T) {
	t.Parallel()

	rec := &recordingCalendarStore{}
	seeder := NewCalendarSeeder(rec, nil)

	// 1970-1972 is 365+365+366 = 1096 days.
	total, err := seeder.Seed(context.Background(), 1970, 1972)
	require.NoError(t, err)
	assert.Equal(t, int64(1096), total)

	require.Len(t, rec.batches, 2)
	assert.Len(t, rec.batches[0], 1000)
	assert.Len(t, rec.batches[1], 96, "remainder flushed after the loop")
}

func TestCalendarSeeder_Seed_ValidatesYearRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		startYear int
		endYear   int
		wantErr   error
	}{
		{
			name:      "start year below minimum",
			startYear: 1969,
			endYear:   2020,
			wantErr:   domain.ErrYearOutOfRange,
		},
		{
			name:      "end year above maximum",
			startYear: 2020,
			endYear:   2048,
			wantErr:   domain.ErrYearOutOfRange,
		},
		{
			name:      "end year precedes start year",
			startYear: 2021,
			endYear:   2020,
			wantErr:   domain.ErrYearRangeInverted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recordingCalendarStore{}
			seeder := NewCalendarSeeder(rec, nil)

			total, err := seeder.Seed(context.Background(), tt.startYear, tt.endYear)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, total)
			assert.Empty(t, rec.batches, "no rows should reach the store")
		})
	}
}

func TestCalendarSeeder_Seed_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset")
	rec := &recordingCalendarStore{failOn: 2, err: storeErr}
	seeder := NewCalendarSeeder(rec, nil)

	total, err := seeder.Seed(context.Background(), 1970, 1975)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, int64(1000), total, "rows from the failed batch are not counted")
}

func TestNewCalendarSeeder_PanicsOnNilStore(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewCalendarSeeder(nil, nil)
	})
}

func TestValidateYearRange(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateYearRange(MinSeedYear, MaxSeedYear))
	assert.NoError(t, ValidateYearRange(2020, 2020))
	assert.ErrorIs(t, ValidateYearRange(MinSeedYear-1, 2020), domain.ErrYearOutOfRange)
	assert.ErrorIs(t, ValidateYearRange(2020, MaxSeedYear+1), domain.ErrYearOutOfRange)
	assert.ErrorIs(t, ValidateYearRange(2021, 2020), domain.ErrYearRangeInverted)
}
