package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrYearOutOfRange is returned when a calendar seeding year falls
	// outside the supported range.
	ErrYearOutOfRange = errors.New("year out of range")

	// ErrYearRangeInverted is returned when a calendar seeding range ends
	// before it starts.
	ErrYearRangeInverted = errors.New("end year precedes start year")
)
