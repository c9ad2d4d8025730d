package timeslot

import "errors"

var (
	ErrInvalidDuration = errors.New("slot duration must be positive")

	ErrInvalidClock = errors.New("time of day must be in HH:MM format")

	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)
