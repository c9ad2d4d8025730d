package timeslot

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

const (
	// ClockLayout is the HH:MM wire format for times of day.
	ClockLayout = "15:04"
	// DateLayout is the YYYY-MM-DD wire format for calendar days.
	DateLayout = "2006-01-02"
	// DisplayDateLayout is the DD/MM/YYYY format used in reservation summaries.
	DisplayDateLayout = "02/01/2006"

	minutesPerDay = 24 * 60
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Clock is a time of day expressed in minutes since midnight. Values past
// 24:00 are legal: a slot that runs past midnight keeps counting instead of
// wrapping, so comparisons stay monotonic within a reservation date.
type Clock int

// At builds a Clock from hours and minutes.
func At(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses an HH:MM string.
func ParseClock(s string) (Clock, error) {
	if !clockRegex.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return At(t.Hour(), t.Minute()), nil
}

// Add advances the clock by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// String renders the clock as HH:MM on a 24 hour dial.
func (c Clock) String() string {
	m := int(c) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MarshalJSON encodes the clock as its "HH:MM" string.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a strict "HH:MM" string. A wrapped end ("00:30")
// decodes to its same-day value.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// FormatDisplayDate converts a YYYY-MM-DD date into DD/MM/YYYY. Unparseable
// input is returned unchanged.
func FormatDisplayDate(s string) string {
	d, err := ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format(DisplayDateLayout)
}
