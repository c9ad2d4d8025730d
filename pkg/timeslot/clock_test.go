package timeslot

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{"08:00", At(8, 0), false},
		{"21:45", At(21, 45), false},
		{"00:00", 0, false},
		{"8:00", 0, true},
		{"24:00", 0, true},
		{"08:60", 0, true},
		{"", 0, true},
		{"08h00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidClock) {
					t.Fatalf("expected ErrInvalidClock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestClock_StringWrapsPastMidnight(t *testing.T) {
	if got := At(24, 30).String(); got != "00:30" {
		t.Errorf("String() = %q, want 00:30", got)
	}
	if got := At(9, 5).String(); got != "09:05" {
		t.Errorf("String() = %q, want 09:05", got)
	}
}

func TestTimeSlot_JSON(t *testing.T) {
	data, err := json.Marshal(TimeSlot{Start: At(8, 0), End: At(8, 30)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"start":"08:00","end":"08:30"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-01-10"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"10/01/2024", "2024-13-01", "2024-02-30", ""} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestFormatDisplayDate(t *testing.T) {
	if got := FormatDisplayDate("2024-01-10"); got != "10/01/2024" {
		t.Errorf("FormatDisplayDate = %q, want 10/01/2024", got)
	}
	if got := FormatDisplayDate("garbage"); got != "garbage" {
		t.Errorf("FormatDisplayDate = %q, want input unchanged", got)
	}
}
