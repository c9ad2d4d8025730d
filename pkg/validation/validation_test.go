package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Date  string `json:"date" validate:"required,date_ymd"`
	Start string `json:"start_time" validate:"required,clock_hhmm"`
	Note  string `json:"note,omitempty" validate:"omitempty,max=5"`
}

func TestStruct(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name       string
		input      sample
		wantFields []string
	}{
		{"valid", sample{Date: "2026-05-01", Start: "08:00"}, nil},
		{"missing date", sample{Start: "08:00"}, []string{"date"}},
		{"bad date", sample{Date: "01/05/2026", Start: "08:00"}, []string{"date"}},
		{"impossible date", sample{Date: "2026-02-30", Start: "08:00"}, []string{"date"}},
		{"bad clock", sample{Date: "2026-05-01", Start: "8:00"}, []string{"start_time"}},
		{"long note", sample{Date: "2026-05-01", Start: "08:00", Note: "toolong"}, []string{"note"}},
		{"everything wrong", sample{Date: "x", Start: "25:00", Note: "toolong"}, []string{"date", "start_time", "note"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, tt.input)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error %v is not ValidationErrors", err)
			}
			if len(verrs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(verrs), verrs, len(tt.wantFields))
			}
			for i, field := range tt.wantFields {
				if verrs[i].Field != field {
					t.Errorf("error %d field = %q, want %q", i, verrs[i].Field, field)
				}
			}
		})
	}
}

func TestTranslateMessages(t *testing.T) {
	v, _ := New()
	err := Struct(v, sample{Date: "bad", Start: "08:00"})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatal("expected ValidationErrors")
	}
	if verrs[0].Message != "date must be a date in YYYY-MM-DD format" {
		t.Errorf("message = %q", verrs[0].Message)
	}
}
