package timeslot

import (
	"errors"
	"testing"
)

func TestGenerate_ThirtyMinutes(t *testing.T) {
	grid, err := Generate(30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(grid) != 28 {
		t.Fatalf("expected 28 slots, got %d", len(grid))
	}
	if grid[0].Start.String() != "08:00" || grid[0].End.String() != "08:30" {
		t.Errorf("first slot = %s-%s, want 08:00-08:30", grid[0].Start, grid[0].End)
	}
	last := grid[len(grid)-1]
	if last.Start.String() != "21:30" || last.End.String() != "22:00" {
		t.Errorf("last slot = %s-%s, want 21:30-22:00", last.Start, last.End)
	}
}

func TestGenerate_OrderedAndContiguous(t *testing.T) {
	for _, duration := range []int{1, 7, 15, 25, 30, 45, 60, 90, 120, 500, 840, 900} {
		grid, err := Generate(duration)
		if err != nil {
			t.Fatalf("duration %d: unexpected error: %v", duration, err)
		}
		if len(grid) == 0 {
			t.Fatalf("duration %d: empty grid", duration)
		}
		if grid[0].Start != Open {
			t.Errorf("duration %d: first slot starts at %s", duration, grid[0].Start)
		}
		for i, slot := range grid {
			if slot.End != slot.Start.Add(duration) {
				t.Errorf("duration %d: slot %d end %d != start %d + duration", duration, i, slot.End, slot.Start)
			}
			if slot.Start >= Close {
				t.Errorf("duration %d: slot %d starts at or after close: %s", duration, i, slot.Start)
			}
			if i > 0 && grid[i-1].End != slot.Start {
				t.Errorf("duration %d: slots %d and %d are not contiguous", duration, i-1, i)
			}
		}
	}
}

func TestGenerate_LastSlotMayOverrunClose(t *testing.T) {
	grid, err := Generate(45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 14h = 840min; 840/45 = 18.67 so 19 slots, the last one 21:30-22:15.
	if len(grid) != 19 {
		t.Fatalf("expected 19 slots, got %d", len(grid))
	}
	last := grid[len(grid)-1]
	if !AllowOverrun || last.End <= Close {
		t.Fatalf("expected last slot to overrun close, got %s-%s", last.Start, last.End)
	}
	if last.Start.String() != "21:30" || last.End.String() != "22:15" {
		t.Errorf("last slot = %s-%s, want 21:30-22:15", last.Start, last.End)
	}
}

func TestGenerate_InvalidDuration(t *testing.T) {
	for _, duration := range []int{0, -1, -30} {
		if _, err := Generate(duration); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidDuration", duration, err)
		}
	}
}

func TestGenerate_CachedGridIsNotShared(t *testing.T) {
	first, _ := Generate(60)
	first[0].Start = At(3, 0)

	second, _ := Generate(60)
	if second[0].Start != Open {
		t.Fatalf("mutation of a returned grid leaked into the cache: %s", second[0].Start)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeSlot
		want bool
	}{
		{"back to back", TimeSlot{At(8, 0), At(8, 30)}, TimeSlot{At(8, 30), At(9, 0)}, false},
		{"partial", TimeSlot{At(8, 0), At(8, 30)}, TimeSlot{At(8, 15), At(8, 45)}, true},
		{"identical", TimeSlot{At(8, 0), At(8, 30)}, TimeSlot{At(8, 0), At(8, 30)}, true},
		{"contained", TimeSlot{At(8, 0), At(10, 0)}, TimeSlot{At(9, 0), At(9, 30)}, true},
		{"disjoint", TimeSlot{At(8, 0), At(8, 30)}, TimeSlot{At(12, 0), At(12, 30)}, false},
		{"past midnight", TimeSlot{At(21, 0), At(25, 0)}, TimeSlot{At(23, 0), At(23, 30)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}
