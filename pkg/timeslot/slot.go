package timeslot

import "sync"

// Operating window of every space. A slot may start at any minute before
// Close and is allowed to run past it (see AllowOverrun).
var (
	Open  = At(8, 0)
	Close = At(22, 0)
)

// AllowOverrun documents the boundary policy of Generate: the last slot of
// the day keeps its full duration even when it ends after Close.
const AllowOverrun = true

// TimeSlot is a half-open interval [Start, End) within one calendar day.
type TimeSlot struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// Overlaps reports whether two half-open intervals share any minute.
// Intervals that only touch at an endpoint do not overlap.
func Overlaps(a, b TimeSlot) bool {
	return a.Start < b.End && a.End > b.Start
}

var gridCache sync.Map // int -> []TimeSlot

// Generate returns the ordered slot grid for one operating day.
func Generate(durationMinutes int) ([]TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	if cached, ok := gridCache.Load(durationMinutes); ok {
		return clone(cached.([]TimeSlot)), nil
	}

	grid := make([]TimeSlot, 0, int(Close-Open)/durationMinutes+1)
	for current := Open; current < Close; current = current.Add(durationMinutes) {
		grid = append(grid, TimeSlot{Start: current, End: current.Add(durationMinutes)})
	}

	gridCache.Store(durationMinutes, grid)
	return clone(grid), nil
}

func clone(slots []TimeSlot) []TimeSlot {
	out := make([]TimeSlot, len(slots))
	copy(out, slots)
	return out
}
