package timeslot

// Available returns the grid slots for durationMinutes that do not overlap
// any of the occupied intervals. When multiBooking is set the occupied
// intervals are ignored and the full grid is returned, because concurrent
// reservations on the same interval are admitted for such spaces.
func Available(durationMinutes int, multiBooking bool, occupied []TimeSlot) ([]TimeSlot, error) {
	grid, err := Generate(durationMinutes)
	if err != nil {
		return nil, err
	}
	if multiBooking || len(occupied) == 0 {
		return grid, nil
	}

	free := grid[:0]
	for _, slot := range grid {
		if !overlapsAny(slot, occupied) {
			free = append(free, slot)
		}
	}
	return free, nil
}

// FirstOverlap returns the index of the first interval in others that
// overlaps candidate, or -1.
func FirstOverlap(candidate TimeSlot, others []TimeSlot) int {
	for i, other := range others {
		if Overlaps(candidate, other) {
			return i
		}
	}
	return -1
}

func overlapsAny(slot TimeSlot, others []TimeSlot) bool {
	return FirstOverlap(slot, others) >= 0
}
