package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	reservationserrors "spacebook/internal/reservations/errors"
	"spacebook/pkg/model"
)

// memoryReservationRepository serves single process deployments and tests.
// Admission exclusion comes from the service's keyed mutex, so WithSpaceLock
// only runs fn.
type memoryReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]model.Reservation
}

func NewMemoryReservationRepository() ReservationRepository {
	return &memoryReservationRepository{reservations: make(map[string]model.Reservation)}
}

func (r *memoryReservationRepository) Create(_ context.Context, reservation *model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation.CreatedAt = time.Now().UTC()
	r.reservations[reservation.ID] = *reservation
	return nil
}

func (r *memoryReservationRepository) FindByID(_ context.Context, id string) (*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil, reservationserrors.ErrNotFound
	}
	return &reservation, nil
}

func (r *memoryReservationRepository) FindBySpaceAndDate(ctx context.Context, spaceID, date string) ([]*model.Reservation, error) {
	return r.FindAll(ctx, model.ReservationFilter{SpaceIDs: []string{spaceID}, Date: date})
}

func (r *memoryReservationRepository) FindAll(_ context.Context, filter model.ReservationFilter) ([]*model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spaces := make(map[string]struct{}, len(filter.SpaceIDs))
	for _, id := range filter.SpaceIDs {
		spaces[id] = struct{}{}
	}

	out := []*model.Reservation{}
	for _, reservation := range r.reservations {
		if len(spaces) > 0 {
			if _, ok := spaces[reservation.SpaceID]; !ok {
				continue
			}
		}
		if filter.Date != "" && reservation.Date != filter.Date {
			continue
		}
		reservation := reservation
		out = append(out, &reservation)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *memoryReservationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[id]; !ok {
		return reservationserrors.ErrNotFound
	}
	delete(r.reservations, id)
	return nil
}

func (r *memoryReservationRepository) DeleteBySpace(_ context.Context, spaceID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, reservation := range r.reservations {
		if reservation.SpaceID == spaceID {
			delete(r.reservations, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryReservationRepository) WithSpaceLock(ctx context.Context, _, _ string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
