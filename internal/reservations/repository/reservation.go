package repository

import (
	"context"
	"fmt"

	"spacebook/pkg/config"
	"spacebook/pkg/model"
)

const (
	CollectionName     = "Reservations"
	LockCollectionName = "Reservation_locks"
	TableName          = "reservations"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindBySpaceAndDate(ctx context.Context, spaceID, date string) ([]*model.Reservation, error)
	// FindAll returns reservations ordered by date and start time. Empty
	// filter fields match everything.
	FindAll(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error)
	Delete(ctx context.Context, id string) error
	DeleteBySpace(ctx context.Context, spaceID string) (int64, error)

	// WithSpaceLock runs fn while holding the storage level admission lock
	// for (spaceID, date). Repository calls made with the ctx passed to fn
	// take part in the same transaction.
	WithSpaceLock(ctx context.Context, spaceID, date string, fn func(ctx context.Context) error) error
}

func New(cfg *config.Config) ReservationRepository {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		return NewMongoReservationRepository(cfg)
	case config.StoragePostgres:
		return NewPostgresReservationRepository(cfg)
	default:
		return NewMemoryReservationRepository()
	}
}

func lockID(spaceID, date string) string {
	return fmt.Sprintf("reservation_lock_%s_%s", spaceID, date)
}
