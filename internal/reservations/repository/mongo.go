package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "spacebook/internal/reservations/errors"
	"spacebook/pkg/config"
	mongodb "spacebook/pkg/db/mongo"
	"spacebook/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	locks      *lockRepository
	txManager  mongodb.TransactionManager
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		locks:      newLockRepository(db.Collection(LockCollectionName), cfg.ReservationLockTTL, cfg.ReservationLockWait),
		txManager:  mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var reservation model.Reservation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

func (r *mongoReservationRepository) FindBySpaceAndDate(ctx context.Context, spaceID, date string) ([]*model.Reservation, error) {
	return r.find(ctx, bson.M{"space_id": spaceID, "date": date})
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error) {
	query := bson.M{}
	if len(filter.SpaceIDs) > 0 {
		query["space_id"] = bson.M{"$in": filter.SpaceIDs}
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	return r.find(ctx, query)
}

func (r *mongoReservationRepository) find(ctx context.Context, filter bson.M) ([]*model.Reservation, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "start_time", Value: 1},
		{Key: "created_at", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*model.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return reservationserrors.ErrNotFound
	}
	return nil
}

func (r *mongoReservationRepository) DeleteBySpace(ctx context.Context, spaceID string) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"space_id": spaceID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reservations of space: %w", err)
	}
	return result.DeletedCount, nil
}

// WithSpaceLock holds the advisory lock document for (spaceID, date) and runs
// fn inside a transaction, so the conflict check and the insert commit
// together.
func (r *mongoReservationRepository) WithSpaceLock(ctx context.Context, spaceID, date string, fn func(ctx context.Context) error) error {
	id := lockID(spaceID, date)
	owner := uuid.NewString()

	if err := r.locks.acquire(ctx, id, owner); err != nil {
		return err
	}
	defer func() {
		if err := r.locks.release(ctx, id, owner); err != nil {
			r.cfg.Log.Warn("Failed to release reservation lock",
				"lock_id", id,
				"error", err,
			)
		}
	}()

	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return fn(sessCtx)
	})
}
