package repository

import (
	"context"
	"fmt"
	"time"

	reservationserrors "spacebook/internal/reservations/errors"
	"spacebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	lockPollMin = 10 * time.Millisecond
	lockPollMax = 200 * time.Millisecond
)

// lockRepository keeps advisory lock documents. A lock is taken by inserting
// a document with a fixed _id, so the unique index on _id decides the winner.
type lockRepository struct {
	collection *mongo.Collection
	ttl        time.Duration
	wait       time.Duration
	now        func() time.Time
}

func newLockRepository(collection *mongo.Collection, ttl, wait time.Duration) *lockRepository {
	return &lockRepository{
		collection: collection,
		ttl:        ttl,
		wait:       wait,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// acquire blocks until the lock is held, the wait budget runs out or ctx ends.
func (r *lockRepository) acquire(ctx context.Context, id, owner string) error {
	deadline := r.now().Add(r.wait)
	poll := lockPollMin

	for {
		ok, err := r.tryAcquire(ctx, id, owner)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if !r.now().Before(deadline) {
			return fmt.Errorf("%w: %s", reservationserrors.ErrLockTimeout, id)
		}

		timer := time.NewTimer(poll)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		poll *= 2
		if poll > lockPollMax {
			poll = lockPollMax
		}
	}
}

func (r *lockRepository) tryAcquire(ctx context.Context, id, owner string) (bool, error) {
	now := r.now()

	// Reclaim a lock whose holder died without releasing it. The TTL index
	// removes these too, but only once a minute.
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "expires_at": bson.M{"$lt": now}}); err != nil {
		return false, fmt.Errorf("failed to reclaim expired lock: %w", err)
	}

	lock := &model.ReservationLock{
		ID:        id,
		Owner:     owner,
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}
	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return true, nil
}

// release deletes the lock only if owner still holds it.
func (r *lockRepository) release(ctx context.Context, id, owner string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.ttl)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner}); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
