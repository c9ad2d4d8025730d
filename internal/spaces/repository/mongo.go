package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	spaceserrors "spacebook/internal/spaces/errors"
	"spacebook/pkg/config"
	mongodb "spacebook/pkg/db/mongo"
	"spacebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSpaceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSpaceRepository(cfg *config.Config) SpaceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSpaceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSpaceRepository) Create(ctx context.Context, space *model.Space) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	space.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, space); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return spaceserrors.ErrDuplicateID
		}
		return fmt.Errorf("failed to create space: %w", err)
	}
	return nil
}

func (r *mongoSpaceRepository) FindByID(ctx context.Context, id string) (*model.Space, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var space model.Space
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&space); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, spaceserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find space: %w", err)
	}
	return &space, nil
}

func (r *mongoSpaceRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Space, error) {
	if len(ids) == 0 {
		return []*model.Space{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoSpaceRepository) ListByInstitution(ctx context.Context, institutionID string) ([]*model.Space, error) {
	filter := bson.M{}
	if institutionID != "" {
		filter["institution_id"] = institutionID
	}
	return r.find(ctx, filter)
}

func (r *mongoSpaceRepository) find(ctx context.Context, filter bson.M) ([]*model.Space, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find spaces: %w", err)
	}
	defer cursor.Close(ctx)

	spaces := []*model.Space{}
	if err := cursor.All(ctx, &spaces); err != nil {
		return nil, fmt.Errorf("failed to decode spaces: %w", err)
	}
	return spaces, nil
}

func (r *mongoSpaceRepository) Update(ctx context.Context, space *model.Space) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":              space.Name,
			"type":              space.Type,
			"description":       space.Description,
			"multi_booking":     space.MultiBooking,
			"available":         space.Available,
			"slot_duration_min": space.SlotDurationMin,
			"max_advance_days":  space.MaxAdvanceDays,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": space.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update space: %w", err)
	}
	if result.MatchedCount == 0 {
		return spaceserrors.ErrNotFound
	}
	return nil
}

func (r *mongoSpaceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	if result.DeletedCount == 0 {
		return spaceserrors.ErrNotFound
	}
	return nil
}
