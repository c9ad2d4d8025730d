package repository

import (
	"context"
	"errors"
	"fmt"

	accountserrors "spacebook/internal/accounts/errors"
	"spacebook/pkg/config"
	mongodb "spacebook/pkg/db/mongo"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoAccountRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAccountRepository(cfg *config.Config) AccountRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAccountRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAccountRepository) Create(ctx context.Context, requester *model.Requester) error {
	normalizeAccount(requester)
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, requester); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return accountserrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *mongoAccountRepository) Resolve(ctx context.Context, identifier string) (*model.Requester, error) {
	identifier = sanitizer.SanitizeIdentifier(identifier)
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"_id": identifier}
	if isEmail(identifier) {
		filter = bson.M{"email": identifier}
	}

	var requester model.Requester
	if err := r.collection.FindOne(ctx, filter).Decode(&requester); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, accountserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	return &requester, nil
}

func (r *mongoAccountRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Requester, error) {
	if len(ids) == 0 {
		return []*model.Requester{}, nil
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	defer cursor.Close(ctx)

	requesters := []*model.Requester{}
	if err := cursor.All(ctx, &requesters); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return requesters, nil
}
