package repository

import (
	"context"

	"spacebook/pkg/config"
	"spacebook/pkg/model"
)

const (
	CollectionName = "Spaces"
	TableName      = "spaces"
)

type SpaceRepository interface {
	Create(ctx context.Context, space *model.Space) error
	FindByID(ctx context.Context, id string) (*model.Space, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Space, error)
	// ListByInstitution returns every space when institutionID is empty.
	ListByInstitution(ctx context.Context, institutionID string) ([]*model.Space, error)
	Update(ctx context.Context, space *model.Space) error
	Delete(ctx context.Context, id string) error
}

// New returns the repository for the configured storage driver.
func New(cfg *config.Config) SpaceRepository {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		return NewMongoSpaceRepository(cfg)
	case config.StoragePostgres:
		return NewPostgresSpaceRepository(cfg)
	default:
		return NewMemorySpaceRepository()
	}
}
