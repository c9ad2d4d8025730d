package main

import (
	"context"
	"time"

	mongoMigration "spacebook/internal/migrations/mongo"
	postgresMigration "spacebook/internal/migrations/postgres"
	"spacebook/pkg/config"
)

const JobName = "spacebook-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetStorage()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting migration job", "storage_driver", cfg.StorageDriver)
	if err := migrate(ctx, cfg); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrate(ctx context.Context, cfg *config.Config) error {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		return mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log)
	case config.StoragePostgres:
		return postgresMigration.Apply(ctx, cfg.Client.Postgres, cfg.Log)
	default:
		cfg.Log.Info("Nothing to migrate for storage driver", "storage_driver", cfg.StorageDriver)
		return nil
	}
}
